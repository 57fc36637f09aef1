// Package config provides YAML/TOML-based game configuration loading and
// validation for the flapper game.
package config

import "time"

// FlappyConfig contains every tunable of the simulation. All lengths are in
// playfield units (800x600 by default); speeds and accelerations are
// per tick unless stated otherwise.
type FlappyConfig struct {
	Playfield Playfield         `yaml:"playfield" toml:"playfield"`
	Physics   Physics           `yaml:"physics" toml:"physics"`
	Actor     Actor             `yaml:"actor" toml:"actor"`
	Obstacles Obstacles         `yaml:"obstacles" toml:"obstacles"`
	Particles Particles         `yaml:"particles" toml:"particles"`
	Theme     map[string]string `yaml:"theme" toml:"theme"` // asset key -> glyph
}

// Playfield defines the simulated area. The floor is at y = Height.
type Playfield struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Physics defines the actor's vertical motion.
type Physics struct {
	Gravity        float64 `yaml:"gravity" toml:"gravity"`                 // Added to velocity every tick
	FlapForce      float64 `yaml:"flap_force" toml:"flap_force"`           // Velocity set on trigger (negative = up)
	MaxVelocity    float64 `yaml:"max_velocity" toml:"max_velocity"`       // Upper clamp of velocity
	BounceVelocity float64 `yaml:"bounce_velocity" toml:"bounce_velocity"` // Velocity after floor contact
	RotationFactor float64 `yaml:"rotation_factor" toml:"rotation_factor"` // rotation = velocity * factor
	RotationMax    float64 `yaml:"rotation_max" toml:"rotation_max"`       // |rotation| limit, radians
}

// Actor defines the controllable entity's geometry.
type Actor struct {
	X           float64 `yaml:"x" toml:"x"`
	Width       float64 `yaml:"width" toml:"width"`
	Height      float64 `yaml:"height" toml:"height"`
	HitboxInset float64 `yaml:"hitbox_inset" toml:"hitbox_inset"` // Shrink applied on every side
}

// Obstacles defines pipe pairs and their lifecycle.
type Obstacles struct {
	Speed         float64       `yaml:"speed" toml:"speed"` // Leftward move per tick, not scaled by delta
	Width         float64       `yaml:"width" toml:"width"`
	GapHeight     float64       `yaml:"gap_height" toml:"gap_height"`
	Margin        float64       `yaml:"margin" toml:"margin"`                 // Min distance of the gap from top and floor
	PruneDistance float64       `yaml:"prune_distance" toml:"prune_distance"` // How far past x=0 the right edge may go
	SpawnInterval time.Duration `yaml:"spawn_interval" toml:"spawn_interval"`
}

// Particles defines the cosmetic feedback emitter.
type Particles struct {
	Gravity float64 `yaml:"gravity" toml:"gravity"`
	Enabled bool    `yaml:"enabled" toml:"enabled"`
}

// FloorY returns the y coordinate of the floor plane.
func (c FlappyConfig) FloorY() float64 {
	return c.Playfield.Height
}

// ActorStartY returns the actor's initial vertical position.
func (c FlappyConfig) ActorStartY() float64 {
	return c.Playfield.Height / 2
}
