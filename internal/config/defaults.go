package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// Default returns the built-in configuration. The values reproduce the
// relaxed "very easy" tuning: slow gravity, wide gaps, non-lethal floor.
func Default() FlappyConfig {
	return FlappyConfig{
		Playfield: Playfield{
			Width:  800,
			Height: 600,
		},
		Physics: Physics{
			Gravity:        0.25,
			FlapForce:      -6,
			MaxVelocity:    6,
			BounceVelocity: -3,
			RotationFactor: 0.05,
			RotationMax:    0.5,
		},
		Actor: Actor{
			X:           150,
			Width:       50,
			Height:      40,
			HitboxInset: 15,
		},
		Obstacles: Obstacles{
			Speed:         2.0,
			Width:         60,
			GapHeight:     250,
			Margin:        50,
			PruneDistance: 50,
			SpawnInterval: 2200 * time.Millisecond,
		},
		Particles: Particles{
			Gravity: 0.1,
			Enabled: true,
		},
		Theme: map[string]string{
			"actor":      "●",
			"pipe":       "█",
			"pipe_cap":   "▓",
			"particle":   "•",
			"floor":      "═",
			"background": " ",
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
