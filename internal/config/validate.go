package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("config: invalid configuration")

// FieldError describes one rejected value.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s = %v: %s", e.Field, e.Value, e.Reason)
}

// Validate checks every tunable. Invalid values are reported, never clamped;
// a config that fails here must be corrected before a game can start.
func Validate(cfg FlappyConfig) error {
	var errs []error
	bad := func(field string, value any, reason string) {
		errs = append(errs, FieldError{Field: field, Value: value, Reason: reason})
	}

	pf := cfg.Playfield
	if pf.Width <= 0 {
		bad("playfield.width", pf.Width, "must be positive")
	}
	if pf.Height <= 0 {
		bad("playfield.height", pf.Height, "must be positive")
	}

	ph := cfg.Physics
	if ph.Gravity <= 0 {
		bad("physics.gravity", ph.Gravity, "must be positive")
	}
	if ph.FlapForce >= 0 {
		bad("physics.flap_force", ph.FlapForce, "must be negative (upward)")
	}
	if ph.MaxVelocity <= 0 {
		bad("physics.max_velocity", ph.MaxVelocity, "must be positive")
	}
	if ph.BounceVelocity >= 0 {
		bad("physics.bounce_velocity", ph.BounceVelocity, "must be negative (upward)")
	}
	if ph.RotationMax < 0 {
		bad("physics.rotation_max", ph.RotationMax, "must not be negative")
	}

	a := cfg.Actor
	if a.Width <= 0 {
		bad("actor.width", a.Width, "must be positive")
	}
	if a.Height <= 0 {
		bad("actor.height", a.Height, "must be positive")
	}
	if pf.Height > 0 && a.Height >= pf.Height {
		bad("actor.height", a.Height, "must be smaller than playfield.height")
	}
	if a.X < 0 || (pf.Width > 0 && a.X+a.Width > pf.Width) {
		bad("actor.x", a.X, "actor must fit horizontally inside the playfield")
	}
	if a.HitboxInset < 0 {
		bad("actor.hitbox_inset", a.HitboxInset, "must not be negative")
	}
	if 2*a.HitboxInset >= a.Width || 2*a.HitboxInset >= a.Height {
		bad("actor.hitbox_inset", a.HitboxInset, "leaves an empty hitbox")
	}

	o := cfg.Obstacles
	if o.Speed <= 0 {
		bad("obstacles.speed", o.Speed, "must be positive")
	}
	if o.Width <= 0 {
		bad("obstacles.width", o.Width, "must be positive")
	}
	if o.GapHeight <= 0 {
		bad("obstacles.gap_height", o.GapHeight, "must be positive")
	}
	if o.Margin < 0 {
		bad("obstacles.margin", o.Margin, "must not be negative")
	}
	if pf.Height > 0 && o.GapHeight+2*o.Margin > pf.Height {
		bad("obstacles.gap_height", o.GapHeight, "gap plus both margins must fit in playfield.height")
	}
	if o.PruneDistance < 0 {
		bad("obstacles.prune_distance", o.PruneDistance, "must not be negative")
	}
	if o.SpawnInterval <= 0 {
		bad("obstacles.spawn_interval", o.SpawnInterval, "must be positive")
	}

	if cfg.Particles.Gravity < 0 {
		bad("particles.gravity", cfg.Particles.Gravity, "must not be negative")
	}

	for key, glyph := range cfg.Theme {
		if utf8.RuneCountInString(glyph) > 1 {
			bad("theme."+key, glyph, "must be a single character")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Problems flattens a Validate error into one line per rejected field.
func Problems(err error) []string {
	if err == nil {
		return nil
	}
	var lines []string
	collectFieldErrors(err, &lines)
	if len(lines) == 0 {
		lines = append(lines, strings.TrimPrefix(err.Error(), ErrInvalid.Error()+": "))
	}
	return lines
}

func collectFieldErrors(err error, lines *[]string) {
	switch e := err.(type) {
	case FieldError:
		*lines = append(*lines, e.Error())
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			collectFieldErrors(inner, lines)
		}
	case interface{ Unwrap() error }:
		collectFieldErrors(e.Unwrap(), lines)
	}
}
