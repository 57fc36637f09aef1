package sim

import "github.com/vovakirdan/flapper/internal/core"

// flapDecay is how much of the wing animation is spent per tick.
const flapDecay = 0.1

// Integrate advances the actor by one tick.
//
// Position moves by the velocity the actor entered the tick with, then the
// velocity is updated: a trigger overwrites it with the flap impulse,
// otherwise gravity is added and the result is clamped to maxVelocity. Only
// the downward direction is clamped.
//
// The floor is not lethal: an actor whose bottom edge passes the floor is
// put back on it and launched upward with the bounce velocity. The ceiling is
// left to the collision detector.
func Integrate(a Actor, trigger bool, ph PhysicsParams) (Actor, bool) {
	a.Y += a.Velocity

	if a.Flap > 0 {
		a.Flap -= flapDecay
		if a.Flap < 0 {
			a.Flap = 0
		}
	}

	if trigger {
		a.Velocity = ph.FlapForce
		a.Flap = 1
	} else {
		a.Velocity += ph.Gravity
		if a.Velocity > ph.MaxVelocity {
			a.Velocity = ph.MaxVelocity
		}
	}

	bounced := false
	if a.Bounds().Bottom() > ph.FloorY {
		a.Y = ph.FloorY - a.Height
		a.Velocity = ph.BounceVelocity
		bounced = true
	}

	a.Rotation = core.ClampF(a.Velocity*ph.RotationFactor, -ph.RotationMax, ph.RotationMax)
	return a, bounced
}

// PhysicsParams is the subset of the configuration the integrator reads.
type PhysicsParams struct {
	Gravity        float64
	FlapForce      float64
	MaxVelocity    float64
	BounceVelocity float64
	RotationFactor float64
	RotationMax    float64
	FloorY         float64
}

func (s *Sim) physicsParams() PhysicsParams {
	ph := s.cfg.Physics
	return PhysicsParams{
		Gravity:        ph.Gravity,
		FlapForce:      ph.FlapForce,
		MaxVelocity:    ph.MaxVelocity,
		BounceVelocity: ph.BounceVelocity,
		RotationFactor: ph.RotationFactor,
		RotationMax:    ph.RotationMax,
		FloorY:         s.cfg.FloorY(),
	}
}

// bounceLift places bounce particles slightly above the floor.
const bounceLift = 10

func (s *Sim) integrate(st *State, trigger bool, events []Event) []Event {
	before := st.Actor
	a, bounced := Integrate(st.Actor, trigger, s.physicsParams())
	st.Actor = a

	if trigger {
		events = append(events, Event{Kind: EventFlap, X: before.X, Y: before.Y + before.Height, Score: st.Score})
	}
	if bounced {
		cx, _ := a.Bounds().Center()
		events = append(events, Event{Kind: EventBounce, X: cx, Y: s.cfg.FloorY() - bounceLift, Score: st.Score})
	}
	return events
}
