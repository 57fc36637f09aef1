// Package sim is the real-time simulation core: physics integration,
// obstacle lifecycle, collision detection, scoring, cosmetic particles and
// the Menu/Playing/Paused/GameOver state machine.
//
// Step is a near-pure function of (previous state, queued input, elapsed
// time). The only hidden state is the two injected random sources, one for
// obstacle gaps and one for particle jitter, kept apart so cosmetic effects
// cannot shift gap placement.
package sim

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Rand is the random source the simulation draws from. *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// Sim holds the immutable configuration and the random sources.
type Sim struct {
	cfg  config.FlappyConfig
	gaps Rand
	fx   Rand
}

// New validates cfg and builds a simulation. gaps drives obstacle placement
// and fx drives particle jitter; nil sources are replaced by fixed-seed ones.
func New(cfg config.FlappyConfig, gaps, fx Rand) (*Sim, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if gaps == nil {
		gaps = rand.New(rand.NewSource(1))
	}
	if fx == nil {
		fx = rand.New(rand.NewSource(2))
	}
	return &Sim{cfg: cfg, gaps: gaps, fx: fx}, nil
}

// NewSeeded builds a simulation whose random sources both derive from seed.
func NewSeeded(cfg config.FlappyConfig, seed int64) (*Sim, error) {
	return New(cfg,
		rand.New(rand.NewSource(seed)),
		rand.New(rand.NewSource(seed^0x5deece66d)),
	)
}

// Config returns the configuration the simulation was built with.
func (s *Sim) Config() config.FlappyConfig {
	return s.cfg
}

// NewState returns the initial session: Menu mode with a freshly reset actor.
func (s *Sim) NewState() State {
	st := State{Mode: ModeMenu}
	s.reset(&st)
	return st
}

// Step advances the session by one tick.
//
// A mode-change request in the input is handled first and consumes the tick.
// Otherwise, while Playing, the tick runs Integrator -> Obstacle Manager ->
// Collision Detector -> Scorer -> Particle Emitter in that order. Any other
// mode returns the state unchanged.
func (s *Sim) Step(prev State, in core.InputFrame, dt time.Duration) (State, []Event) {
	st := prev.clone()

	if to, ok := requestedMode(st.Mode, in); ok {
		return st, []Event{s.enter(&st, to)}
	}
	if !st.Mode.Simulating() {
		return st, nil
	}

	st.Tick++
	var events []Event
	events = s.integrate(&st, in.Has(core.ActionTrigger), events)
	s.updateObstacles(&st, dt)

	hit := Detect(st.Actor, st.Obstacles, s.cfg.Actor.HitboxInset, s.cfg.Playfield.Height)
	if hit.Kind != HitNone {
		cx, cy := st.Actor.Bounds().Center()
		events = append(events, Event{Kind: EventExplosion, X: cx, Y: cy, Score: st.Score})
		events = append(events, s.enter(&st, ModeGameOver))
		if st.Actor.Y < 0 {
			st.Actor.Y = 0
			st.Actor.Velocity = 0
		}
	} else {
		events = s.scorePassed(&st, events)
	}

	s.updateParticles(&st, events)
	return st, events
}

// Snapshot is the read-only view handed to presentation sinks.
type Snapshot struct {
	Mode      Mode
	Score     int
	Tick      int
	Actor     Actor
	Obstacles []Obstacle
	Particles []Particle
	Width     float64 // playfield width
	Height    float64 // playfield height
}

// Snapshot copies st for drawing.
func (s *Sim) Snapshot(st State) Snapshot {
	c := st.clone()
	return Snapshot{
		Mode:      c.Mode,
		Score:     c.Score,
		Tick:      c.Tick,
		Actor:     c.Actor,
		Obstacles: c.Obstacles,
		Particles: c.Particles,
		Width:     s.cfg.Playfield.Width,
		Height:    s.cfg.Playfield.Height,
	}
}
