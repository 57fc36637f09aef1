package sim

import "github.com/vovakirdan/flapper/internal/core"

// Burst describes the particle batch emitted for one event kind.
type Burst struct {
	Count int
	Life  int
	VXMin float64
	VXMax float64
	VYMin float64
	VYMax float64
	Color core.Color
}

// Bursts maps each cosmetic event to its batch.
var Bursts = map[EventKind]Burst{
	EventFlap:      {Count: 5, Life: 20, VXMin: -2, VXMax: 2, VYMin: -1, VYMax: 1, Color: core.ColorBrightYellow},
	EventScore:     {Count: 10, Life: 30, VXMin: -3, VXMax: 3, VYMin: -4, VYMax: -1, Color: core.ColorBrightCyan},
	EventBounce:    {Count: 10, Life: 25, VXMin: -2, VXMax: 2, VYMin: -5, VYMax: -3, Color: core.ColorBrightCyan},
	EventExplosion: {Count: 20, Life: 40, VXMin: -5, VXMax: 5, VYMin: -5, VYMax: 5, Color: core.ColorBrightRed},
}

// Emit builds the particle batch for ev. Events without a burst yield nil.
func Emit(ev Event, r Rand) []Particle {
	b, ok := Bursts[ev.Kind]
	if !ok {
		return nil
	}
	out := make([]Particle, 0, b.Count)
	for i := 0; i < b.Count; i++ {
		out = append(out, Particle{
			X:       ev.X,
			Y:       ev.Y,
			VX:      b.VXMin + r.Float64()*(b.VXMax-b.VXMin),
			VY:      b.VYMin + r.Float64()*(b.VYMax-b.VYMin),
			Life:    b.Life,
			MaxLife: b.Life,
			Alpha:   1,
			Color:   b.Color,
		})
	}
	return out
}

// UpdateParticles integrates each particle, applies gravity, spends one tick
// of life, recomputes opacity and drops the expired ones. The input slice is
// reused.
func UpdateParticles(ps []Particle, gravity float64) []Particle {
	kept := ps[:0]
	for _, p := range ps {
		p.X += p.VX
		p.Y += p.VY
		p.VY += gravity
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.Alpha = float64(p.Life) / float64(p.MaxLife)
		kept = append(kept, p)
	}
	return kept
}

// updateParticles ages the existing particles, then appends the batches for
// this tick's events. Nothing outside the emitter reads particles.
func (s *Sim) updateParticles(st *State, events []Event) {
	st.Particles = UpdateParticles(st.Particles, s.cfg.Particles.Gravity)
	if !s.cfg.Particles.Enabled {
		return
	}
	for _, ev := range events {
		st.Particles = append(st.Particles, Emit(ev, s.fx)...)
	}
}
