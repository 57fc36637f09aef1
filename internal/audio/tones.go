// Package audio turns simulation events into short synthesized sounds. It
// is a pure listener: nothing here feeds back into the game.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/flapper/internal/sim"
)

// SampleRate is the output rate of every generated tone.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// oscillator produces a fixed-length wave with a linear release over the
// last quarter of its duration.
type oscillator struct {
	freq     float64
	phase    float64
	total    int
	release  int
	position int
	wave     Wave
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator returns a streamer that plays freq for d.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	return &oscillator{
		freq:    freq,
		total:   total,
		release: total / 4,
		wave:    wave,
		rate:    rate,
		noise:   rand.New(rand.NewSource(int64(freq) + int64(total))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		if left := o.total - o.position; o.release > 0 && left < o.release {
			val *= float64(left) / float64(o.release)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// volume scales s linearly; zero or less is silent.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Tone returns the sound for an event kind, or nil for silent kinds.
func Tone(kind sim.EventKind, rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch kind {
	case sim.EventFlap:
		s = NewOscillator(660, 60*time.Millisecond, WaveSquare, rate)
		vol *= 0.3
	case sim.EventScore:
		s = beep.Seq(
			NewOscillator(880, 70*time.Millisecond, WaveSine, rate),
			NewOscillator(1320, 110*time.Millisecond, WaveSine, rate),
		)
	case sim.EventBounce:
		s = NewOscillator(220, 80*time.Millisecond, WaveSine, rate)
		vol *= 0.6
	case sim.EventExplosion:
		s = NewOscillator(0, 350*time.Millisecond, WaveNoise, rate)
		vol *= 0.8
	default:
		return nil
	}
	return volume(s, vol)
}
