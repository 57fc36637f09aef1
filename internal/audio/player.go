package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/flapper/internal/sim"
)

// Player plays event tones through the system speaker.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	started bool
}

// NewPlayer creates a player. Nothing is audible until Start.
func NewPlayer(volume float64) *Player {
	return &Player{mixer: &beep.Mixer{}, volume: volume}
}

// Start opens the audio device.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// HandleEvent queues the tone for ev. Events arriving before Start are
// dropped.
func (p *Player) HandleEvent(ev sim.Event) {
	tone := Tone(ev.Kind, SampleRate, p.volume)
	if tone == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Add(tone)
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
}
