package sim

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventFlap EventKind = iota + 1
	EventScore
	EventBounce
	EventExplosion
	EventModeChanged
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventFlap:
		return "flap"
	case EventScore:
		return "score"
	case EventBounce:
		return "bounce"
	case EventExplosion:
		return "explosion"
	case EventModeChanged:
		return "mode"
	default:
		return "unknown"
	}
}

// Event is emitted by Step. X and Y locate cosmetic effects; From and To
// are set for EventModeChanged; Score is the session score at emit time.
type Event struct {
	Kind     EventKind
	X, Y     float64
	From, To Mode
	Score    int
}

// GameOver reports whether the event is the Playing -> GameOver transition.
func (e Event) GameOver() bool {
	return e.Kind == EventModeChanged && e.From == ModePlaying && e.To == ModeGameOver
}
