package sim

import "github.com/vovakirdan/flapper/internal/core"

// Mode is the game-mode state machine's current state.
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
	ModePaused
	ModeGameOver
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "Menu"
	case ModePlaying:
		return "Playing"
	case ModePaused:
		return "Paused"
	case ModeGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Simulating reports whether ticks in this mode advance the simulation.
func (m Mode) Simulating() bool {
	return m == ModePlaying
}

var transitions = map[Mode][]Mode{
	ModeMenu:     {ModePlaying},
	ModePlaying:  {ModePaused, ModeGameOver, ModeMenu},
	ModePaused:   {ModePlaying, ModeMenu},
	ModeGameOver: {ModeMenu, ModePlaying},
}

// CanTransition reports whether the state machine has an edge from -> to.
func CanTransition(from, to Mode) bool {
	for _, m := range transitions[from] {
		if m == to {
			return true
		}
	}
	return false
}

// resets reports whether entering `to` from `from` starts a fresh session.
// Resuming from Paused keeps everything verbatim; abandoning a game for the
// menu discards it.
func resets(from, to Mode) bool {
	switch {
	case from == ModeMenu && to == ModePlaying:
		return true
	case from == ModeGameOver, to == ModeMenu:
		return true
	default:
		return false
	}
}

// requestedMode maps the queued input to a mode change. GameOver is never
// requested by input; only the collision detector enters it.
func requestedMode(m Mode, in core.InputFrame) (Mode, bool) {
	switch m {
	case ModeMenu:
		if in.Has(core.ActionTrigger) || in.Has(core.ActionConfirm) {
			return ModePlaying, true
		}
	case ModePlaying:
		if in.Has(core.ActionRestart) {
			return ModeMenu, true
		}
		if in.Has(core.ActionPause) {
			return ModePaused, true
		}
	case ModePaused:
		if in.Has(core.ActionRestart) {
			return ModeMenu, true
		}
		if in.Has(core.ActionPause) || in.Has(core.ActionConfirm) {
			return ModePlaying, true
		}
	case ModeGameOver:
		if in.Has(core.ActionRestart) {
			return ModeMenu, true
		}
		if in.Has(core.ActionConfirm) {
			return ModePlaying, true
		}
	}
	return m, false
}

// enter moves st to mode `to`, applying the session reset where required.
func (s *Sim) enter(st *State, to Mode) Event {
	from := st.Mode
	if resets(from, to) {
		s.reset(st)
	}
	st.Mode = to
	return Event{Kind: EventModeChanged, From: from, To: to, Score: st.Score}
}

// reset restores the actor, collections, score and spawn timer.
func (s *Sim) reset(st *State) {
	a := s.cfg.Actor
	*st = State{
		Mode:  st.Mode,
		Actor: Actor{X: a.X, Y: s.cfg.ActorStartY(), Width: a.Width, Height: a.Height},
	}
}
