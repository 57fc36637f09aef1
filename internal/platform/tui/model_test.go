package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapper/internal/clock"
	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/render"
	"github.com/vovakirdan/flapper/internal/session"
	"github.com/vovakirdan/flapper/internal/sim"
	"github.com/vovakirdan/flapper/internal/storage"
)

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (Model, *session.Driver, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	d, err := session.New(session.Options{
		Config: config.Default(),
		Seed:   1,
		Stats:  mem,
		Clock:  clock.Fixed(16 * time.Millisecond),
		Player: "tester",
	})
	if err != nil {
		t.Fatalf("session.New() failed: %v", err)
	}
	m := NewModel(d, Options{
		Assets:   render.NewAssets(config.Default().Theme),
		TickRate: 60,
		Width:    80,
		Height:   25,
	})
	return m, d, mem
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestKeyMapActions(t *testing.T) {
	k := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{keySpace, core.ActionTrigger},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionTrigger},
		{runes("w"), core.ActionTrigger},
		{keyEnter, core.ActionConfirm},
		{runes("p"), core.ActionPause},
		{keyEsc, core.ActionPause},
		{runes("r"), core.ActionRestart},
		{runes("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("x"), core.ActionNone},
	}
	for _, tt := range tests {
		if got := k.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestStartArmsTickLoop(t *testing.T) {
	m, d, _ := newTestModel(t)

	m, cmd := update(t, m, keySpace)
	if d.Mode() != sim.ModePlaying {
		t.Fatalf("expected Playing after space, got %v", d.Mode())
	}
	if cmd == nil || !m.sched.Armed() {
		t.Fatal("tick loop not armed")
	}

	gen := m.sched.Gen()
	m, cmd = update(t, m, TickMsg{Gen: gen})
	if d.State().Tick != 1 {
		t.Errorf("expected one simulated tick, got %d", d.State().Tick)
	}
	if cmd == nil {
		t.Error("tick loop did not continue")
	}

	update(t, m, TickMsg{Gen: gen - 1})
	if d.State().Tick != 1 {
		t.Error("stale tick was simulated")
	}
}

func TestPauseStopsTickLoop(t *testing.T) {
	m, d, _ := newTestModel(t)
	m, _ = update(t, m, keyEnter)
	gen := m.sched.Gen()

	m, _ = update(t, m, runes("p"))
	m, cmd := update(t, m, TickMsg{Gen: gen})
	if d.Mode() != sim.ModePaused {
		t.Fatalf("expected Paused, got %v", d.Mode())
	}
	if cmd != nil || m.sched.Armed() {
		t.Error("tick loop still running while paused")
	}

	update(t, m, TickMsg{Gen: gen})
	if d.State().Tick != 0 {
		t.Errorf("paused game advanced to tick %d", d.State().Tick)
	}

	m, cmd = update(t, m, runes("p"))
	if d.Mode() != sim.ModePlaying || cmd == nil {
		t.Error("resume did not restart the tick loop")
	}
}

func TestRestartFromPauseReturnsToMenu(t *testing.T) {
	m, d, mem := newTestModel(t)
	m, _ = update(t, m, keyEnter)
	gen := m.sched.Gen()
	m, _ = update(t, m, runes("p"))
	m, _ = update(t, m, TickMsg{Gen: gen})
	if d.Mode() != sim.ModePaused {
		t.Fatalf("expected Paused, got %v", d.Mode())
	}

	m, cmd := update(t, m, runes("r"))
	if d.Mode() != sim.ModeMenu {
		t.Fatalf("expected Menu, got %v", d.Mode())
	}
	if cmd != nil || m.sched.Armed() {
		t.Error("tick loop armed in the menu")
	}
	if m.naming {
		t.Error("abandoned game should not ask for a name")
	}
	if sum, _ := mem.Summary(); sum.GamesPlayed != 0 {
		t.Errorf("abandoned game was recorded: %+v", sum)
	}
}

// playToGameOver flaps into the ceiling.
func playToGameOver(t *testing.T, m Model, d *session.Driver) Model {
	t.Helper()
	m, _ = update(t, m, keySpace)
	for i := 0; i < 500 && d.Mode() == sim.ModePlaying; i++ {
		m, _ = update(t, m, keySpace)
		m, _ = update(t, m, TickMsg{Gen: m.sched.Gen()})
	}
	if d.Mode() != sim.ModeGameOver {
		t.Fatalf("expected GameOver, got %v", d.Mode())
	}
	return m
}

func TestGameOverNameEntry(t *testing.T) {
	m, d, mem := newTestModel(t)
	m = playToGameOver(t, m, d)

	if !m.naming {
		t.Fatal("name prompt not shown after game over")
	}
	for _, r := range "Ada" {
		m, _ = update(t, m, runes(string(r)))
	}
	m, _ = update(t, m, keyEnter)

	if m.naming {
		t.Error("name prompt still active after enter")
	}
	if d.Mode() != sim.ModeGameOver {
		t.Errorf("enter in the prompt changed the mode to %v", d.Mode())
	}
	board, _ := mem.Leaderboard()
	if len(board) != 1 || board[0].Name != "Ada" {
		t.Errorf("unexpected leaderboard %+v", board)
	}

	update(t, m, keyEnter)
	if d.Mode() != sim.ModePlaying {
		t.Errorf("expected enter to start a new game, got %v", d.Mode())
	}
}

func TestSkipNameKeepsDefault(t *testing.T) {
	m, d, mem := newTestModel(t)
	m = playToGameOver(t, m, d)

	m, _ = update(t, m, keyEsc)
	if m.naming {
		t.Fatal("esc did not close the prompt")
	}
	board, _ := mem.Leaderboard()
	if board[0].Name != "tester" {
		t.Errorf("expected preset name, got %q", board[0].Name)
	}

	update(t, m, runes("r"))
	if d.Mode() != sim.ModeMenu {
		t.Errorf("expected r to return to the menu, got %v", d.Mode())
	}
}

func TestScoreboardToggle(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = update(t, m, keyTab)
	if m.board == nil {
		t.Fatal("scoreboard not opened")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}

	m, _ = update(t, m, keyTab)
	if m.board != nil {
		t.Error("scoreboard not closed")
	}
}

func TestMouseClickFlaps(t *testing.T) {
	m, d, _ := newTestModel(t)
	click := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	update(t, m, click)
	if d.Mode() != sim.ModePlaying {
		t.Errorf("click did not start the game, mode %v", d.Mode())
	}
}

func TestViewShowsGame(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	out := m.View()
	if !strings.Contains(out, "F L A P P E R") {
		t.Error("menu overlay missing")
	}
	if m.screen.Width() != 60 || m.screen.Height() != 19 {
		t.Errorf("screen not resized: %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "ab", core.ColorBrightRed)
	s.DrawText(2, 0, "cd", core.ColorGreen)

	out := RenderScreen(s)
	if !strings.Contains(out, "ab") || !strings.Contains(out, "cd") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}
