package render

import (
	"strings"
	"testing"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/sim"
)

func playingSnapshot(t *testing.T) (sim.Snapshot, *sim.Sim) {
	t.Helper()
	s, err := sim.NewSeeded(config.Default(), 1)
	if err != nil {
		t.Fatalf("NewSeeded() failed: %v", err)
	}
	st, _ := s.Step(s.NewState(), core.NewInputFrame(core.ActionConfirm), 0)
	st.Obstacles = []sim.Obstacle{{X: 400, Width: 60, GapTop: 200, GapHeight: 250}}
	return s.Snapshot(st), s
}

func countRune(scr *core.Screen, r rune) int {
	return strings.Count(scr.String(), string(r))
}

func TestDrawPlayfield(t *testing.T) {
	snap, _ := playingSnapshot(t)
	scr := core.NewScreen(80, 25)
	New(NewAssets(config.Default().Theme)).Draw(scr, snap, HUD{HighScore: 12})

	if countRune(scr, '●') == 0 {
		t.Error("actor not drawn")
	}
	if countRune(scr, '█') == 0 {
		t.Error("pipe not drawn")
	}
	if got := scr.Row(24); !strings.HasPrefix(got, strings.Repeat("═", 10)) {
		t.Errorf("floor not on the last row: %q", got)
	}
	if !strings.Contains(scr.Row(0), "Score: 0") || !strings.Contains(scr.Row(0), "Best: 12") {
		t.Errorf("HUD missing: %q", scr.Row(0))
	}

	// Pipe x=400 on an 800-wide field lands in column 40; the gap rows stay open.
	if c := scr.GetCell(41, 0); c.Rune != '█' {
		t.Errorf("expected pipe body at (41,0), got %q", c.Rune)
	}
	if c := scr.GetCell(41, 12); c.Rune == '█' {
		t.Error("gap row filled")
	}
}

func TestMissingAssetsUsePlaceholder(t *testing.T) {
	snap, _ := playingSnapshot(t)
	theme := config.Default().Theme
	delete(theme, AssetPipe)
	theme[AssetActor] = ""

	assets := NewAssets(theme)
	if got := assets.Missing(); len(got) != 2 || got[0] != AssetActor || got[1] != AssetPipe {
		t.Errorf("Missing() = %v", got)
	}

	scr := core.NewScreen(80, 25)
	New(assets).Draw(scr, snap, HUD{})

	if c := scr.GetCell(41, 0); c.Rune != 'P' || c.Color != core.ColorBrightRed {
		t.Errorf("expected pipe placeholder, got %+v", c)
	}
	if countRune(scr, 'A') == 0 {
		t.Error("actor placeholder not drawn")
	}
}

func TestPlaceholderIsDeterministic(t *testing.T) {
	tests := []struct {
		key  string
		want rune
	}{
		{"pipe", 'P'},
		{"actor", 'A'},
		{"émoji", 'É'},
		{"", '?'},
	}
	for _, tt := range tests {
		c := Placeholder(tt.key)
		if c.Rune != tt.want || c.Color != core.ColorBrightRed {
			t.Errorf("Placeholder(%q) = %+v, want %q", tt.key, c, tt.want)
		}
		if Placeholder(tt.key) != c {
			t.Errorf("Placeholder(%q) not stable", tt.key)
		}
	}
}

func TestRenderingDoesNotChangeState(t *testing.T) {
	snap, s := playingSnapshot(t)
	before := s.Snapshot(sim.State{Obstacles: snap.Obstacles})
	New(Assets{}).Draw(core.NewScreen(10, 5), snap, HUD{})

	if snap.Obstacles[0] != before.Obstacles[0] {
		t.Error("draw modified the snapshot")
	}
}

func TestOverlays(t *testing.T) {
	snap, _ := playingSnapshot(t)
	r := New(NewAssets(config.Default().Theme))

	tests := []struct {
		mode sim.Mode
		hud  HUD
		want []string
	}{
		{sim.ModeMenu, HUD{HighScore: 3, GamesPlayed: 4, BestStreak: 2}, []string{"F L A P P E R", "High score 3", "Games 4", "Best streak 2"}},
		{sim.ModePaused, HUD{}, []string{"PAUSED"}},
		{sim.ModeGameOver, HUD{HighScore: 9, NewHigh: true, Rank: 2}, []string{"GAME OVER", "NEW HIGH SCORE!", "Leaderboard #2"}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			snap.Mode = tt.mode
			scr := core.NewScreen(80, 25)
			r.Draw(scr, snap, tt.hud)
			out := scr.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("overlay missing %q", w)
				}
			}
		})
	}
}

func TestTinyScreen(t *testing.T) {
	snap, _ := playingSnapshot(t)
	for _, size := range [][2]int{{0, 0}, {1, 1}, {3, 2}} {
		New(NewAssets(nil)).Draw(core.NewScreen(size[0], size[1]), snap, HUD{})
	}
}
