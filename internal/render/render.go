// Package render draws simulation snapshots into a core.Screen. It only
// reads snapshots; nothing it does can change the game.
package render

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/sim"
)

// HUD carries everything drawn besides the playfield.
type HUD struct {
	Player      string
	HighScore   int
	GamesPlayed int
	BestStreak  int

	// Set while a finished game is shown.
	NewHigh bool
	Rank    int
}

// Renderer maps the playfield onto the screen.
type Renderer struct {
	assets Assets
}

// New creates a renderer.
func New(assets Assets) *Renderer {
	return &Renderer{assets: assets}
}

// viewport converts playfield units to cells. The last row is the floor.
type viewport struct {
	sx, sy float64
	rows   int
}

func newViewport(dst *core.Screen, snap sim.Snapshot) viewport {
	rows := dst.Height() - 1
	if rows < 1 || snap.Width <= 0 || snap.Height <= 0 {
		return viewport{rows: core.Max(rows, 0)}
	}
	return viewport{
		sx:   float64(dst.Width()) / snap.Width,
		sy:   float64(rows) / snap.Height,
		rows: rows,
	}
}

func (v viewport) x(px float64) int { return int(math.Floor(px * v.sx)) }
func (v viewport) y(py float64) int { return int(math.Floor(py * v.sy)) }

// span converts a length to a cell count, never less than one cell.
func span(n float64, scale float64) int {
	return core.Max(int(math.Round(n*scale)), 1)
}

// Draw renders snap and the HUD into dst.
func (r *Renderer) Draw(dst *core.Screen, snap sim.Snapshot, hud HUD) {
	bg := r.assets.Cell(AssetBackground, core.ColorDefault)
	dst.FillRect(0, 0, dst.Width(), dst.Height(), bg.Rune, bg.Color)

	v := newViewport(dst, snap)
	if v.rows > 0 {
		for _, ob := range snap.Obstacles {
			r.drawObstacle(dst, v, ob)
		}
		floor := r.assets.Cell(AssetFloor, core.ColorGreen)
		dst.DrawHLine(0, v.rows, dst.Width(), floor.Rune, floor.Color)
		for _, p := range snap.Particles {
			r.drawParticle(dst, v, p)
		}
		r.drawActor(dst, v, snap.Actor)
	}

	r.drawHUD(dst, snap, hud)

	switch snap.Mode {
	case sim.ModeMenu:
		drawPanel(dst, core.ColorBrightYellow, "F L A P P E R",
			"",
			"SPACE / ENTER / click to start",
			fmt.Sprintf("High score %d   Games %d   Best streak %d", hud.HighScore, hud.GamesPlayed, hud.BestStreak),
		)
	case sim.ModePaused:
		drawPanel(dst, core.ColorBrightWhite, "PAUSED", "", "P or ENTER to resume", "R to quit to menu")
	case sim.ModeGameOver:
		lines := []string{"", fmt.Sprintf("Score %d   High score %d", snap.Score, hud.HighScore)}
		if hud.NewHigh {
			lines = append(lines, "NEW HIGH SCORE!")
		}
		if hud.Rank > 0 {
			lines = append(lines, fmt.Sprintf("Leaderboard #%d", hud.Rank))
		}
		lines = append(lines, "", "ENTER play again   R menu")
		drawPanel(dst, core.ColorBrightRed, "GAME OVER", lines...)
	}
}

func (r *Renderer) drawObstacle(dst *core.Screen, v viewport, ob sim.Obstacle) {
	x0 := v.x(ob.X)
	w := span(ob.Width, v.sx)
	gapTop := v.y(ob.GapTop)
	gapBottom := v.y(ob.GapBottom())

	body := r.assets.Cell(AssetPipe, core.ColorGreen)
	pipeCap := r.assets.Cell(AssetPipeCap, core.ColorBrightGreen)

	dst.FillRect(x0, 0, w, gapTop, body.Rune, body.Color)
	dst.FillRect(x0, gapBottom, w, v.rows-gapBottom, body.Rune, body.Color)
	if gapTop > 0 {
		dst.DrawHLine(x0, gapTop-1, w, pipeCap.Rune, pipeCap.Color)
	}
	if gapBottom < v.rows {
		dst.DrawHLine(x0, gapBottom, w, pipeCap.Rune, pipeCap.Color)
	}
}

func (r *Renderer) drawParticle(dst *core.Screen, v viewport, p sim.Particle) {
	if p.Alpha <= 0 {
		return
	}
	c := p.Color
	if p.Alpha < 0.5 {
		c = c.Faded()
	}
	cell := r.assets.Cell(AssetParticle, c)
	y := v.y(p.Y)
	if y >= v.rows {
		return
	}
	dst.SetColored(v.x(p.X), y, cell.Rune, cell.Color)
}

func (r *Renderer) drawActor(dst *core.Screen, v viewport, a sim.Actor) {
	x0, y0 := v.x(a.X), v.y(a.Y)
	w, h := span(a.Width, v.sx), span(a.Height, v.sy)
	if y0+h > v.rows {
		y0 = v.rows - h
	}

	body := r.assets.Cell(AssetActor, core.ColorBrightYellow)
	dst.FillRect(x0, y0, w, h, body.Rune, body.Color)

	// Beak tilts with the rotation; the wing lifts while the flap animation runs.
	beak := '>'
	switch {
	case a.Rotation < -0.2:
		beak = '╱'
	case a.Rotation > 0.2:
		beak = '╲'
	}
	dst.SetColored(x0+w, y0+h/2, beak, core.ColorOrange)
	if w > 1 {
		wing := '-'
		if a.Flap > 0.5 {
			wing = '^'
		}
		dst.SetColored(x0, y0+h/2, wing, core.ColorYellow)
	}
}

func (r *Renderer) drawHUD(dst *core.Screen, snap sim.Snapshot, hud HUD) {
	if snap.Mode == sim.ModeMenu {
		return
	}
	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorBrightWhite)
	best := fmt.Sprintf(" Best: %d ", hud.HighScore)
	dst.DrawText(dst.Width()-len(best)-1, 0, best, core.ColorGray)
}

// drawPanel draws a boxed, centered message.
func drawPanel(dst *core.Screen, c core.Color, title string, lines ...string) {
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 3
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, c)

	center := func(y int, s string, c core.Color) {
		dst.DrawText(boxX+(boxW-len([]rune(s)))/2, y, s, c)
	}
	center(boxY+1, title, c)
	for i, l := range lines {
		center(boxY+2+i, l, core.ColorWhite)
	}
}
