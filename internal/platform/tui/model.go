package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/clock"
	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/render"
	"github.com/vovakirdan/flapper/internal/session"
	"github.com/vovakirdan/flapper/internal/sim"
)

// Options configures a game Model.
type Options struct {
	Assets        render.Assets
	TickRate      int
	Width         int
	Height        int
	ScreenshotDir string // empty disables screenshots
	Logger        *log.Logger
}

// Model is the Bubble Tea model for one game session.
type Model struct {
	driver   *session.Driver
	renderer *render.Renderer
	screen   *core.Screen
	sched    *clock.Scheduler
	interval time.Duration
	keys     KeyMap
	help     help.Model
	name     textinput.Model
	naming   bool // game-over name prompt is active
	board    *ScoreboardModel
	logger   *log.Logger
	shotDir  string
	status   string
	width    int
	height   int
	quitting bool
}

// NewModel creates a model around a driver.
func NewModel(d *session.Driver, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = d.Player()
	ti.CharLimit = 16
	ti.Width = 18
	ti.Prompt = "Name: "

	m := Model{
		driver:   d,
		renderer: render.New(opts.Assets),
		sched:    &clock.Scheduler{},
		interval: clock.Interval(opts.TickRate),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		name:     ti,
		logger:   opts.Logger,
		shotDir:  opts.ScreenshotDir,
	}
	m.resize(opts.Width, opts.Height)
	return m
}

// resize fits the game screen into the terminal, leaving one row for the
// help or prompt line.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	sw, sh := core.Max(w, 1), core.Max(h-1, 1)
	if m.screen == nil {
		m.screen = core.NewScreen(sw, sh)
	} else {
		m.screen.Resize(sw, sh)
	}
	m.help.Width = w
}

// Init initializes the model. The tick loop only runs while playing, so
// nothing is scheduled until the game starts.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.board != nil {
			b, _ := m.board.Update(msg)
			sb := b.(ScoreboardModel)
			m.board = &sb
		}
		return m, nil

	case TickMsg:
		if !m.sched.Accept(msg.Gen) {
			return m, nil
		}
		events := m.driver.Advance()
		m.afterEvents(events)
		if m.driver.Mode() == sim.ModePlaying {
			return m, tickCmd(m.interval, msg.Gen)
		}
		m.sched.Disarm()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.naming && m.board == nil {
			return m, m.queue(core.ActionTrigger)
		}
		return m, nil
	}

	if m.naming {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board != nil {
		b, cmd := m.board.Update(msg)
		sb := b.(ScoreboardModel)
		switch {
		case sb.IsQuitting():
			m.quitting = true
			return m, tea.Quit
		case sb.GoingBack():
			m.board = nil
		default:
			m.board = &sb
		}
		return m, cmd
	}

	if m.naming {
		return m.handleNameKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Scores):
		if m.driver.Mode() != sim.ModePlaying {
			m.openBoard()
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
		return m, nil
	}
	m.status = ""
	return m, m.queue(action)
}

func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if v := m.name.Value(); v != "" {
			if err := m.driver.Rename(v); err != nil {
				m.logger.Warn("rename failed", "err", err)
			}
		}
		m.stopNaming()
		return m, nil
	case "esc":
		m.stopNaming()
		return m, nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m *Model) stopNaming() {
	m.naming = false
	m.name.Blur()
	m.name.Reset()
}

// queue hands an action to the driver. Outside Playing no tick loop is
// running, so the action is applied at once with a zero delta.
func (m *Model) queue(a core.Action) tea.Cmd {
	m.driver.Queue(a)
	if m.driver.Mode() == sim.ModePlaying {
		return nil
	}
	m.afterEvents(m.driver.Tick(0))
	if m.driver.Mode() == sim.ModePlaying && !m.sched.Armed() {
		return tickCmd(m.interval, m.sched.Arm())
	}
	return nil
}

// afterEvents reacts to mode changes the TUI cares about.
func (m *Model) afterEvents(events []sim.Event) {
	for _, ev := range events {
		if ev.GameOver() {
			m.naming = true
			m.name.Reset()
			m.name.Focus()
			m.status = ""
		}
	}
}

func (m *Model) openBoard() {
	b := NewScoreboardModel(m.driver.Leaderboard(), m.driver.Summary(), m.width, m.height)
	if res, ok := m.driver.LastResult(); ok {
		b.Highlight(res.Entry.ID)
	}
	m.board = &b
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.shotDir == "" {
		return
	}
	m.draw()

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	path := filepath.Join(m.shotDir, fmt.Sprintf("flapper_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.status = "saved " + path
}

func (m *Model) draw() {
	hud := render.HUD{Player: m.driver.Player()}
	sum := m.driver.Summary()
	hud.HighScore, hud.GamesPlayed, hud.BestStreak = sum.HighScore, sum.GamesPlayed, sum.BestStreak
	if res, ok := m.driver.LastResult(); ok && m.driver.Mode() == sim.ModeGameOver {
		hud.NewHigh, hud.Rank = res.NewHigh, res.Rank
	}
	m.renderer.Draw(m.screen, m.driver.Snapshot(), hud)
}

var (
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	degradedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	m.draw()
	out := RenderScreen(m.screen) + "\n"

	switch {
	case m.naming:
		out += m.name.View() + statusStyle.Render("  enter save · esc skip")
	case m.status != "":
		out += statusStyle.Render(m.status)
	case m.driver.Degraded():
		out += degradedStyle.Render("scores are not being saved this session")
	default:
		out += statusStyle.Render(m.help.View(m.keys))
	}
	return out
}

// Run starts the Bubble Tea program for a local game.
func Run(d *session.Driver, opts Options) error {
	p := tea.NewProgram(
		NewModel(d, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
