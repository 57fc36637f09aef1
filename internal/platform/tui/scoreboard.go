package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/storage"
)

// ScoreboardKeyMap holds the leaderboard bindings. Up and down are handled
// by the table itself and only listed for help.
type ScoreboardKeyMap struct {
	Up, Down, Back, Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the leaderboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Back: key.NewBinding(key.WithKeys("esc", "tab", "b"), key.WithHelp("tab/esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardStatsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

var boardColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Name", Width: 16},
	{Title: "Score", Width: 7},
	{Title: "When", Width: 13},
}

// ScoreboardModel shows the leaderboard and the play counters.
type ScoreboardModel struct {
	entries   []storage.Entry
	summary   storage.Summary
	highlight string // entry ID whose row is selected
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool

	standalone bool // leaving the board ends the program
}

// NewScoreboardModel creates a scoreboard over a snapshot of the data.
func NewScoreboardModel(entries []storage.Entry, summary storage.Summary, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		entries: entries,
		summary: summary,
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
	}
	m.resize(width, height)
	return m
}

// Highlight selects the row of the given entry.
func (m *ScoreboardModel) Highlight(id string) {
	m.highlight = id
	if rank := storage.Rank(m.entries, id); rank > 0 {
		m.table.SetCursor(rank - 1)
	}
}

// resize rebuilds the table for a new terminal size. The table keeps its
// own height, so it cannot be resized in place.
func (m *ScoreboardModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			e.Name,
			strconv.Itoa(e.Score),
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	m.table = table.New(
		table.WithColumns(boardColumns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(core.Clamp(height-10, 3, storage.LeaderboardSize+1)),
		table.WithStyles(styles),
	)
	if m.highlight != "" {
		m.Highlight(m.highlight)
	}
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// GoingBack reports whether the user asked to leave the scoreboard.
func (m ScoreboardModel) GoingBack() bool { return m.goingBack }

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	stats := fmt.Sprintf("High score %d   Games played %d   Best streak %d   Current streak %d",
		m.summary.HighScore, m.summary.GamesPlayed, m.summary.BestStreak, m.summary.CurrentStreak)

	body := "No scores recorded yet."
	if len(m.entries) > 0 {
		body = m.table.View()
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(boardStatsStyle.Render(centerText(stats, m.width)))
	b.WriteString("\n\n")
	b.WriteString(boardFrameStyle.Render(body))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// centerText left-pads text to center it within width.
func centerText(text string, width int) string {
	if w := lipgloss.Width(text); w < width {
		return strings.Repeat(" ", (width-w)/2) + text
	}
	return text
}

// RunScoreboard shows the scoreboard as a standalone program.
func RunScoreboard(entries []storage.Entry, summary storage.Summary, width, height int) error {
	m := NewScoreboardModel(entries, summary, width, height)
	m.standalone = true
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
