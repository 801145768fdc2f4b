package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetrix/internal/core"
	"github.com/vovakirdan/tetrix/internal/games/tetris"
)

// Scoreboard layout constants
const (
	maxScores        = 10 // the stored list never holds more
	scoreboardChrome = 8  // rows taken by title, borders and help
)

// ScoreboardModel shows the ranked high-score list in a bubbles table.
type ScoreboardModel struct {
	scores  tetris.ScoreStore
	logger  *log.Logger
	theme   Theme
	entries []tetris.ScoreEntry
	loadErr error
	table   table.Model
	help    help.Model
	keys    MenuKeyMap
	width   int
	height  int
	done    bool
}

// NewScoreboardModel creates a scoreboard and loads the current list.
func NewScoreboardModel(scores tetris.ScoreStore, theme Theme, logger *log.Logger, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		scores: scores,
		logger: logger,
		theme:  theme,
		help:   h,
		keys:   DefaultMenuKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.Reload()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 9},
		{Title: "Level", Width: 6},
		{Title: "Lines", Width: 6},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(min(m.height-scoreboardChrome, maxScores+1), 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Style(core.ColorBorder).GetForeground()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.theme.Style(core.ColorAccent).GetForeground()).
		Bold(true)
	t.SetStyles(s)

	return t
}

// Reload fetches the list again, e.g. after a game ended.
func (m *ScoreboardModel) Reload() {
	m.entries, m.loadErr = m.scores.Top(maxScores)
	if m.loadErr != nil {
		m.logger.Warn("cannot load high scores", "err", m.loadErr)
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, s := range m.entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Level),
			fmt.Sprintf("%d", s.Lines),
			s.At.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Select) {
			m.done = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.title().Render("HIGH SCORES"))
	b.WriteString("\n")

	var content string
	switch {
	case m.loadErr != nil:
		content = m.theme.help().Italic(true).Padding(1, 2).Render("Scores are unavailable right now.")
	case len(m.entries) == 0:
		content = m.theme.help().Italic(true).Padding(1, 2).Render("No scores recorded yet.\nPlay a game to set a high score!")
	default:
		content = m.table.View()
	}
	b.WriteString(m.theme.panel().Render(content))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// Done reports whether the user left the scoreboard.
func (m ScoreboardModel) Done() bool {
	return m.done
}
