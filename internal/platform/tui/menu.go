package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetrix/internal/config"
	"github.com/vovakirdan/tetrix/internal/games/tetris"
)

// MenuChoice is what the user picked on the main menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoiceStart
	MenuChoiceScores
	MenuChoiceThemes
	MenuChoiceExit
)

var menuItems = []struct {
	title  string
	choice MenuChoice
}{
	{"START GAME", MenuChoiceStart},
	{"HIGH SCORES", MenuChoiceScores},
	{"THEMES", MenuChoiceThemes},
	{"EXIT", MenuChoiceExit},
}

// MenuModel is the main menu.
type MenuModel struct {
	cursor int
	keys   MenuKeyMap
	help   help.Model
}

// NewMenuModel creates a menu with the cursor on START GAME.
func NewMenuModel() MenuModel {
	return MenuModel{
		keys: DefaultMenuKeyMap(),
		help: help.New(),
	}
}

// Update moves the cursor and reports a choice once one is made.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, MenuChoice) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, MenuChoiceNone
	}

	switch {
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Select):
		return m, menuItems[m.cursor].choice
	case key.Matches(km, m.keys.Quit), key.Matches(km, m.keys.Back):
		return m, MenuChoiceExit
	}
	return m, MenuChoiceNone
}

// View renders the menu centered in a width x height area.
func (m MenuModel) View(theme Theme, best, width, height int) string {
	var b strings.Builder

	b.WriteString(theme.title().Render("T E T R I X"))
	b.WriteString("\n")
	b.WriteString(theme.item(false).Render(fmt.Sprintf("BEST %d", best)))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(theme.item(i == m.cursor).Render(cursor + item.title))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// ThemesModel lets the user browse the palettes with a live preview.
type ThemesModel struct {
	cursor int
	keys   MenuKeyMap
	help   help.Model
}

// NewThemesModel creates the picker with the cursor on the active theme.
func NewThemesModel(active string) ThemesModel {
	m := ThemesModel{
		keys: DefaultMenuKeyMap(),
		help: help.New(),
	}
	for i, name := range config.Themes {
		if strings.EqualFold(name, active) {
			m.cursor = i
		}
	}
	return m
}

// Update moves the cursor. confirmed is set when Enter picks a theme; done when the picker closes.
func (m ThemesModel) Update(msg tea.Msg) (next ThemesModel, confirmed, done bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false, false
	}

	switch {
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(config.Themes)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Select):
		return m, true, true
	case key.Matches(km, m.keys.Back):
		return m, false, true
	}
	return m, false, false
}

// Selected returns the theme under the cursor.
func (m ThemesModel) Selected() Theme {
	return ThemeByName(config.Themes[m.cursor])
}

// View renders the picker in the highlighted theme.
func (m ThemesModel) View(width, height int) string {
	theme := m.Selected()

	items := make([]string, 0, len(config.Themes))
	for i, name := range config.Themes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		items = append(items, theme.item(i == m.cursor).Render(cursor+name))
	}

	list := lipgloss.JoinVertical(lipgloss.Left, items...)
	preview := theme.panel().Render(renderPiecePreview(theme))
	body := lipgloss.JoinHorizontal(lipgloss.Center, list, "    ", preview)

	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.title().Render("THEMES"),
		body,
		"",
		m.help.View(m.keys),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderPiecePreview draws all seven tetrominoes in the theme's colors.
func renderPiecePreview(theme Theme) string {
	kinds := tetris.Kinds()
	top := renderPieceRow(theme, kinds[:4])
	bottom := renderPieceRow(theme, kinds[4:])
	return lipgloss.JoinVertical(lipgloss.Left, top, "", bottom)
}

func renderPieceRow(theme Theme, kinds []tetris.Kind) string {
	items := make([]string, 0, len(kinds))
	for _, k := range kinds {
		items = append(items, lipgloss.NewStyle().MarginRight(2).Render(renderMiniPiece(theme, k)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func renderMiniPiece(theme Theme, k tetris.Kind) string {
	p := tetris.NewPiece(k)
	style := theme.Style(k.Color())

	var rows []string
	for r := range 4 {
		var line strings.Builder
		filled := false
		for c := range 4 {
			if p.Occupied(r, c) {
				line.WriteString(style.Render("██"))
				filled = true
			} else {
				line.WriteString("  ")
			}
		}
		if filled {
			rows = append(rows, line.String())
		}
	}
	return strings.Join(rows, "\n")
}
