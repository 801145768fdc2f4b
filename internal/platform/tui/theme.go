package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetrix/internal/config"
	"github.com/vovakirdan/tetrix/internal/core"
)

// Theme maps every core.Color slot to a terminal style.
type Theme struct {
	Name   string
	styles map[core.Color]lipgloss.Style
}

type palette struct {
	pieces [7]lipgloss.Color // I O T S Z J L
	ghost  lipgloss.Color
	flash  lipgloss.Color
	border lipgloss.Color
	text   lipgloss.Color
	accent lipgloss.Color
	dim    lipgloss.Color
}

var palettes = map[string]palette{
	config.ThemeNeon: {
		pieces: [7]lipgloss.Color{"51", "226", "171", "118", "199", "33", "208"},
		ghost:  "240",
		flash:  "231",
		border: "87",
		text:   "255",
		accent: "199",
		dim:    "243",
	},
	config.ThemePastel: {
		pieces: [7]lipgloss.Color{"123", "229", "183", "157", "218", "153", "223"},
		ghost:  "246",
		flash:  "231",
		border: "189",
		text:   "254",
		accent: "218",
		dim:    "247",
	},
	config.ThemeRetro: {
		pieces: [7]lipgloss.Color{"64", "107", "71", "113", "58", "65", "149"},
		ghost:  "236",
		flash:  "192",
		border: "100",
		text:   "113",
		accent: "149",
		dim:    "58",
	},
}

var pieceSlots = [7]core.Color{
	core.ColorCyan,
	core.ColorYellow,
	core.ColorPurple,
	core.ColorGreen,
	core.ColorRed,
	core.ColorBlue,
	core.ColorOrange,
}

// ThemeByName returns the named theme, falling back to NEON for unknown names.
func ThemeByName(name string) Theme {
	name = strings.ToUpper(name)
	p, ok := palettes[name]
	if !ok {
		name = config.ThemeNeon
		p = palettes[name]
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	styles := map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
		core.ColorGhost:   fg(p.ghost),
		core.ColorFlash:   fg(p.flash).Bold(true),
		core.ColorBorder:  fg(p.border),
		core.ColorText:    fg(p.text),
		core.ColorAccent:  fg(p.accent).Bold(true),
		core.ColorDim:     fg(p.dim),
	}
	for i, slot := range pieceSlots {
		styles[slot] = fg(p.pieces[i])
	}
	return Theme{Name: name, styles: styles}
}

// Style returns the style for a color slot.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.styles[c]; ok {
		return s
	}
	return t.styles[core.ColorDefault]
}

func (t Theme) title() lipgloss.Style {
	return t.Style(core.ColorAccent).MarginBottom(1)
}

func (t Theme) item(active bool) lipgloss.Style {
	if active {
		return t.Style(core.ColorAccent)
	}
	return t.Style(core.ColorText)
}

func (t Theme) help() lipgloss.Style {
	return t.Style(core.ColorDim)
}

func (t Theme) panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Style(core.ColorBorder).GetForeground()).
		Padding(0, 1)
}
