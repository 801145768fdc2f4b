package tui

import (
	"strings"

	"github.com/vovakirdan/tetrix/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is emitted as runs of equal color to keep ANSI sequences short.
// When flashOn is false, flash cells are drawn dimmed so pending rows blink.
func RenderScreen(s *core.Screen, theme Theme, flashOn bool) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, run := range s.Runs(y) {
			c := run.Color
			if c == core.ColorFlash && !flashOn {
				c = core.ColorDim
			}
			sb.WriteString(theme.Style(c).Render(run.Text))
		}
	}
	return sb.String()
}
