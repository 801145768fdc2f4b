package tetris

import (
	"fmt"

	"github.com/vovakirdan/tetrix/internal/core"
)

// Layout in screen characters. Each board cell is two characters wide.
const (
	cellW   = 2
	wellW   = Width*cellW + 2
	wellH   = Height + 2
	panelW  = 14
	panelH  = 6
	gutter  = 2
	layoutW = panelW + gutter + wellW + gutter + panelW
	layoutH = wellH
)

// MinScreenSize is the smallest screen Render can draw the full layout on.
func MinScreenSize() (w, h int) {
	return layoutW, layoutH
}

// Render draws the well, pieces, previews, HUD and state overlays.
func (e *Engine) Render(dst *core.Screen) {
	dst.Clear()

	if e.screenW < layoutW || e.screenH < layoutH {
		renderTooSmall(dst)
		return
	}

	originX := (e.screenW - layoutW) / 2
	originY := (e.screenH - layoutH) / 2
	wellX := originX + panelW + gutter
	rightX := wellX + wellW + gutter

	e.renderWell(dst, wellX, originY)

	held, hasHeld := e.Held()
	renderPreview(dst, core.NewRect(originX, originY, panelW, panelH), "HOLD", held, hasHeld && e.state != StateMenu, !e.canHold)
	renderPreview(dst, core.NewRect(rightX, originY, panelW, panelH), "NEXT", e.next, e.state != StateMenu, false)

	e.renderStats(dst, rightX, originY+panelH+1)
	renderKeys(dst, originX, originY+panelH+1)

	e.renderOverlay(dst, core.NewRect(wellX, originY, wellW, wellH))
}

func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorText)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", layoutW, layoutH), core.ColorDim)
}

func (e *Engine) renderWell(dst *core.Screen, x0, y0 int) {
	dst.DrawBox(core.NewRect(x0, y0, wellW, wellH), core.ColorBorder)

	pending := make(map[int]bool, len(e.pending))
	for _, y := range e.pending {
		pending[y] = true
	}

	cellAt := func(bx, by int) (int, int) {
		return x0 + 1 + bx*cellW, y0 + 1 + by
	}

	for by := range Height {
		for bx := range Width {
			sx, sy := cellAt(bx, by)
			c := e.board.At(bx, by)
			switch {
			case pending[by]:
				drawBlock(dst, sx, sy, '█', core.ColorFlash)
			case c.Filled:
				drawBlock(dst, sx, sy, '█', c.Color)
			default:
				dst.SetColored(sx, sy, ' ', core.ColorDefault)
				dst.SetColored(sx+1, sy, '·', core.ColorDim)
			}
		}
	}

	if e.state == StateMenu || e.pending != nil {
		return
	}

	if ghost, ok := e.Ghost(); ok {
		for _, p := range ghost.OccupiedCells() {
			if p.Y < 0 {
				continue
			}
			sx, sy := cellAt(p.X, p.Y)
			drawBlock(dst, sx, sy, '░', core.ColorGhost)
		}
	}

	for _, p := range e.current.OccupiedCells() {
		if p.Y < 0 {
			continue
		}
		sx, sy := cellAt(p.X, p.Y)
		drawBlock(dst, sx, sy, '█', e.current.Color())
	}
}

func drawBlock(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := range cellW {
		dst.SetColored(x+i, y, r, c)
	}
}

// renderPreview draws a boxed piece preview centered in r. A spent hold is dimmed.
func renderPreview(dst *core.Screen, r core.Rect, title string, k Kind, show, dimmed bool) {
	dst.DrawBox(r, core.ColorBorder)
	dst.DrawTextColored(r.X+2, r.Y, " "+title+" ", core.ColorAccent)
	if !show {
		return
	}

	p := NewPiece(k)
	minRow, maxRow, minCol, maxCol := p.bounds()
	w := (maxCol - minCol + 1) * cellW
	h := maxRow - minRow + 1
	inner := core.NewRect(r.X+1, r.Y+1, r.W-2, r.H-2).Centered(w, h)

	color := p.Color()
	if dimmed {
		color = core.ColorDim
	}
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if p.Occupied(row, col) {
				drawBlock(dst, inner.X+(col-minCol)*cellW, inner.Y+row-minRow, '█', color)
			}
		}
	}
}

func (e *Engine) renderStats(dst *core.Screen, x, y int) {
	st := e.Stats()
	rows := []struct {
		label string
		value int
	}{
		{"SCORE", st.Score},
		{"LEVEL", st.Level},
		{"LINES", st.Lines},
		{"BEST", st.Best},
	}
	for i, row := range rows {
		dst.DrawTextColored(x, y+i*2, row.label, core.ColorText)
		dst.DrawTextColored(x, y+i*2+1, fmt.Sprintf("%d", row.value), core.ColorAccent)
	}
	if st.Combo > 1 {
		dst.DrawTextColored(x, y+len(rows)*2, fmt.Sprintf("COMBO x%d", st.Combo), core.ColorAccent)
	}
}

func renderKeys(dst *core.Screen, x, y int) {
	keys := []string{
		"←→  move",
		"↑   rotate",
		"↓   soft drop",
		"SPC hard drop",
		"C   hold",
		"G   ghost",
		"P   pause",
		"ESC menu",
	}
	for i, k := range keys {
		dst.DrawTextColored(x, y+i, k, core.ColorDim)
	}
}

func (e *Engine) renderOverlay(dst *core.Screen, well core.Rect) {
	var lines []string
	switch e.state {
	case StateMenu:
		lines = []string{"READY", "ENTER to start"}
	case StatePaused:
		lines = []string{"PAUSED", "P resume", "R restart"}
	case StateGameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("SCORE %d", e.scoring.Score()), "R retry  ESC menu"}
	default:
		return
	}

	box := well.Centered(well.W-2, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorAccent)
	for i, line := range lines {
		color := core.ColorText
		if i == 0 {
			color = core.ColorAccent
		}
		lx := box.X + (box.W-len([]rune(line)))/2
		dst.DrawTextColored(lx, box.Y+1+i, line, color)
	}
}
