package tetris

import "github.com/vovakirdan/tetrix/internal/core"

// Cell is a single board square.
type Cell struct {
	Filled bool
	Color  core.Color
}

// Board is the fixed Width x Height well. Row 0 is the top.
// Cells above row 0 are an unbounded spawn buffer that is always free.
type Board struct {
	cells [Height][Width]Cell
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Reset empties the board.
func (b *Board) Reset() {
	b.cells = [Height][Width]Cell{}
}

// At returns the cell at (x, y). Coordinates outside the grid read as empty.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return Cell{}
	}
	return b.cells[y][x]
}

// IsValidPosition reports whether p shifted by (dx, dy) fits: every cell inside
// [0,Width) horizontally, above the floor, and not on an occupied square.
// Cells with negative y are accepted.
func (b *Board) IsValidPosition(p Piece, dx, dy int) bool {
	for _, pt := range p.OccupiedCells() {
		x, y := pt.X+dx, pt.Y+dy
		if x < 0 || x >= Width || y >= Height {
			return false
		}
		if y < 0 {
			continue
		}
		if b.cells[y][x].Filled {
			return false
		}
	}
	return true
}

// Place commits p to the board in its color. Cells above the grid are dropped.
// It returns false without touching the board if p is not in a valid position.
func (b *Board) Place(p Piece) bool {
	if !b.IsValidPosition(p, 0, 0) {
		return false
	}
	color := p.Color()
	for _, pt := range p.OccupiedCells() {
		if pt.Y < 0 {
			continue
		}
		b.cells[pt.Y][pt.X] = Cell{Filled: true, Color: color}
	}
	return true
}

// FilledRows returns the indices of complete rows in ascending order.
func (b *Board) FilledRows() []int {
	var rows []int
	for y := range Height {
		if b.rowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

func (b *Board) rowFull(y int) bool {
	for x := range Width {
		if !b.cells[y][x].Filled {
			return false
		}
	}
	return true
}

// ClearRows removes the given rows and inserts as many empty rows at the top.
// Remaining rows keep their relative order. Out-of-range and repeated indices are ignored.
func (b *Board) ClearRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	var drop [Height]bool
	for _, y := range rows {
		if y >= 0 && y < Height {
			drop[y] = true
		}
	}

	var next [Height][Width]Cell
	dst := Height - 1
	for y := Height - 1; y >= 0; y-- {
		if drop[y] {
			continue
		}
		next[dst] = b.cells[y]
		dst--
	}
	b.cells = next
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	n := 0
	for y := range Height {
		for x := range Width {
			if b.cells[y][x].Filled {
				n++
			}
		}
	}
	return n
}
