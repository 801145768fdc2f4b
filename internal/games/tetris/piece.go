package tetris

import "github.com/vovakirdan/tetrix/internal/core"

// Piece is a tetromino with a position and rotation.
// X and Y locate the top-left corner of the 4x4 bounding box on the board, so either may be
// negative while the occupied cells are still inside the well.
// Piece is a value type: assignment copies it.
type Piece struct {
	Kind     Kind
	X, Y     int
	Rotation int // clockwise quarter turns applied, 0..3

	cells matrix
}

// NewPiece returns a piece of kind k at the origin in its base rotation.
func NewPiece(k Kind) Piece {
	return Piece{Kind: k, cells: kindShapes[k]}
}

// RotateClockwise turns the matrix a quarter turn: new[r][c] = old[3-c][r].
// The position is unchanged; collision is the caller's concern.
func (p *Piece) RotateClockwise() {
	var next matrix
	for r := range 4 {
		for c := range 4 {
			next[r][c] = p.cells[3-c][r]
		}
	}
	p.cells = next
	p.Rotation = (p.Rotation + 1) % 4
}

// Translate shifts the piece without validation.
func (p *Piece) Translate(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Occupied reports whether the local cell (row, col) of the current matrix is filled.
func (p Piece) Occupied(row, col int) bool {
	if row < 0 || row >= 4 || col < 0 || col >= 4 {
		return false
	}
	return p.cells[row][col]
}

// OccupiedCells returns the absolute board coordinates of the piece's four cells,
// in row-major order of the matrix.
func (p Piece) OccupiedCells() []core.Point {
	origin := core.Point{X: p.X, Y: p.Y}
	pts := make([]core.Point, 0, 4)
	for r := range 4 {
		for c := range 4 {
			if p.cells[r][c] {
				pts = append(pts, origin.Add(c, r))
			}
		}
	}
	return pts
}

// Clone returns an independent copy.
func (p Piece) Clone() Piece {
	return p
}

// Color returns the display color of the piece's kind.
func (p Piece) Color() core.Color {
	return p.Kind.Color()
}

// bounds returns the min/max occupied local row and column, used to center previews.
func (p Piece) bounds() (minRow, maxRow, minCol, maxCol int) {
	minRow, minCol = 4, 4
	maxRow, maxCol = -1, -1
	for r := range 4 {
		for c := range 4 {
			if !p.cells[r][c] {
				continue
			}
			minRow = min(minRow, r)
			maxRow = max(maxRow, r)
			minCol = min(minCol, c)
			maxCol = max(maxCol, c)
		}
	}
	return minRow, maxRow, minCol, maxCol
}
