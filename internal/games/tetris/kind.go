// Package tetris implements the falling-block rules engine: the board, tetromino geometry,
// scoring and the tick-driven game state machine.
//
// The package is pure logic. It never touches the terminal, the clock or the filesystem;
// time arrives as elapsed durations, input as semantic actions, and persistence goes through
// the SettingsStore and ScoreStore interfaces.
package tetris

import "github.com/vovakirdan/tetrix/internal/core"

// GameID identifies this game in score storage.
const GameID = "tetrix"

// Board dimensions in cells.
const (
	Width  = 10
	Height = 20
)

// Kind is one of the seven tetromino shapes.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

const kindCount = 7

// matrix is a 4x4 occupancy grid indexed [row][col].
type matrix [4][4]bool

// Static per-kind tables, indexed by Kind.
var (
	kindShapes = [kindCount]matrix{
		KindI: shape(
			"....",
			"XXXX",
			"....",
			"....",
		),
		KindO: shape(
			".XX.",
			".XX.",
			"....",
			"....",
		),
		KindT: shape(
			".X..",
			"XXX.",
			"....",
			"....",
		),
		KindS: shape(
			".XX.",
			"XX..",
			"....",
			"....",
		),
		KindZ: shape(
			"XX..",
			".XX.",
			"....",
			"....",
		),
		KindJ: shape(
			"X...",
			"XXX.",
			"....",
			"....",
		),
		KindL: shape(
			"..X.",
			"XXX.",
			"....",
			"....",
		),
	}

	kindColors = [kindCount]core.Color{
		KindI: core.ColorCyan,
		KindO: core.ColorYellow,
		KindT: core.ColorPurple,
		KindS: core.ColorGreen,
		KindZ: core.ColorRed,
		KindJ: core.ColorBlue,
		KindL: core.ColorOrange,
	}

	kindNames = [kindCount]string{"I", "O", "T", "S", "Z", "J", "L"}
)

func shape(rows ...string) matrix {
	var m matrix
	for r, row := range rows {
		for c, ch := range row {
			m[r][c] = ch == 'X'
		}
	}
	return m
}

// Kinds returns all seven kinds in table order.
func Kinds() []Kind {
	return []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}
}

// Valid reports whether k names one of the seven kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "?"
	}
	return kindNames[k]
}

// Color returns the display color of the kind.
func (k Kind) Color() core.Color {
	if !k.Valid() {
		return core.ColorDefault
	}
	return kindColors[k]
}
