package core

// Color is a semantic color slot for a screen cell.
// The platform layer maps each slot to a concrete terminal color through the active theme,
// so game code never deals with palettes directly.
type Color uint8

const (
	ColorDefault Color = iota

	// Piece colors, one per tetromino kind.
	ColorCyan
	ColorYellow
	ColorPurple
	ColorGreen
	ColorRed
	ColorBlue
	ColorOrange

	ColorGhost  // landing projection of the falling piece
	ColorFlash  // rows waiting for the clear animation
	ColorBorder // well and panel frames
	ColorText   // HUD labels
	ColorAccent // titles, highlighted values
	ColorDim    // hints and secondary text
)

// colorCount is the number of defined color slots.
const colorCount = int(ColorDim) + 1

// Colors returns every defined slot in declaration order.
func Colors() []Color {
	out := make([]Color, colorCount)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}

// String returns the slot name, used in theme files and debug output.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorCyan:
		return "cyan"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorOrange:
		return "orange"
	case ColorGhost:
		return "ghost"
	case ColorFlash:
		return "flash"
	case ColorBorder:
		return "border"
	case ColorText:
		return "text"
	case ColorAccent:
		return "accent"
	case ColorDim:
		return "dim"
	default:
		return "unknown"
	}
}
