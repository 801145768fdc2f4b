package tui

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tetrix/internal/core"
	"github.com/vovakirdan/tetrix/internal/games/tetris"
)

const (
	scorePopupTTL = 1500 * time.Millisecond
	comboTTL      = time.Second
	tetrisTTL     = time.Second
	levelUpTTL    = 2 * time.Second

	// Rows are relative to the vertical center of the screen, which is the middle of the well.
	levelUpRow = -4
	tetrisRow  = -1
	comboRow   = 1
	scoreRow   = 4
	scoreRise  = 2 // rows a score popup floats up over its lifetime
)

// popup is one timed line of text drawn over the well.
type popup struct {
	text  string
	color core.Color
	row   int
	rise  int
	age   time.Duration
	ttl   time.Duration
}

// y returns the popup's screen row for a screen whose vertical center is mid.
func (p popup) y(mid int) int {
	return mid + p.row - int(time.Duration(p.rise)*p.age/p.ttl)
}

// fading reports whether the popup is in the last third of its life.
func (p popup) fading() bool {
	return p.age*3 >= p.ttl*2
}

// effects turns game events into short text overlays drawn over the well.
type effects struct {
	popups []popup
}

// Observe queues the overlays for one event. Unrelated events are ignored.
func (f *effects) Observe(ev tetris.Event) {
	switch ev := ev.(type) {
	case tetris.ScoreGained:
		f.pushScore(fmt.Sprintf("+%d", ev.Points), core.ColorAccent)
	case tetris.HardDropBonus:
		f.pushScore(fmt.Sprintf("+%d", ev.Points), core.ColorText)
	case tetris.ComboAchieved:
		f.replace(comboRow, popup{text: fmt.Sprintf("COMBO x%d!", ev.Combo), color: comboColor(ev.Combo), row: comboRow, ttl: comboTTL})
	case tetris.LinesCleared:
		if ev.IsTetris {
			f.replace(tetrisRow, popup{text: "TETRIS!", color: core.ColorCyan, row: tetrisRow, ttl: tetrisTTL})
		}
	case tetris.LeveledUp:
		f.replace(levelUpRow, popup{text: "LEVEL UP!", color: core.ColorAccent, row: levelUpRow, ttl: levelUpTTL})
		f.replace(levelUpRow+1, popup{text: fmt.Sprintf("Level %d", ev.Level), color: core.ColorText, row: levelUpRow + 1, ttl: levelUpTTL})
	}
}

// pushScore stacks rising popups so simultaneous gains do not overwrite each other.
func (f *effects) pushScore(text string, c core.Color) {
	slot := 0
	for _, p := range f.popups {
		if p.rise > 0 {
			slot++
		}
	}
	f.popups = append(f.popups, popup{text: text, color: c, row: scoreRow + slot, rise: scoreRise, ttl: scorePopupTTL})
}

// replace shows p in place of any fixed popup already on row.
func (f *effects) replace(row int, p popup) {
	kept := f.popups[:0]
	for _, q := range f.popups {
		if q.rise > 0 || q.row != row {
			kept = append(kept, q)
		}
	}
	f.popups = append(kept, p)
}

// Advance ages every popup by dt and drops the expired ones.
func (f *effects) Advance(dt time.Duration) {
	kept := f.popups[:0]
	for _, p := range f.popups {
		p.age += dt
		if p.age < p.ttl {
			kept = append(kept, p)
		}
	}
	f.popups = kept
}

// Reset drops every popup.
func (f *effects) Reset() {
	f.popups = f.popups[:0]
}

// Active returns the texts currently shown, oldest first.
func (f *effects) Active() []string {
	out := make([]string, 0, len(f.popups))
	for _, p := range f.popups {
		out = append(out, p.text)
	}
	return out
}

// Draw renders the popups centered on dst. The well is centered, so they land over it.
func (f *effects) Draw(dst *core.Screen) {
	mid := dst.Height() / 2
	for _, p := range f.popups {
		c := p.color
		if p.fading() {
			c = core.ColorDim
		}
		dst.DrawTextCentered(p.y(mid), p.text, c)
	}
}

func comboColor(combo int) core.Color {
	switch {
	case combo >= 5:
		return core.ColorPurple
	case combo >= 3:
		return core.ColorOrange
	default:
		return core.ColorYellow
	}
}
