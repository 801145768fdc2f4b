// Package tui provides the Bubble Tea front-end for tetrix.
// It owns the terminal loop, maps key presses to engine intents and draws the engine's screen.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrame caps the simulated time of one tick after a stall.
const maxFrame = 250 * time.Millisecond

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock turns tick timestamps into bounded frame durations.
type frameClock struct {
	last    time.Time
	nominal time.Duration
}

func newFrameClock(tickRate int) frameClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return frameClock{nominal: time.Second / time.Duration(tickRate)}
}

func (c *frameClock) advance(now time.Time) time.Duration {
	if c.last.IsZero() {
		c.last = now
		return c.nominal
	}
	dt := now.Sub(c.last)
	c.last = now
	return min(max(dt, 0), maxFrame)
}
