package tui

import (
	"time"

	"github.com/vovakirdan/tetrix/internal/core"
)

// holdTracker rebuilds "key is down" state from terminal key presses.
// Terminals report presses and auto-repeats but no releases, so a held action stays
// active until window passes without another press. Edge actions last one frame.
type holdTracker struct {
	window time.Duration
	held   map[core.Action]time.Duration // time since last press
	pulses []core.Action
}

func newHoldTracker(window time.Duration) *holdTracker {
	return &holdTracker{
		window: window,
		held:   make(map[core.Action]time.Duration),
	}
}

// Press records a key press for a.
func (h *holdTracker) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if a.Held() {
		h.held[a] = 0
		return
	}
	h.pulses = append(h.pulses, a)
}

// Frame returns the actions active for a tick of length dt and ages the held keys.
func (h *holdTracker) Frame(dt time.Duration) core.InputFrame {
	frame := core.NewInputFrame(h.pulses...)
	h.pulses = h.pulses[:0]

	for a, since := range h.held {
		if since > h.window {
			delete(h.held, a)
			continue
		}
		frame.Set(a)
		h.held[a] = since + dt
	}
	return frame
}

// Reset forgets every pressed key.
func (h *holdTracker) Reset() {
	clear(h.held)
	h.pulses = h.pulses[:0]
}

// clearGate times the line clear flash and decides when to acknowledge it.
// A four-line clear flashes for tetrisDuration when that is set.
type clearGate struct {
	duration       time.Duration
	tetrisDuration time.Duration

	target  time.Duration
	elapsed time.Duration
	active  bool
}

// Start begins the flash for a fresh LinesCleared event.
func (g *clearGate) Start(isTetris bool) {
	g.active = true
	g.elapsed = 0
	g.target = g.duration
	if isTetris && g.tetrisDuration > 0 {
		g.target = g.tetrisDuration
	}
}

// Advance moves the flash forward by dt and reports whether to acknowledge.
// The acknowledgment repeats every tick until the engine reports no pending rows.
// Callers stop advancing while the game is paused so the flash freezes with it.
func (g *clearGate) Advance(dt time.Duration, pending bool) bool {
	if !pending {
		g.active = false
		return false
	}
	if !g.active {
		g.Start(false)
	}
	g.elapsed += dt
	return g.elapsed >= g.target
}

// FlashOn reports the blink phase of the pending rows.
func (g *clearGate) FlashOn() bool {
	if !g.active {
		return true
	}
	return (g.elapsed/flashPeriod)%2 == 0
}

const flashPeriod = 75 * time.Millisecond
