package tetris

import "time"

// keyRepeat debounces one held action.
// On the first active tick it fires and arms initialDelay; while still active it fires
// again each time the timer runs out, re-armed with repeatRate. Releasing resets it.
// A sticky timer keeps counting down while released, which turns it into a cooldown.
type keyRepeat struct {
	timer        time.Duration
	initialDelay time.Duration
	repeatRate   time.Duration
	sticky       bool

	repeating bool
}

func newKeyRepeat(initialDelay, repeatRate time.Duration) keyRepeat {
	return keyRepeat{initialDelay: initialDelay, repeatRate: repeatRate}
}

func newCooldown(delay time.Duration) keyRepeat {
	return keyRepeat{initialDelay: delay, repeatRate: delay, sticky: true}
}

// advance moves the timer by dt and reports whether the action fires this tick.
func (k *keyRepeat) advance(active bool, dt time.Duration) bool {
	if !active {
		if k.sticky {
			k.timer = max(k.timer-dt, 0)
		} else {
			k.timer = 0
		}
		k.repeating = false
		return false
	}

	fire := false
	if k.timer <= 0 {
		fire = true
		if k.repeating {
			k.timer = k.repeatRate
		} else {
			k.timer = k.initialDelay
			k.repeating = true
		}
	}
	k.timer -= dt
	return fire
}

func (k *keyRepeat) reset() {
	k.timer = 0
	k.repeating = false
}
