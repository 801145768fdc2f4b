package tetris

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetrix/internal/config"
	"github.com/vovakirdan/tetrix/internal/core"
)

var errStoreDown = errors.New("store unavailable")

type memSettings struct {
	values map[string]string
	setErr error
}

func newMemSettings() *memSettings {
	return &memSettings{values: make(map[string]string)}
}

func (m *memSettings) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memSettings) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

type memScores struct {
	entries []ScoreEntry
	err     error
}

func (m *memScores) Record(e ScoreEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.entries[i].Score > m.entries[j].Score
	})
	return nil
}

func (m *memScores) Top(n int) ([]ScoreEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entries[:min(n, len(m.entries))], nil
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const frame = 16 * time.Millisecond

func newTestEngine(t *testing.T) (*Engine, *memSettings, *memScores) {
	t.Helper()
	settings := newMemSettings()
	scores := &memScores{}
	e := New(config.DefaultTetrixConfig(), settings, scores, WithClock(func() time.Time { return fixedNow }))
	e.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return e, settings, scores
}

// startedEngine returns an engine that has just entered Playing.
func startedEngine(t *testing.T) (*Engine, *memSettings, *memScores) {
	t.Helper()
	e, settings, scores := newTestEngine(t)
	res := step(e, frame, core.ActionStart)
	require.Equal(t, StatePlaying, res.State)
	step(e, frame) // release Start
	return e, settings, scores
}

func step(e *Engine, dt time.Duration, actions ...core.Action) StepResult {
	return e.Step(Tick{Elapsed: dt, Input: core.NewInputFrame(actions...)})
}

func ack(e *Engine) StepResult {
	return e.Step(Tick{Elapsed: frame, Input: core.NewInputFrame(), ClearAck: true})
}

func fill(b *Board, y int, color core.Color, skip ...int) {
	for x := range Width {
		skipped := false
		for _, s := range skip {
			if s == x {
				skipped = true
			}
		}
		if !skipped {
			b.cells[y][x] = Cell{Filled: true, Color: color}
		}
	}
}

func eventsOf[T Event](events []Event) []T {
	var out []T
	for _, ev := range events {
		if v, ok := ev.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
