package storage

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tetrix/internal/games/tetris"
)

// Memory is a process-local Backend with the same ranking rules as Store.
type Memory struct {
	mu       sync.Mutex
	scores   map[string][]tetris.ScoreEntry
	settings map[string]string
	nextID   int64
	now      func() time.Time
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		scores:   make(map[string][]tetris.ScoreEntry),
		settings: make(map[string]string),
		now:      time.Now,
	}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.settings[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *Memory) DeleteSetting(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.settings, key)
	return nil
}

func (m *Memory) AllSettings() ([]Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Setting, 0, len(m.settings))
	for k, v := range m.settings {
		out = append(out, Setting{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *Memory) SaveScore(e tetris.ScoreEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.At.IsZero() {
		e.At = m.now()
	}
	m.nextID++
	list := append(m.scores[e.GameID], e)
	// Stable sort keeps earlier entries ahead on ties, like the SQL ordering by id.
	sort.SliceStable(list, func(i, j int) bool { return list[i].Score > list[j].Score })
	if len(list) > MaxScoresPerGame {
		list = list[:MaxScoresPerGame]
	}
	m.scores[e.GameID] = list
	return m.nextID, nil
}

func (m *Memory) TopScores(gameID string, limit int) ([]tetris.ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = MaxScoresPerGame
	}
	list := m.scores[gameID]
	return slices.Clone(list[:min(limit, len(list))]), nil
}

func (m *Memory) HighScore(gameID string) (int, error) {
	top, _ := m.TopScores(gameID, 1)
	if len(top) == 0 {
		return 0, nil
	}
	return top[0].Score, nil
}

func (m *Memory) ClearScores(gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.scores, gameID)
	return nil
}

func (m *Memory) Scores(gameID string) tetris.ScoreStore {
	return gameScores{backend: m, gameID: gameID}
}

func (m *Memory) Close() error {
	return nil
}
