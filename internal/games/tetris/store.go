package tetris

import "time"

// Settings keys read by the engine and the front-end.
const (
	SettingTheme = "theme"
	SettingGhost = "ghost" // "on" or "off"
)

// ScoreEntry is one finished game in the ranked score list.
type ScoreEntry struct {
	GameID string
	RunID  string
	Score  int
	Level  int
	Lines  int
	At     time.Time
}

// SettingsStore is a persistent key-value store.
// Get reports false when the key is unset or the store cannot be read.
type SettingsStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// ScoreStore is a ranked score list. Implementations keep the best entries sorted by
// score, highest first.
type ScoreStore interface {
	Record(entry ScoreEntry) error
	Top(n int) ([]ScoreEntry, error)
}

// NopSettings ignores writes and has no values.
type NopSettings struct{}

func (NopSettings) Get(string) (string, bool) { return "", false }
func (NopSettings) Set(string, string) error { return nil }

// NopScores records nothing.
type NopScores struct{}

func (NopScores) Record(ScoreEntry) error { return nil }
func (NopScores) Top(int) ([]ScoreEntry, error) { return nil, nil }
