package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetrix/internal/games/tetris"
)

// Setting is one stored key-value pair.
type Setting struct {
	Key   string
	Value string
}

// Backend is the persistence surface used by the CLI and the front-end.
// Implementations are safe for concurrent use by multiple sessions.
type Backend interface {
	tetris.SettingsStore
	DeleteSetting(key string) error
	AllSettings() ([]Setting, error)

	SaveScore(e tetris.ScoreEntry) (int64, error)
	TopScores(gameID string, limit int) ([]tetris.ScoreEntry, error)
	HighScore(gameID string) (int, error)
	ClearScores(gameID string) error
	Scores(gameID string) tetris.ScoreStore

	Close() error
}

var (
	_ Backend = (*Store)(nil)
	_ Backend = (*Memory)(nil)
)

// OpenOrMemory opens the SQLite store at path, falling back to an in-memory backend
// when path is empty or the database cannot be opened. Scores then last for the process only.
func OpenOrMemory(path string, logger *log.Logger) Backend {
	if path == "" {
		logger.Debug("no database path, keeping scores in memory")
		return NewMemory()
	}
	store, err := Open(path)
	if err != nil {
		logger.Warn("cannot open score database, keeping scores in memory", "path", path, "err", err)
		return NewMemory()
	}
	logger.Debug("score database opened", "path", path)
	return store
}

// gameScores adapts a Backend to the engine's per-game ScoreStore.
type gameScores struct {
	backend interface {
		SaveScore(e tetris.ScoreEntry) (int64, error)
		TopScores(gameID string, limit int) ([]tetris.ScoreEntry, error)
	}
	gameID string
}

func (g gameScores) Record(e tetris.ScoreEntry) error {
	if e.GameID == "" {
		e.GameID = g.gameID
	}
	_, err := g.backend.SaveScore(e)
	return err
}

func (g gameScores) Top(n int) ([]tetris.ScoreEntry, error) {
	return g.backend.TopScores(g.gameID, n)
}
