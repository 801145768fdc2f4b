package tetris

// Snapshot captures the game state for determinism testing and debugging.
// It is comparable with ==.
type Snapshot struct {
	Tick        uint64
	State       GameState
	Score       int
	Level       int
	Lines       int
	Combo       int
	Current     Kind
	X           int
	Y           int
	Rotation    int
	Next        Kind
	Held        Kind
	HasHeld     bool
	CanHold     bool
	PendingRows int
	FilledCells int
}

// Snapshot returns the current game snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:        e.tick,
		State:       e.state,
		Score:       e.scoring.Score(),
		Level:       e.scoring.Level(),
		Lines:       e.scoring.Lines(),
		Combo:       e.scoring.Combo(),
		Current:     e.current.Kind,
		X:           e.current.X,
		Y:           e.current.Y,
		Rotation:    e.current.Rotation,
		Next:        e.next,
		Held:        e.held,
		HasHeld:     e.hasHeld,
		CanHold:     e.canHold,
		PendingRows: len(e.pending),
		FilledCells: e.board.FilledCount(),
	}
}
