package tetris

// Event is an outbound notification produced by Step for the presentation layer
// (animation, sound, persistence). The set is closed.
type Event interface {
	gameEvent()
}

// PieceSpawned is sent when a new piece enters the well.
type PieceSpawned struct {
	Kind Kind
}

// PieceLocked is sent when the current piece is committed to the board.
type PieceLocked struct {
	Kind Kind
}

// PieceHeld is sent when a piece is moved into the hold slot.
type PieceHeld struct {
	Kind Kind
}

// LinesCleared reports rows waiting for removal. The engine stops simulating until
// the presentation layer acknowledges the clear with Tick.ClearAck.
type LinesCleared struct {
	Rows     []int
	IsTetris bool
}

// ScoreGained reports points from a clearing placement.
type ScoreGained struct {
	Points          int
	Combo           int
	ComboMultiplier float64
}

// ComboAchieved is sent for every clearing placement that extends a streak past one.
type ComboAchieved struct {
	Combo int
}

// LeveledUp is sent when the level increases.
type LeveledUp struct {
	Level int
}

// HardDropBonus reports points awarded for a hard drop.
type HardDropBonus struct {
	Points int
	Rows   int
}

// GameOver is sent when a spawn fails.
type GameOver struct {
	FinalScore     int
	FinalLevel     int
	ElapsedSeconds float64
}

// StateChanged is sent on every state machine transition.
type StateChanged struct {
	From GameState
	To   GameState
}

func (PieceSpawned) gameEvent() {}
func (PieceLocked) gameEvent() {}
func (PieceHeld) gameEvent() {}
func (LinesCleared) gameEvent() {}
func (ScoreGained) gameEvent() {}
func (ComboAchieved) gameEvent() {}
func (LeveledUp) gameEvent() {}
func (HardDropBonus) gameEvent() {}
func (GameOver) gameEvent() {}
func (StateChanged) gameEvent() {}
