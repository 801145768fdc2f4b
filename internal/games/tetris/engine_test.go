package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetrix/internal/config"
	"github.com/vovakirdan/tetrix/internal/core"
)

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and inputs must end in identical snapshots.
	script := func(i int) []core.Action {
		switch {
		case i == 0:
			return []core.Action{core.ActionStart}
		case i%40 == 10:
			return []core.Action{core.ActionRotate}
		case i%40 == 20:
			return []core.Action{core.ActionMoveLeft}
		case i%40 == 30:
			return []core.Action{core.ActionHardDrop}
		case i == 75:
			return []core.Action{core.ActionHold}
		}
		return nil
	}

	run := func() Snapshot {
		e, _, _ := newTestEngine(t)
		for i := range 400 {
			e.Step(Tick{Elapsed: frame, Input: core.NewInputFrame(script(i)...), ClearAck: true})
		}
		return e.Snapshot()
	}

	snap1 := run()
	snap2 := run()
	assert.Equal(t, snap1, snap2)
	assert.Equal(t, uint64(400), snap1.Tick)
	assert.Positive(t, snap1.FilledCells)
}

func TestSpawnAtTopCenter(t *testing.T) {
	e, _, _ := startedEngine(t)

	assert.Equal(t, Width/2-2, e.current.X)
	assert.Equal(t, 0, e.current.Y)
	assert.True(t, e.canHold)

	e.current = spawnPiece(KindI)
	assert.True(t, e.board.IsValidPosition(e.current, 0, 0))
	for _, p := range e.current.OccupiedCells() {
		assert.Equal(t, 1, p.Y)
		assert.GreaterOrEqual(t, p.X, 3)
		assert.LessOrEqual(t, p.X, 6)
	}
}

func TestStartEmitsStateChangeAndSpawn(t *testing.T) {
	e, _, _ := newTestEngine(t)
	assert.Equal(t, StateMenu, e.State())

	res := step(e, frame, core.ActionStart)
	require.Equal(t, StatePlaying, res.State)
	require.Len(t, res.Events, 2)
	assert.Equal(t, StateChanged{From: StateMenu, To: StatePlaying}, res.Events[0])
	assert.IsType(t, PieceSpawned{}, res.Events[1])
}

func TestStateTransitions(t *testing.T) {
	e, _, scores := newTestEngine(t)

	// Menu ignores everything but Start.
	step(e, frame, core.ActionPauseToggle)
	step(e, frame, core.ActionRestart)
	step(e, frame, core.ActionToMenu)
	assert.Equal(t, StateMenu, e.State())

	step(e, frame, core.ActionStart)
	assert.Equal(t, StatePlaying, e.State())

	// Holding Start does not restart.
	step(e, frame, core.ActionStart)
	assert.Equal(t, StatePlaying, e.State())

	// Restart is ignored while playing.
	step(e, frame, core.ActionRestart)
	assert.Equal(t, StatePlaying, e.State())

	step(e, frame, core.ActionPauseToggle)
	assert.Equal(t, StatePaused, e.State())
	step(e, frame)
	step(e, frame, core.ActionPauseToggle)
	assert.Equal(t, StatePlaying, e.State())

	step(e, frame, core.ActionToMenu)
	assert.Equal(t, StateMenu, e.State())
	assert.Empty(t, scores.entries, "an abandoned game is not recorded")
}

func TestPauseFreezesTimers(t *testing.T) {
	e, _, _ := startedEngine(t)
	step(e, frame, core.ActionPauseToggle)
	before := e.Snapshot()

	for range 10 {
		step(e, time.Second, core.ActionSoftDrop, core.ActionMoveLeft)
	}
	after := e.Snapshot()

	assert.Equal(t, before.Y, after.Y)
	assert.Equal(t, before.X, after.X)
	assert.Equal(t, StatePaused, after.State)
}

func TestResumeResetsRotateCooldown(t *testing.T) {
	e, _, _ := startedEngine(t)
	e.current = pieceAt(KindT, 3, 5)

	step(e, frame, core.ActionRotate)
	require.Equal(t, 1, e.current.Rotation)

	step(e, frame, core.ActionPauseToggle)
	step(e, frame)
	step(e, frame, core.ActionPauseToggle)
	require.Equal(t, StatePlaying, e.State())

	step(e, frame, core.ActionRotate)
	assert.Equal(t, 2, e.current.Rotation, "a cooldown from before the pause does not block rotation")
}

func TestRestartFromPause(t *testing.T) {
	e, _, _ := startedEngine(t)
	e.scoring.RegisterPlacement(2)
	step(e, frame, core.ActionPauseToggle)

	res := step(e, frame, core.ActionRestart)
	assert.Equal(t, StatePlaying, res.State)
	assert.Equal(t, 0, e.Stats().Score)
	assert.Contains(t, res.Events, Event(StateChanged{From: StatePaused, To: StatePlaying}))
}

func TestGravity(t *testing.T) {
	e, _, _ := startedEngine(t)
	e.current = spawnPiece(KindT)
	e.gravity = 0

	step(e, 999*time.Millisecond)
	assert.Equal(t, 0, e.current.Y)

	step(e, time.Millisecond)
	assert.Equal(t, 1, e.current.Y)
	assert.Equal(t, time.Duration(0), e.gravity)
}

func TestGravityLocksAtFloor(t *testing.T) {
	e, _, _ := startedEngine(t)
	e.current = pieceAt(KindO, 3, 18)
	e.gravity = 0

	res := step(e, time.Second)

	assert.Equal(t, 4, e.board.FilledCount())
	assert.NotEmpty(t, eventsOf[PieceLocked](res.Events))
	assert.NotEmpty(t, eventsOf[PieceSpawned](res.Events))
	assert.Equal(t, 0, e.current.Y)
}

func TestSoftDropShortensGravityWait(t *testing.T) {
	e, _, _ := startedEngine(t)
	e.current = spawnPiece(KindT)
	e.gravity = 0

	step(e, 500*time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, e.gravity)

	step(e, frame, core.ActionSoftDrop)
	assert.Equal(t, 1, e.current.Y)
	assert.Equal(t, 300*time.Millisecond+frame, e.gravity)

	// Held soft drop repeats every 50ms and never drives the accumulator negative.
	// 34ms remain on the timer, so the first 50ms tick only runs it down.
	for range 3 {
		step(e, 50*time.Millisecond, core.ActionSoftDrop)
	}
	assert.Equal(t, 3, e.current.Y)
	assert.GreaterOrEqual(t, e.gravity, time.Duration(0))
}

func TestHorizontalAutoRepeat(t *testing.T) {
	e, _, _ := startedEngine(t)
	e.current = spawnPiece(KindO) // occupies columns 4-5

	var xs []int
	for range 8 {
		step(e, 50*time.Millisecond, core.ActionMoveLeft)
		xs = append(xs, e.current.X)
	}
	// Move, 200ms delay, then every 50ms until the wall stops it at x=-1.
	assert.Equal(t, []int{2, 2, 2, 2, 1, 0, -1, -1}, xs)

	step(e, 50*time.Millisecond)
	step(e, 50*time.Millisecond, core.ActionMoveRight)
	assert.Equal(t, 0, e.current.X, "release resets the timer so the next press moves at once")
}

func TestRotateInPlace(t *testing.T) {
	e, _, _ := startedEngine(t)
	e.current = pieceAt(KindT, 3, 5)

	step(e, frame, core.ActionRotate)
	assert.Equal(t, 1, e.current.Rotation)
	assert.Equal(t, 3, e.current.X)

	// Cooldown: still held 16ms later, no second turn.
	step(e, frame, core.ActionRotate)
	assert.Equal(t, 1, e.current.Rotation)
}

func TestRotateWallKickRight(t *testing.T) {
	e, _, _ := startedEngine(t)
	// T turned once fills local columns 2-3; at x=-2 it is flush against the left wall.
	p := pieceAt(KindT, -2, 5)
	p.RotateClockwise()
	e.current = p
	require.True(t, e.board.IsValidPosition(e.current, 0, 0))

	step(e, frame, core.ActionRotate)

	// The next turn spans local columns 1-3; x-1 is worse, x+1 fits.
	assert.Equal(t, 2, e.current.Rotation)
	assert.Equal(t, -1, e.current.X)
	assert.Equal(t, 5, e.current.Y)
}

func TestRotateWallKickLeft(t *testing.T) {
	e, _, _ := startedEngine(t)
	e.current = pieceAt(KindT, 7, 5) // columns 7-9

	step(e, frame, core.ActionRotate)

	assert.Equal(t, 1, e.current.Rotation)
	assert.Equal(t, 6, e.current.X)
}

func TestRotateRevertsWhenAllKicksFail(t *testing.T) {
	e, _, _ := startedEngine(t)
	e.current = pieceAt(KindT, 7, 5)
	e.board.cells[7][8] = Cell{Filled: true, Color: core.ColorRed} // blocks the left kick
	before := e.current

	step(e, frame, core.ActionRotate)

	assert.Equal(t, before.cells, e.current.cells)
	assert.Equal(t, 0, e.current.Rotation)
	assert.Equal(t, 7, e.current.X)
}

func TestHardDropAwardsBonusAndLocks(t *testing.T) {
	e, _, _ := startedEngine(t)
	e.current = pieceAt(KindO, 3, 0)

	res := step(e, frame, core.ActionHardDrop)

	bonus := eventsOf[HardDropBonus](res.Events)
	require.Len(t, bonus, 1)
	assert.Equal(t, HardDropBonus{Points: 36, Rows: 18}, bonus[0])
	assert.Equal(t, 36, e.Stats().Score)
	assert.True(t, e.board.At(4, 19).Filled)
	assert.True(t, e.board.At(5, 18).Filled)

	// Holding the key does not drop the next piece too.
	filled := e.board.FilledCount()
	step(e, frame, core.ActionHardDrop)
	assert.Equal(t, filled, e.board.FilledCount())
}

func TestLineClearEndToEnd(t *testing.T) {
	e, _, _ := startedEngine(t)

	fill(e.board, 19, core.ColorRed, 2, 3)
	e.board.cells[10][0] = Cell{Filled: true, Color: core.ColorBlue}
	e.current = pieceAt(KindO, 1, 0) // occupies columns 2-3

	res := step(e, frame, core.ActionHardDrop)

	assert.Equal(t, []int{19}, e.board.FilledRows())
	assert.Equal(t, []int{19}, e.PendingRows())
	assert.Equal(t, []LinesCleared{{Rows: []int{19}, IsTetris: false}}, eventsOf[LinesCleared](res.Events))
	assert.Equal(t, []ScoreGained{{Points: 40, Combo: 1, ComboMultiplier: 1}}, eventsOf[ScoreGained](res.Events))
	assert.Empty(t, eventsOf[PieceSpawned](res.Events), "spawn waits for the acknowledgment")

	// Without acknowledgment nothing moves, not even by gravity.
	frozen := e.Snapshot()
	for range 5 {
		step(e, time.Second, core.ActionMoveLeft, core.ActionSoftDrop)
	}
	now := e.Snapshot()
	assert.Equal(t, frozen.X, now.X)
	assert.Equal(t, frozen.Y, now.Y)
	assert.Equal(t, frozen.FilledCells, now.FilledCells)
	_, ghost := e.Ghost()
	assert.False(t, ghost)

	res = ack(e)

	assert.Nil(t, e.PendingRows())
	assert.Empty(t, e.board.FilledRows())
	assert.Len(t, eventsOf[PieceSpawned](res.Events), 1)
	// The O's top half moved from row 18 to row 19, the marker from row 10 to 11.
	assert.True(t, e.board.At(2, 19).Filled)
	assert.True(t, e.board.At(3, 19).Filled)
	assert.False(t, e.board.At(0, 19).Filled)
	assert.True(t, e.board.At(0, 11).Filled)
	assert.False(t, e.board.At(0, 10).Filled)
	assert.Equal(t, 3, e.board.FilledCount())
	assert.Equal(t, 1, e.Stats().Lines)
}

func TestTetrisLevelUpAndCombo(t *testing.T) {
	e, _, _ := startedEngine(t)
	e.scoring.lines = 8

	clearTetris := func() StepResult {
		for y := 16; y < Height; y++ {
			fill(e.board, y, core.ColorRed, 0)
		}
		e.current = pieceAt(KindI, 0, 0)
		e.current.RotateClockwise() // vertical in local column 2
		e.current.X = -2
		return step(e, frame, core.ActionHardDrop)
	}

	res := clearTetris()
	assert.Equal(t, []LinesCleared{{Rows: []int{16, 17, 18, 19}, IsTetris: true}}, eventsOf[LinesCleared](res.Events))
	assert.Equal(t, []LeveledUp{{Level: 2}}, eventsOf[LeveledUp](res.Events))
	assert.Empty(t, eventsOf[ComboAchieved](res.Events))
	ack(e)

	res = clearTetris()
	assert.Equal(t, []ComboAchieved{{Combo: 2}}, eventsOf[ComboAchieved](res.Events))
	gained := eventsOf[ScoreGained](res.Events)
	require.Len(t, gained, 1)
	assert.Equal(t, 3600, gained[0].Points) // 1200 * level 2 * 1.5
}

func TestHoldOncePerSpawn(t *testing.T) {
	e, _, _ := startedEngine(t)
	first := e.current.Kind
	queued := e.next

	res := step(e, frame, core.ActionHold)
	assert.Equal(t, []PieceHeld{{Kind: first}}, eventsOf[PieceHeld](res.Events))
	assert.Equal(t, []PieceSpawned{{Kind: queued}}, eventsOf[PieceSpawned](res.Events))
	held, ok := e.Held()
	assert.True(t, ok)
	assert.Equal(t, first, held)
	assert.Equal(t, queued, e.current.Kind)
	assert.Equal(t, Width/2-2, e.current.X)
	assert.False(t, e.canHold)

	// Second hold before a new spawn is ignored.
	step(e, frame)
	res = step(e, frame, core.ActionHold)
	assert.Empty(t, eventsOf[PieceHeld](res.Events))
	assert.Equal(t, queued, e.current.Kind)

	// Lock, spawn, then hold swaps with the stored kind.
	step(e, frame, core.ActionHardDrop)
	for e.PendingRows() != nil {
		ack(e)
	}
	require.True(t, e.canHold)
	spawned := e.current.Kind

	res = step(e, frame, core.ActionHold)
	assert.Equal(t, []PieceSpawned{{Kind: first}}, eventsOf[PieceSpawned](res.Events), "a swap brings the held kind into play")
	held, _ = e.Held()
	assert.Equal(t, spawned, held)
	assert.Equal(t, first, e.current.Kind)
	assert.Equal(t, 0, e.current.Rotation)
	assert.Equal(t, 0, e.current.Y)
}

func TestHardDropTakesPrecedenceOverHold(t *testing.T) {
	e, _, _ := startedEngine(t)

	res := step(e, frame, core.ActionHardDrop, core.ActionHold)

	assert.NotEmpty(t, eventsOf[PieceLocked](res.Events))
	assert.Empty(t, eventsOf[PieceHeld](res.Events))
}

func TestGameOverOnSpawnFailure(t *testing.T) {
	e, _, scores := startedEngine(t)
	e.runID = "run-1"
	for x := 3; x <= 6; x++ {
		e.board.cells[1][x] = Cell{Filled: true, Color: core.ColorRed}
	}
	e.current = pieceAt(KindI, 3, 10)

	res := step(e, frame, core.ActionHardDrop)

	assert.Equal(t, StateGameOver, res.State)
	over := eventsOf[GameOver](res.Events)
	require.Len(t, over, 1)
	assert.Equal(t, 16, over[0].FinalScore)
	assert.Equal(t, 1, over[0].FinalLevel)
	assert.Contains(t, res.Events, Event(StateChanged{From: StatePlaying, To: StateGameOver}))

	require.Len(t, scores.entries, 1)
	assert.Equal(t, ScoreEntry{GameID: GameID, RunID: "run-1", Score: 16, Level: 1, Lines: 0, At: fixedNow}, scores.entries[0])
	assert.Equal(t, 16, e.Stats().Best)

	// Frozen: input does nothing, then Restart starts over.
	step(e, time.Second, core.ActionMoveLeft)
	assert.Equal(t, StateGameOver, e.State())
	step(e, frame)
	step(e, frame, core.ActionRestart)
	assert.Equal(t, StatePlaying, e.State())
	assert.Equal(t, 0, e.board.FilledCount())
	assert.Equal(t, 16, e.Stats().Best)
}

func TestGameOverOnHoldSwapOverlap(t *testing.T) {
	e, _, scores := startedEngine(t)
	for x := 3; x <= 6; x++ {
		e.board.cells[1][x] = Cell{Filled: true, Color: core.ColorRed}
	}
	e.current = pieceAt(KindI, 3, 10)

	res := step(e, frame, core.ActionHold)

	assert.Equal(t, StateGameOver, res.State)
	assert.Len(t, scores.entries, 1)
}

func TestElapsedSecondsCountsPlayTime(t *testing.T) {
	e, _, _ := startedEngine(t)
	step(e, 2*time.Second, core.ActionPauseToggle) // transition tick, not simulated
	step(e, 5*time.Second)                         // paused
	step(e, frame, core.ActionPauseToggle)
	for x := 3; x <= 6; x++ {
		e.board.cells[1][x] = Cell{Filled: true, Color: core.ColorRed}
	}
	e.current = pieceAt(KindI, 3, 10)
	res := step(e, 500*time.Millisecond, core.ActionHardDrop)

	over := eventsOf[GameOver](res.Events)
	require.Len(t, over, 1)
	// startedEngine's release tick plus this one; transition and paused ticks do not count.
	assert.InDelta(t, (frame + 500*time.Millisecond).Seconds(), over[0].ElapsedSeconds, 1e-9)
}

func TestFailingStoresAreTolerated(t *testing.T) {
	settings := newMemSettings()
	settings.setErr = errStoreDown
	scores := &memScores{err: errStoreDown}
	e := New(config.DefaultTetrixConfig(), settings, scores)

	step(e, frame, core.ActionStart)
	assert.Equal(t, 0, e.Stats().Best)

	e.SetGhost(false)
	assert.False(t, e.GhostEnabled())

	for x := 3; x <= 6; x++ {
		e.board.cells[1][x] = Cell{Filled: true, Color: core.ColorRed}
	}
	e.current = pieceAt(KindI, 3, 10)
	res := step(e, frame, core.ActionHardDrop)
	assert.Equal(t, StateGameOver, res.State)
}

func TestNilStores(t *testing.T) {
	e := New(config.DefaultTetrixConfig(), nil, nil)
	res := step(e, frame, core.ActionStart)
	assert.Equal(t, StatePlaying, res.State)
}

func TestGhostProjection(t *testing.T) {
	e, settings, _ := startedEngine(t)
	e.current = pieceAt(KindO, 3, 0)

	ghost, ok := e.Ghost()
	require.True(t, ok)
	assert.Equal(t, 18, ghost.Y)
	assert.Equal(t, 0, e.current.Y, "projection must not move the piece")

	e.SetGhost(false)
	assert.Equal(t, "off", settings.values[SettingGhost])
	_, ok = e.Ghost()
	assert.False(t, ok)
}

func TestGhostSettingReadAtStart(t *testing.T) {
	e, settings, _ := newTestEngine(t)
	settings.values[SettingGhost] = "off"

	step(e, frame, core.ActionStart)

	assert.False(t, e.GhostEnabled())
}

func TestBestScoreLoadedFromStore(t *testing.T) {
	e, _, scores := newTestEngine(t)
	scores.entries = []ScoreEntry{{GameID: GameID, Score: 900}, {GameID: GameID, Score: 100}}

	step(e, frame, core.ActionStart)

	assert.Equal(t, 900, e.Stats().Best)
}
