package tetris

import (
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tetrix/internal/config"
	"github.com/vovakirdan/tetrix/internal/core"
)

// Tick is the input for one simulation step.
type Tick struct {
	Elapsed  time.Duration
	Input    core.InputFrame // actions currently active
	ClearAck bool            // the clear animation for PendingRows has finished
}

// StepResult is the outcome of one simulation step.
type StepResult struct {
	State  GameState
	Events []Event
}

// Stats is the HUD view of the running game.
type Stats struct {
	Score int
	Level int
	Lines int
	Combo int
	Best  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for state transitions and persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the wall clock used to timestamp score entries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine runs one player's game. It is not safe for concurrent use.
type Engine struct {
	cfg      config.TetrixConfig
	settings SettingsStore
	scores   ScoreStore
	logger   *log.Logger
	now      func() time.Time

	rng     *rand.Rand
	tick    uint64
	state   GameState
	screenW int
	screenH int

	board   *Board
	scoring *Scoring
	current Piece
	next    Kind
	held    Kind
	hasHeld bool
	canHold bool
	pending []int // rows awaiting ClearAck; nil when no clear is in flight

	gravity   time.Duration // time accumulated toward the next automatic drop
	moveLeft  keyRepeat
	moveRight keyRepeat
	softDrop  keyRepeat
	rotate    keyRepeat
	prev      core.InputFrame

	runID   string
	played  time.Duration
	best    int
	ghostOn bool

	events []Event
}

// New creates an engine in the Menu state. Nil stores are replaced by no-op ones.
func New(cfg config.TetrixConfig, settings SettingsStore, scores ScoreStore, opts ...Option) *Engine {
	if settings == nil {
		settings = NopSettings{}
	}
	if scores == nil {
		scores = NopScores{}
	}
	e := &Engine{
		cfg:      cfg,
		settings: settings,
		scores:   scores,
		logger:   log.New(io.Discard),
		now:      time.Now,
		board:    NewBoard(),
		scoring:  NewScoring(cfg.Scoring, cfg.Gravity),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset(core.DefaultConfig())
	return e
}

// Reset seeds the RNG, records the screen size and returns to the Menu.
func (e *Engine) Reset(rc core.RuntimeConfig) {
	e.rng = rand.New(rand.NewSource(rc.Seed))
	e.tick = 0
	e.screenW = rc.ScreenW
	e.screenH = rc.ScreenH
	e.state = StateMenu
	e.clearGame()
	e.best = e.loadBest()
	e.ghostOn = e.loadGhost()
	e.events = nil
}

// Resize updates the screen size used by Render.
func (e *Engine) Resize(w, h int) {
	e.screenW = w
	e.screenH = h
}

// Step advances the game by one tick.
// Edge-triggered actions fire only when absent from the previous tick's input.
// A tick that changes state through an intent does not also simulate.
func (e *Engine) Step(t Tick) StepResult {
	e.tick++
	e.events = nil

	pressed := func(a core.Action) bool {
		return t.Input.Has(a) && !e.prev.Has(a)
	}

	if !e.handleIntents(pressed) {
		switch e.state {
		case StatePlaying:
			e.simulate(t, pressed)
		case StateGameOver:
			if e.pending != nil && t.ClearAck {
				e.board.ClearRows(e.pending)
				e.pending = nil
			}
		}
	}

	e.prev = t.Input.Clone()
	return StepResult{State: e.state, Events: e.events}
}

// handleIntents applies state machine transitions and reports whether one happened.
func (e *Engine) handleIntents(pressed func(core.Action) bool) bool {
	switch e.state {
	case StateMenu:
		if pressed(core.ActionStart) {
			e.startGame()
			return true
		}
	case StatePlaying:
		if pressed(core.ActionToMenu) {
			e.logger.Debug("game abandoned", "run", e.runID, "score", e.scoring.Score())
			e.setState(StateMenu)
			return true
		}
		if pressed(core.ActionPauseToggle) {
			e.setState(StatePaused)
			return true
		}
	case StatePaused:
		switch {
		case pressed(core.ActionToMenu):
			e.logger.Debug("game abandoned", "run", e.runID, "score", e.scoring.Score())
			e.setState(StateMenu)
			return true
		case pressed(core.ActionRestart):
			e.startGame()
			return true
		case pressed(core.ActionPauseToggle):
			e.resetRepeats()
			e.setState(StatePlaying)
			return true
		}
	case StateGameOver:
		switch {
		case pressed(core.ActionToMenu):
			e.setState(StateMenu)
			return true
		case pressed(core.ActionRestart), pressed(core.ActionStart):
			e.startGame()
			return true
		}
	}
	return false
}

// simulate runs the fixed per-tick order for the Playing state.
func (e *Engine) simulate(t Tick, pressed func(core.Action) bool) {
	dt := t.Elapsed
	e.played += dt

	// Pending clear gate.
	if e.pending != nil {
		if !t.ClearAck {
			return
		}
		e.board.ClearRows(e.pending)
		e.pending = nil
		e.spawn()
		if e.state != StatePlaying {
			return
		}
	}

	in := t.Input

	if e.moveLeft.advance(in.Has(core.ActionMoveLeft), dt) {
		e.tryMove(-1, 0)
	}
	if e.moveRight.advance(in.Has(core.ActionMoveRight), dt) {
		e.tryMove(1, 0)
	}

	if e.softDrop.advance(in.Has(core.ActionSoftDrop), dt) && e.tryMove(0, 1) {
		e.gravity = max(e.gravity-e.cfg.Timing.SoftDropBonus(), 0)
	}

	if e.rotate.advance(in.Has(core.ActionRotate), dt) {
		e.rotateWithKicks()
	}

	switch {
	case pressed(core.ActionHardDrop):
		e.hardDrop()
		return
	case pressed(core.ActionHold):
		e.hold()
		if e.state != StatePlaying {
			return
		}
	}

	e.gravity += dt
	if e.gravity >= e.scoring.DropInterval() {
		e.gravity = 0
		if !e.tryMove(0, 1) {
			e.lock()
		}
	}
}

func (e *Engine) tryMove(dx, dy int) bool {
	if !e.board.IsValidPosition(e.current, dx, dy) {
		return false
	}
	e.current.Translate(dx, dy)
	return true
}

// rotateWithKicks rotates clockwise, then tries x-1 and x+1 before giving up.
func (e *Engine) rotateWithKicks() {
	saved := e.current
	e.current.RotateClockwise()
	for _, dx := range []int{0, -1, 2} {
		e.current.Translate(dx, 0)
		if e.board.IsValidPosition(e.current, 0, 0) {
			return
		}
	}
	e.current = saved
}

func (e *Engine) hardDrop() {
	rows := 0
	for e.tryMove(0, 1) {
		rows++
	}
	if rows > 0 {
		points := e.scoring.RegisterHardDropBonus(rows)
		e.emit(HardDropBonus{Points: points, Rows: rows})
	}
	e.lock()
}

// hold stashes the current kind. The first hold pulls the next piece into play;
// later holds swap with the stored kind. Allowed once per spawn.
func (e *Engine) hold() {
	if !e.canHold {
		return
	}
	k := e.current.Kind
	if e.hasHeld {
		e.current = spawnPiece(e.held)
	} else {
		e.current = spawnPiece(e.next)
		e.next = e.randomKind()
		e.hasHeld = true
	}
	e.held = k
	e.canHold = false
	e.emit(PieceHeld{Kind: k})
	e.emit(PieceSpawned{Kind: e.current.Kind})

	if !e.board.IsValidPosition(e.current, 0, 0) {
		e.endGame()
	}
}

// lock commits the current piece and either opens a pending clear or spawns.
func (e *Engine) lock() {
	if !e.board.Place(e.current) {
		e.logger.Warn("lock rejected for invalid piece", "kind", e.current.Kind, "x", e.current.X, "y", e.current.Y)
		e.endGame()
		return
	}
	e.emit(PieceLocked{Kind: e.current.Kind})

	rows := e.board.FilledRows()
	p := e.scoring.RegisterPlacement(len(rows))
	if len(rows) == 0 {
		e.spawn()
		return
	}

	e.pending = rows
	e.emit(LinesCleared{Rows: slices.Clone(rows), IsTetris: p.IsTetris})
	e.emit(ScoreGained{Points: p.Points, Combo: p.Combo, ComboMultiplier: p.ComboMultiplier})
	if p.Combo > 1 {
		e.emit(ComboAchieved{Combo: p.Combo})
	}
	if p.LeveledUp {
		e.logger.Debug("level up", "run", e.runID, "level", p.Level)
		e.emit(LeveledUp{Level: p.Level})
	}
}

// spawn promotes next to current at the top center and draws a new next.
func (e *Engine) spawn() {
	e.current = spawnPiece(e.next)
	e.next = e.randomKind()
	e.canHold = true
	e.emit(PieceSpawned{Kind: e.current.Kind})

	if !e.board.IsValidPosition(e.current, 0, 0) {
		e.endGame()
	}
}

func spawnPiece(k Kind) Piece {
	p := NewPiece(k)
	p.X = Width/2 - 2
	p.Y = 0
	return p
}

func (e *Engine) randomKind() Kind {
	return Kind(e.rng.Intn(kindCount))
}

func (e *Engine) startGame() {
	e.clearGame()
	e.runID = uuid.NewString()
	e.best = e.loadBest()
	e.ghostOn = e.loadGhost()
	e.next = e.randomKind()

	e.logger.Debug("game started", "run", e.runID, "best", e.best)
	e.setState(StatePlaying)
	e.spawn()
}

func (e *Engine) clearGame() {
	e.board.Reset()
	e.scoring.Reset()
	e.hasHeld = false
	e.canHold = false
	e.pending = nil
	e.gravity = 0
	e.played = 0
	e.moveLeft = newKeyRepeat(e.cfg.Timing.MoveDelay(), e.cfg.Timing.MoveRepeat())
	e.moveRight = newKeyRepeat(e.cfg.Timing.MoveDelay(), e.cfg.Timing.MoveRepeat())
	e.softDrop = newKeyRepeat(e.cfg.Timing.SoftDropRepeat(), e.cfg.Timing.SoftDropRepeat())
	e.rotate = newCooldown(e.cfg.Timing.RotateDelay())
}

// resetRepeats drops repeat and cooldown timers left over from before a pause.
func (e *Engine) resetRepeats() {
	e.moveLeft.reset()
	e.moveRight.reset()
	e.softDrop.reset()
	e.rotate.reset()
}

// endGame records the score and enters GameOver.
// A failing score store is logged and otherwise ignored.
func (e *Engine) endGame() {
	score := e.scoring.Score()
	entry := ScoreEntry{
		GameID: GameID,
		RunID:  e.runID,
		Score:  score,
		Level:  e.scoring.Level(),
		Lines:  e.scoring.Lines(),
		At:     e.now(),
	}
	if err := e.scores.Record(entry); err != nil {
		e.logger.Warn("cannot record score", "run", e.runID, "err", err)
	}
	if score > e.best {
		e.best = score
	}

	e.logger.Info("game over", "run", e.runID, "score", score, "level", entry.Level, "lines", entry.Lines)
	e.emit(GameOver{
		FinalScore:     score,
		FinalLevel:     entry.Level,
		ElapsedSeconds: e.played.Seconds(),
	})
	e.setState(StateGameOver)
}

func (e *Engine) setState(s GameState) {
	if s == e.state {
		return
	}
	from := e.state
	e.state = s
	e.logger.Debug("state changed", "from", from, "to", s)
	e.emit(StateChanged{From: from, To: s})
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

func (e *Engine) loadBest() int {
	top, err := e.scores.Top(1)
	if err != nil {
		e.logger.Warn("cannot load best score", "err", err)
		return 0
	}
	if len(top) == 0 {
		return 0
	}
	return top[0].Score
}

func (e *Engine) loadGhost() bool {
	v, ok := e.settings.Get(SettingGhost)
	if !ok {
		return e.cfg.Display.Ghost
	}
	return v != "off"
}

// SetGhost turns the ghost piece on or off and persists the choice.
func (e *Engine) SetGhost(on bool) {
	e.ghostOn = on
	value := "off"
	if on {
		value = "on"
	}
	if err := e.settings.Set(SettingGhost, value); err != nil {
		e.logger.Warn("cannot save setting", "key", SettingGhost, "err", err)
	}
}

// GhostEnabled reports whether the ghost piece is shown.
func (e *Engine) GhostEnabled() bool {
	return e.ghostOn
}

// State returns the current state machine position.
func (e *Engine) State() GameState {
	return e.state
}

// Stats returns the HUD values.
func (e *Engine) Stats() Stats {
	return Stats{
		Score: e.scoring.Score(),
		Level: e.scoring.Level(),
		Lines: e.scoring.Lines(),
		Combo: e.scoring.Combo(),
		Best:  max(e.best, e.scoring.Score()),
	}
}

// Current returns the falling piece. It is meaningless in the Menu state.
func (e *Engine) Current() Piece {
	return e.current
}

// Next returns the queued kind.
func (e *Engine) Next() Kind {
	return e.next
}

// Held returns the held kind, if any.
func (e *Engine) Held() (Kind, bool) {
	return e.held, e.hasHeld
}

// Board returns the board for read-only inspection.
func (e *Engine) Board() *Board {
	return e.board
}

// PendingRows returns the rows waiting for a clear acknowledgment.
func (e *Engine) PendingRows() []int {
	return slices.Clone(e.pending)
}

// Ghost projects the current piece straight down to where it would land.
// It reports false when there is nothing to project or the ghost is disabled.
func (e *Engine) Ghost() (Piece, bool) {
	if !e.ghostOn || e.pending != nil {
		return Piece{}, false
	}
	if e.state != StatePlaying && e.state != StatePaused {
		return Piece{}, false
	}
	ghost := e.current.Clone()
	for e.board.IsValidPosition(ghost, 0, 1) {
		ghost.Translate(0, 1)
	}
	return ghost, true
}
