package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetrix/internal/config"
	"github.com/vovakirdan/tetrix/internal/core"
	"github.com/vovakirdan/tetrix/internal/games/tetris"
)

type screenID int

const (
	screenMenu screenID = iota
	screenGame
	screenScores
	screenThemes
)

// Options configures an App.
type Options struct {
	Config   config.TetrixConfig
	Runtime  core.RuntimeConfig
	Settings tetris.SettingsStore
	Scores   tetris.ScoreStore
	Logger   *log.Logger

	// ScreenshotDir receives ctrl+s text captures. Empty disables screenshots.
	ScreenshotDir string
}

// App is the Bubble Tea model for one player: menu, game, high scores and themes.
type App struct {
	opts   Options
	logger *log.Logger

	engine *tetris.Engine
	screen *core.Screen
	theme  Theme

	current    screenID
	menu       MenuModel
	themes     ThemesModel
	scoreboard ScoreboardModel

	keys    GameKeyMap
	hold    *holdTracker
	gate    *clearGate
	effects *effects
	clock   *frameClock

	width    int
	height   int
	best     int
	quitting bool
}

// NewApp creates the app on the main menu.
func NewApp(opts Options) App {
	if opts.Settings == nil {
		opts.Settings = tetris.NopSettings{}
	}
	if opts.Scores == nil {
		opts.Scores = tetris.NopScores{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}

	engine := tetris.New(opts.Config, opts.Settings, opts.Scores, tetris.WithLogger(opts.Logger))
	engine.Reset(opts.Runtime)

	clock := newFrameClock(opts.Runtime.TickRate)
	a := App{
		opts:   opts,
		logger: opts.Logger,
		engine: engine,
		screen: core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		theme:  ThemeByName(activeTheme(opts.Settings, opts.Config.Display.Theme)),
		menu:   NewMenuModel(),
		keys:   DefaultGameKeyMap(),
		hold:   newHoldTracker(opts.Config.Display.HoldWindow()),
		gate: &clearGate{
			duration:       opts.Config.Display.ClearAnimation(),
			tetrisDuration: opts.Config.Display.TetrisClearAnimation(),
		},
		effects: &effects{},
		clock:   &clock,
		width:   opts.Runtime.ScreenW,
		height:  opts.Runtime.ScreenH,
	}
	a.best = a.loadBest()
	return a
}

// activeTheme prefers the stored theme and falls back to the configured one.
func activeTheme(settings tetris.SettingsStore, fallback string) string {
	if v, ok := settings.Get(tetris.SettingTheme); ok && config.IsTheme(v) {
		return v
	}
	return fallback
}

// Init starts the tick loop.
func (a App) Init() tea.Cmd {
	return tickCmd(a.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleResize(msg)

	case TickMsg:
		dt := a.clock.advance(time.Time(msg))
		if a.current == screenGame {
			a.stepGame(dt)
		}
		return a, tickCmd(a.opts.Runtime.TickRate)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}
	}

	switch a.current {
	case screenGame:
		return a.updateGame(msg)
	case screenScores:
		var cmd tea.Cmd
		a.scoreboard, cmd = a.scoreboard.Update(msg)
		if a.scoreboard.Done() {
			a.current = screenMenu
		}
		return a, cmd
	case screenThemes:
		return a.updateThemes(msg)
	default:
		return a.updateMenu(msg)
	}
}

func (a App) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height
	a.screen.Resize(msg.Width, msg.Height)
	a.engine.Resize(msg.Width, msg.Height)
	if a.current == screenScores {
		var cmd tea.Cmd
		a.scoreboard, cmd = a.scoreboard.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var choice MenuChoice
	a.menu, choice = a.menu.Update(msg)

	switch choice {
	case MenuChoiceStart:
		a.current = screenGame
		a.hold.Reset()
		a.hold.Press(core.ActionStart)
	case MenuChoiceScores:
		a.scoreboard = NewScoreboardModel(a.opts.Scores, a.theme, a.logger, a.width, a.height)
		a.current = screenScores
	case MenuChoiceThemes:
		a.themes = NewThemesModel(a.theme.Name)
		a.current = screenThemes
	case MenuChoiceExit:
		a.quitting = true
		return a, tea.Quit
	}
	return a, nil
}

func (a App) updateThemes(msg tea.Msg) (tea.Model, tea.Cmd) {
	var confirmed, done bool
	a.themes, confirmed, done = a.themes.Update(msg)
	if confirmed {
		a.theme = a.themes.Selected()
		if err := a.opts.Settings.Set(tetris.SettingTheme, a.theme.Name); err != nil {
			a.logger.Warn("cannot save setting", "key", tetris.SettingTheme, "err", err)
		}
	}
	if done {
		a.current = screenMenu
	}
	return a, nil
}

func (a App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch {
	case key.Matches(km, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit
	case key.Matches(km, a.keys.Screenshot):
		a.saveScreenshot()
	case key.Matches(km, a.keys.Ghost):
		a.engine.SetGhost(!a.engine.GhostEnabled())
	default:
		a.hold.Press(a.keys.Action(km))
	}
	return a, nil
}

// stepGame advances the engine by one frame and reacts to its events.
// Animations stand still while the game is paused.
func (a *App) stepGame(dt time.Duration) {
	var ack bool
	if a.engine.State() != tetris.StatePaused {
		ack = a.gate.Advance(dt, len(a.engine.PendingRows()) > 0)
		a.effects.Advance(dt)
	}
	res := a.engine.Step(tetris.Tick{
		Elapsed:  dt,
		Input:    a.hold.Frame(dt),
		ClearAck: ack,
	})

	for _, ev := range res.Events {
		a.effects.Observe(ev)
		switch ev := ev.(type) {
		case tetris.LinesCleared:
			a.gate.Start(ev.IsTetris)
		case tetris.GameOver:
			a.logger.Info("game over", "score", ev.FinalScore, "level", ev.FinalLevel, "seconds", ev.ElapsedSeconds)
			a.best = max(a.best, ev.FinalScore)
		case tetris.StateChanged:
			switch ev.To {
			case tetris.StateMenu:
				a.current = screenMenu
				a.hold.Reset()
				a.effects.Reset()
				a.best = a.loadBest()
			case tetris.StateGameOver:
				a.effects.Reset()
			}
		}
	}
}

func (a *App) loadBest() int {
	top, err := a.opts.Scores.Top(1)
	if err != nil {
		a.logger.Warn("cannot load high score", "err", err)
		return 0
	}
	if len(top) == 0 {
		return 0
	}
	return top[0].Score
}

// saveScreenshot writes the current screen as plain text.
func (a *App) saveScreenshot() {
	if a.opts.ScreenshotDir == "" {
		return
	}
	a.engine.Render(a.screen)

	if err := os.MkdirAll(a.opts.ScreenshotDir, 0o755); err != nil {
		a.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", tetris.GameID, time.Now().Format("20060102_150405"))
	path := filepath.Join(a.opts.ScreenshotDir, name)
	if err := os.WriteFile(path, []byte(a.screen.String()), 0o600); err != nil {
		a.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	a.logger.Debug("screenshot saved", "path", path)
}

// View renders the current screen.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	switch a.current {
	case screenGame:
		a.engine.Render(a.screen)
		if a.engine.State() == tetris.StatePlaying {
			a.effects.Draw(a.screen)
		}
		return RenderScreen(a.screen, a.theme, a.gate.FlashOn())
	case screenScores:
		return a.scoreboard.View()
	case screenThemes:
		return a.themes.View(a.width, a.height)
	default:
		return a.menu.View(a.theme, a.best, a.width, a.height)
	}
}

// Engine exposes the running engine, mainly for tests.
func (a App) Engine() *tetris.Engine {
	return a.engine
}

// Run starts the Bubble Tea program on the local terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
