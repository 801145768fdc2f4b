package tui

import (
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetrix/internal/config"
	"github.com/vovakirdan/tetrix/internal/core"
	"github.com/vovakirdan/tetrix/internal/games/tetris"
	"github.com/vovakirdan/tetrix/internal/storage"
)

func newTestApp(t *testing.T) (App, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	app := NewApp(Options{
		Config:   config.DefaultTetrixConfig(),
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7},
		Settings: mem,
		Scores:   mem.Scores(tetris.GameID),
	})
	return app, mem
}

func send(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	next, _ := a.Update(msg)
	app, ok := next.(App)
	require.True(t, ok)
	return app
}

var tickAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func tick(t *testing.T, a App) App {
	t.Helper()
	tickAt = tickAt.Add(frame)
	return send(t, a, TickMsg(tickAt))
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppStartsOnMenu(t *testing.T) {
	app, _ := newTestApp(t)
	assert.Equal(t, screenMenu, app.current)
	assert.Equal(t, tetris.StateMenu, app.Engine().State())
	assert.Contains(t, app.View(), "START GAME")

	// Ticks on the menu leave the engine alone.
	app = tick(t, app)
	assert.Equal(t, tetris.StateMenu, app.Engine().State())
}

func TestAppStartGameAndReturnToMenu(t *testing.T) {
	app, _ := newTestApp(t)

	app = send(t, app, keyMsg("enter"))
	assert.Equal(t, screenGame, app.current)
	app = tick(t, app)
	assert.Equal(t, tetris.StatePlaying, app.Engine().State())
	assert.Contains(t, app.View(), "SCORE")

	app = send(t, app, keyMsg("p"))
	app = tick(t, app)
	assert.Equal(t, tetris.StatePaused, app.Engine().State())

	app = send(t, app, keyMsg("esc"))
	app = tick(t, app)
	assert.Equal(t, tetris.StateMenu, app.Engine().State())
	assert.Equal(t, screenMenu, app.current)
}

func TestAppHardDropRecordsProgress(t *testing.T) {
	app, _ := newTestApp(t)
	app = send(t, app, keyMsg("enter"))
	app = tick(t, app)

	app = send(t, app, keyMsg(" "))
	app = tick(t, app)
	assert.Positive(t, app.Engine().Stats().Score)
	assert.Positive(t, app.Engine().Board().FilledCount())
}

func TestAppGhostToggleIsPersisted(t *testing.T) {
	app, mem := newTestApp(t)
	app = send(t, app, keyMsg("enter"))
	app = tick(t, app)
	require.True(t, app.Engine().GhostEnabled())

	app = send(t, app, keyMsg("g"))
	assert.False(t, app.Engine().GhostEnabled())
	v, ok := mem.Get(tetris.SettingGhost)
	assert.True(t, ok)
	assert.Equal(t, "off", v)
}

func TestAppThemePicker(t *testing.T) {
	app, mem := newTestApp(t)
	assert.Equal(t, config.ThemeNeon, app.theme.Name)

	// Menu: START GAME, HIGH SCORES, THEMES.
	app = send(t, app, keyMsg("down"))
	app = send(t, app, keyMsg("down"))
	app = send(t, app, keyMsg("enter"))
	require.Equal(t, screenThemes, app.current)
	assert.Contains(t, app.View(), "PASTEL")

	app = send(t, app, keyMsg("down"))
	app = send(t, app, keyMsg("esc"))
	assert.Equal(t, screenMenu, app.current)
	assert.Equal(t, config.ThemeNeon, app.theme.Name, "esc keeps the old theme")

	app = send(t, app, keyMsg("enter"))
	app = send(t, app, keyMsg("down"))
	app = send(t, app, keyMsg("enter"))
	assert.Equal(t, config.ThemePastel, app.theme.Name)
	v, _ := mem.Get(tetris.SettingTheme)
	assert.Equal(t, config.ThemePastel, v)
}

func TestAppUsesStoredTheme(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(tetris.SettingTheme, "retro"))
	app := NewApp(Options{Config: config.DefaultTetrixConfig(), Settings: mem, Scores: mem.Scores(tetris.GameID)})
	assert.Equal(t, config.ThemeRetro, app.theme.Name)

	require.NoError(t, mem.Set(tetris.SettingTheme, "neon-ish"))
	app = NewApp(Options{Config: config.DefaultTetrixConfig(), Settings: mem})
	assert.Equal(t, config.ThemeNeon, app.theme.Name)
}

func TestAppScoreboard(t *testing.T) {
	app, mem := newTestApp(t)
	_, err := mem.SaveScore(tetris.ScoreEntry{GameID: tetris.GameID, Score: 4321, Level: 3, Lines: 25, At: tickAt})
	require.NoError(t, err)

	app = send(t, app, keyMsg("down"))
	app = send(t, app, keyMsg("enter"))
	require.Equal(t, screenScores, app.current)
	assert.Contains(t, app.View(), "4321")

	app = send(t, app, keyMsg("esc"))
	assert.Equal(t, screenMenu, app.current)
}

func TestAppMenuShowsBest(t *testing.T) {
	mem := storage.NewMemory()
	_, err := mem.SaveScore(tetris.ScoreEntry{GameID: tetris.GameID, Score: 900})
	require.NoError(t, err)
	app := NewApp(Options{Config: config.DefaultTetrixConfig(), Runtime: core.DefaultConfig(), Scores: mem.Scores(tetris.GameID)})
	assert.Contains(t, app.View(), "BEST 900")
}

func TestAppQuit(t *testing.T) {
	app, _ := newTestApp(t)
	next, cmd := app.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())
}

func TestAppScreenshot(t *testing.T) {
	dir := t.TempDir()
	mem := storage.NewMemory()
	app := NewApp(Options{
		Config:        config.DefaultTetrixConfig(),
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Settings:      mem,
		ScreenshotDir: dir,
	})
	app = send(t, app, keyMsg("enter"))
	app = tick(t, app)
	send(t, app, keyMsg("ctrl+s"))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0].Name(), tetris.GameID))
}

func TestThemeByName(t *testing.T) {
	for _, name := range config.Themes {
		th := ThemeByName(strings.ToLower(name))
		assert.Equal(t, name, th.Name)
		for _, c := range core.Colors() {
			assert.NotPanics(t, func() { th.Style(c).Render("x") })
		}
	}
	assert.Equal(t, config.ThemeNeon, ThemeByName("").Name)
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorFlash)
	s.DrawTextColored(0, 1, "cd", core.ColorText)

	out := RenderScreen(s, ThemeByName(config.ThemeNeon), true)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ab")
	assert.Contains(t, lines[1], "cd")

	assert.Contains(t, RenderScreen(s, ThemeByName(config.ThemeNeon), false), "ab")
}

// fillBottom packs the lowest rows of b with O pieces. rows must be even.
func fillBottom(t *testing.T, b *tetris.Board, rows int) {
	t.Helper()
	for top := tetris.Height - rows; top < tetris.Height; top += 2 {
		for x := 0; x < tetris.Width; x += 2 {
			p := tetris.NewPiece(tetris.KindO)
			corner := p.OccupiedCells()[0]
			p.Translate(x-corner.X, top-corner.Y)
			require.True(t, b.Place(p))
		}
	}
}

// playing returns an app with a game in progress.
func playing(t *testing.T) App {
	t.Helper()
	app, _ := newTestApp(t)
	app = send(t, app, keyMsg("enter"))
	app = tick(t, app)
	require.Equal(t, tetris.StatePlaying, app.Engine().State())
	return app
}

func TestAppTetrisShowsPopupsAndFlashesLonger(t *testing.T) {
	app := playing(t)
	fillBottom(t, app.Engine().Board(), 4)

	app = send(t, app, keyMsg(" "))
	app = tick(t, app)
	require.Len(t, app.Engine().PendingRows(), 4)
	assert.Contains(t, app.effects.Active(), "TETRIS!")
	assert.Contains(t, app.effects.Active(), "+1200")
	assert.Contains(t, app.View(), "TETRIS!")

	// 300ms would end a shorter flash. A four-line clear keeps going.
	for range 20 {
		app = tick(t, app)
	}
	assert.NotEmpty(t, app.Engine().PendingRows())

	for range 10 {
		app = tick(t, app)
	}
	assert.Empty(t, app.Engine().PendingRows())
}

func TestAppLevelUpPopup(t *testing.T) {
	app := playing(t)
	fillBottom(t, app.Engine().Board(), 10)

	app = send(t, app, keyMsg(" "))
	app = tick(t, app)
	assert.Equal(t, 2, app.Engine().Stats().Level)
	assert.Contains(t, app.effects.Active(), "LEVEL UP!")
	assert.Contains(t, app.effects.Active(), "Level 2")
	assert.Contains(t, app.View(), "LEVEL UP!")

	app = send(t, app, keyMsg("esc"))
	app = tick(t, app)
	assert.Equal(t, screenMenu, app.current)
	assert.Empty(t, app.effects.Active(), "leaving the game drops the popups")
}

func TestAppPauseFreezesAnimations(t *testing.T) {
	app := playing(t)
	fillBottom(t, app.Engine().Board(), 2)

	app = send(t, app, keyMsg(" "))
	app = tick(t, app)
	require.NotEmpty(t, app.Engine().PendingRows())

	app = send(t, app, keyMsg("p"))
	app = tick(t, app)
	require.Equal(t, tetris.StatePaused, app.Engine().State())
	elapsed := app.gate.elapsed
	popups := slices.Clone(app.effects.popups)

	for range 60 {
		app = tick(t, app)
	}
	assert.Equal(t, elapsed, app.gate.elapsed, "the flash does not run out during a pause")
	assert.Equal(t, popups, app.effects.popups)
	assert.NotContains(t, app.View(), "+", "popups are hidden behind the pause overlay")

	app = send(t, app, keyMsg("p"))
	app = tick(t, app)
	require.Equal(t, tetris.StatePlaying, app.Engine().State())
	app = tick(t, app)
	assert.NotEmpty(t, app.Engine().PendingRows(), "the flash resumes where it stopped")
}
