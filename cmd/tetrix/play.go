package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tetrix/internal/core"
	"github.com/vovakirdan/tetrix/internal/games/tetris"
	"github.com/vovakirdan/tetrix/internal/platform/tui"
	"github.com/vovakirdan/tetrix/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game menu in this terminal.

Controls:
  Left/Right - Move
  Up         - Rotate
  Down       - Soft drop
  Space      - Hard drop
  C          - Hold
  G          - Toggle ghost piece
  P          - Pause
  R          - Restart (paused or game over)
  Esc        - Back to menu
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Examples:
  tetrix play
  tetrix play --seed 42
  tetrix play --config ./my-tetrix.yaml --log-file tetrix.log --debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	backend := storage.OpenOrMemory(flagDBPath, logger)
	defer backend.Close()

	return tui.Run(tui.Options{
		Config: gameConfig,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Settings:      backend,
		Scores:        backend.Scores(tetris.GameID),
		Logger:        logger,
		ScreenshotDir: screenshotDir(),
	})
}

func screenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetrix", "screenshots")
}
