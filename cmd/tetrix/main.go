// tetrix is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetrix play                  - Play in this terminal
//	tetrix scores                - Show the high-score list
//	tetrix settings list|get|set - Inspect or change stored settings
//	tetrix serve                 - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>   - Game config YAML (default: search ~/.tetrix/configs, ./configs)
//	--db <path>       - Database path (default: ~/.tetrix/tetrix.db)
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--debug           - Verbose logging
//	--log-file <path> - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetrix/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagFPS     int
	flagSeed    int64
	flagDebug   bool
	flagLogFile string
)

var (
	gameConfig config.TetrixConfig
	logFile    *os.File
)

var logger = log.New(io.Discard)

func main() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetrix",
	Short: "Tetrix - falling blocks in your terminal",
	Long: `Tetrix is a terminal falling-block puzzle game with ghost pieces,
hold, combos and a persistent high-score list.

Available commands:
  play      - Play in this terminal
  scores    - View or clear the high-score list
  settings  - Inspect or change stored settings
  serve     - Start SSH server for remote play

Examples:
  tetrix play
  tetrix play --seed 42 --config ./tetrix.yaml
  tetrix scores --stats
  tetrix settings set theme RETRO
  tetrix serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetrix/tetrix.db", "Path to scores and settings database")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup builds the logger and loads the game config before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	out := io.Writer(os.Stderr)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		closeLog()
		logFile = f
		out = f
	case cmd == playCmd:
		// The TUI owns the terminal; stray log lines would corrupt the screen.
		out = io.Discard
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "tetrix",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	gameConfig = cfg
	logger.Debug("config loaded", "path", flagConfig, "theme", cfg.Display.Theme)
	return nil
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
