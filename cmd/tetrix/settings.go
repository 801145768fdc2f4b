package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetrix/internal/config"
	"github.com/vovakirdan/tetrix/internal/games/tetris"
	"github.com/vovakirdan/tetrix/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect or change stored settings",
	Long: `Read and write the key-value settings used by the game.

Known keys:
  theme  - NEON, PASTEL or RETRO
  ghost  - on or off

Other keys are stored as given.

Examples:
  tetrix settings list
  tetrix settings get theme
  tetrix settings set ghost off
  tetrix settings unset theme`,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			all, err := store.AllSettings()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No settings stored; defaults apply.")
				return nil
			}
			for _, s := range all {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", s.Key, s.Value)
			}
			return nil
		})
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting, or its default for known keys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			value, ok, err := store.Setting(args[0])
			if err != nil {
				return err
			}
			if !ok {
				value, ok = defaultSetting(args[0])
			}
			if !ok {
				return fmt.Errorf("setting %q is not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := normalizeSetting(args[0], args[1])
		if err != nil {
			return err
		}
		return withStore(func(store *storage.Store) error {
			if err := store.Set(args[0], value); err != nil {
				return err
			}
			logger.Debug("setting stored", "key", args[0], "value", value)
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", args[0], value)
			return nil
		})
	},
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			return store.DeleteSetting(args[0])
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsListCmd, settingsGetCmd, settingsSetCmd, settingsUnsetCmd)
}

func withStore(fn func(*storage.Store) error) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// normalizeSetting validates known keys and returns the value to store.
func normalizeSetting(key, value string) (string, error) {
	switch key {
	case tetris.SettingTheme:
		if !config.IsTheme(value) {
			return "", fmt.Errorf("theme %q is not one of %v", value, config.Themes)
		}
		return strings.ToUpper(value), nil
	case tetris.SettingGhost:
		v := strings.ToLower(value)
		if v != "on" && v != "off" {
			return "", fmt.Errorf("ghost must be on or off, got %q", value)
		}
		return v, nil
	}
	return value, nil
}

// defaultSetting reports the value a known key has when nothing is stored.
func defaultSetting(key string) (string, bool) {
	switch key {
	case tetris.SettingTheme:
		return gameConfig.Display.Theme, true
	case tetris.SettingGhost:
		if gameConfig.Display.Ghost {
			return "on", true
		}
		return "off", true
	}
	return "", false
}
