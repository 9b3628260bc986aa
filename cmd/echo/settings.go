package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echo-arcade/internal/core"
	"github.com/vovakirdan/echo-arcade/internal/storage"
)

// Player settings stored in the settings table.
const (
	settingSFX       = "audio.sfx"
	settingMusic     = "audio.music"
	settingMono      = "display.mono"
	settingThemeFull = "theme.full"
	settingThemeQuad = "theme.quad"
	settingThemeCore = "theme.core"
)

// settingKind tells how a setting value is validated.
type settingKind int

const (
	settingBool settingKind = iota
	settingColor
)

var knownSettings = map[string]settingKind{
	settingSFX:       settingBool,
	settingMusic:     settingBool,
	settingMono:      settingBool,
	settingThemeFull: settingColor,
	settingThemeQuad: settingColor,
	settingThemeCore: settingColor,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show player settings",
	Long: `Show the stored player settings.

Keys:
  audio.sfx     - Sound effects on/off (true/false)
  audio.music   - Background music on/off (true/false)
  display.mono  - Render without colors (true/false)
  theme.full    - Color of full waves
  theme.quad    - Color of quadrant waves
  theme.core    - Color of the core

Examples:
  echo settings
  echo settings set audio.music false
  echo settings set theme.full magenta`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a player setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettings(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	values, err := store.Settings()
	if err != nil {
		return err
	}
	printSettings(cmd.OutOrStdout(), values)
	return nil
}

// printSettings lists every known key, marking unset ones as defaults.
func printSettings(out io.Writer, values map[string]string) {
	keys := make([]string, 0, len(knownSettings))
	for k := range knownSettings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v, ok := values[k]
		if !ok {
			v = "(default)"
		}
		fmt.Fprintf(out, "  %-14s %s\n", k, v)
	}
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value, err := normalizeSetting(args[0], args[1])
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if err := store.SetSetting(key, value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}

// normalizeSetting validates a setting and returns its canonical value.
func normalizeSetting(key, value string) (string, string, error) {
	kind, ok := knownSettings[key]
	if !ok {
		return "", "", fmt.Errorf("unknown setting %q", key)
	}

	switch kind {
	case settingBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", "", fmt.Errorf("setting %s wants true or false, got %q", key, value)
		}
		return key, strconv.FormatBool(b), nil
	default:
		c, ok := core.ParseColor(value)
		if !ok {
			return "", "", fmt.Errorf("setting %s: unknown color %q (want one of %v)", key, value, core.ColorNames())
		}
		return key, c.String(), nil
	}
}
