package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/games/pinball"
	"github.com/vovakirdan/tui-pinball/internal/platform/tui"
	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the table",
	Long: `Start a run on a freshly generated table.

Controls:
  A/Left     - Left flipper (hold)
  D/Right    - Right flipper (hold)
  Space      - Launch a ball (costs money)
  P/Esc      - Pause
  R          - Restart with a new layout
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - More starting money and time
  normal - Config values as written
  hard   - Less money and time, higher goal
  fixed  - Config values as written, ignoring presets

Examples:
  pinball play
  pinball play --difficulty hard
  pinball play --seed 42
  pinball play --config ./my-table.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd, holesCmd, configCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom table config (YAML or TOML)")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

// loadTableConfig resolves the config path and preset, applies them to
// the game and returns the config the table will be built from.
func loadTableConfig() (config.PinballConfig, error) {
	if flagConfig == "" {
		flagConfig = os.Getenv("PINBALL_CONFIG")
	}
	if flagDifficulty != "" && config.ParseDifficultyPreset(flagDifficulty) == "" {
		return config.PinballConfig{}, fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}

	cfg, err := config.LoadPinball(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset := config.ParseDifficultyPreset(flagDifficulty)
	if preset != "" {
		config.ApplyPinballPreset(&cfg, preset)
	}

	pinball.SetConfigPath(flagConfig)
	pinball.SetDifficultyPreset(flagDifficulty)
	return cfg, nil
}

// runtimeConfig sizes the run to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the runs database. Playing without it is allowed.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("runs database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, _ []string) error {
	// Reject a broken config before taking over the terminal
	if _, err := loadTableConfig(); err != nil {
		return err
	}

	game, err := registry.Create(pinball.ID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, store, logger, runtimeConfig())
}
