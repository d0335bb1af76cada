// pinball is a terminal pinball table: launch balls for money, hit
// bumpers and holes, and reach the goal before the money or the clock
// runs out.
//
// Usage:
//
//	pinball play             - Play the table
//	pinball menu             - Start menu with difficulty and scoreboard
//	pinball scores           - Show best or recent runs
//	pinball holes            - Print the hole layout for seeds
//	pinball config           - Print the effective table config
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible layouts
//	--db <path>          - Set database path (default: ~/.arcade/pinball.db)
//	--log <path>         - Write logs to a file
//	--log-level <level>  - debug, info, warn or error
//
// Flags not given on the command line fall back to PINBALL_DB,
// PINBALL_LOG, PINBALL_LOG_LEVEL and PINBALL_CONFIG, read from the
// environment or a .env file.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/games/pinball"
	"github.com/vovakirdan/tui-pinball/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string

	logger   *log.Logger
	closeLog = func() error { return nil }
)

// envFlags maps persistent flags to their environment fallbacks.
var envFlags = map[string]string{
	"db":        "PINBALL_DB",
	"log":       "PINBALL_LOG",
	"log-level": "PINBALL_LOG_LEVEL",
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pinball",
	Short: "Terminal pinball - reach the goal before you go broke",
	Long: `Terminal pinball on a seeded table.

Every launch costs money. Bumpers and holes pay or charge, one hole ends
the run, and the clock keeps ticking. Reach the goal to clear the table.

Available commands:
  play     - Play the table directly
  menu     - Interactive start menu
  scores   - View best and recent runs
  holes    - Print hole layouts for seeds
  config   - Print the effective table config

Examples:
  pinball play
  pinball play --difficulty hard --seed 42
  pinball menu
  pinball scores --recent
  pinball holes --seed 7 --count 3`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/pinball.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Path to log file (default: no logging)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(holesCmd)
	rootCmd.AddCommand(configCmd)
}

// setup applies environment fallbacks and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	for name, env := range envFlags {
		if flags.Changed(name) {
			continue
		}
		if v, ok := os.LookupEnv(env); ok && v != "" {
			if err := flags.Set(name, v); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}
	}

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	l, closeFn, err := logging.New(flagLogPath, flagLogLevel)
	if err != nil {
		return err
	}
	logger, closeLog = l, closeFn
	pinball.SetLogger(logger)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	return closeLog()
}
