package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/games/pinball"
	"github.com/vovakirdan/tui-pinball/internal/games/pinball/sim"
)

var flagCount int

var holesCmd = &cobra.Command{
	Use:   "holes",
	Short: "Print the hole layout for seeds",
	Long: `Generate tables for consecutive seeds and print where each hole lands.
Useful for checking a custom config before playing it.

Examples:
  pinball holes --seed 7
  pinball holes --seed 1 --count 5 --config ./my-table.yaml`,
	Args: cobra.NoArgs,
	RunE: runHoles,
}

func init() {
	holesCmd.Flags().IntVar(&flagCount, "count", 1, "Number of consecutive seeds")
}

func runHoles(cmd *cobra.Command, _ []string) error {
	cfg, err := loadTableConfig()
	if err != nil {
		return err
	}
	params, err := pinball.ParamsFromConfig(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i := range max(flagCount, 1) {
		seed := flagSeed + int64(i)
		world, err := sim.NewWorld(params, seed)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Seed %d\n", seed)
		for _, h := range world.Holes() {
			note := ""
			if h.Fallback {
				note = "  (fallback)"
			}
			fmt.Fprintf(out, "  %-6s  r=%-4.0f  %+4d  at (%4.0f, %4.0f)%s\n",
				h.Type, h.Radius, h.Amount, h.Pos.X, h.Pos.Y, note)
		}
		fmt.Fprintln(out)
	}
	return nil
}
