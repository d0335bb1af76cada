package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective table config",
	Long: `Print the config the table would be built from, after the search
path, --config and --difficulty are applied. The output is a valid
config file and can be edited and passed back with --config.

Examples:
  pinball config > ~/.arcade/configs/pinball.yaml
  pinball config --difficulty hard --format toml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or toml")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadTableConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch flagFormat {
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(out).Encode(cfg)
	default:
		return fmt.Errorf("unknown format %q", flagFormat)
	}
}
