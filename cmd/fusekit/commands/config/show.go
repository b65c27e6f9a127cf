package config

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/fusekit/internal/cli/output"
	"github.com/marmos91/fusekit/pkg/config"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Display the current fusekit configuration.

By default outputs YAML format. Use --output to change format.

Examples:
  # Show default config as YAML
  fusekit config show

  # Show as JSON
  fusekit config show --output json

  # Show specific config file
  fusekit config show --config /etc/fusekit/config.yaml`,
	RunE: runConfigShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "yaml", "Output format (yaml|json)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	// Get config path from parent's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(showOutput)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, cfg)
	default:
		return output.PrintYAML(os.Stdout, cfg)
	}
}
