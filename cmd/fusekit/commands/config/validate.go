package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/fusekit/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the fusekit configuration file.

Checks for syntax errors, missing required fields, and invalid values.

Examples:
  # Validate default config
  fusekit config validate

  # Validate specific config file
  fusekit config validate --config /etc/fusekit/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	// Get config path from parent's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	// Determine path for display
	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	// Additional checks beyond schema validation
	var warnings []string

	if info, err := os.Stat(cfg.Mount.Path); err != nil {
		warnings = append(warnings, fmt.Sprintf("Mountpoint %s does not exist yet", cfg.Mount.Path))
	} else if !info.IsDir() {
		warnings = append(warnings, fmt.Sprintf("Mountpoint %s is not a directory", cfg.Mount.Path))
	}

	if len(cfg.Tree) == 0 {
		warnings = append(warnings, "No tree entries configured - the mount will serve an empty root")
	}

	for _, entry := range cfg.Tree {
		if entry.ContentFile != "" {
			if _, err := os.Stat(entry.ContentFile); err != nil {
				warnings = append(warnings, fmt.Sprintf("Content file for %s not readable: %s", entry.Path, entry.ContentFile))
			}
		}
	}

	fmt.Printf("Configuration file: %s\n", displayPath)
	fmt.Println("Validation: OK")

	if len(warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	fmt.Printf("\nConfiguration summary:\n")
	fmt.Printf("  Mountpoint:      %s\n", cfg.Mount.Path)
	fmt.Printf("  FS name:         %s\n", cfg.Mount.FSName)
	fmt.Printf("  Tree entries:    %d\n", len(cfg.Tree))
	fmt.Printf("  Log level:       %s\n", cfg.Logging.Level)
	fmt.Printf("  Metrics:         %v\n", cfg.Metrics.Enabled)
	fmt.Printf("  Telemetry:       %v\n", cfg.Telemetry.Enabled)

	return nil
}
