package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/fusekit/internal/cli/prompt"
	"github.com/marmos91/fusekit/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample fusekit configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/fusekit/config.yaml.
Use --config to specify a custom path. When the file already exists you
are prompted before it is overwritten; --force skips the prompt.

Examples:
  # Initialize with default location
  fusekit init

  # Initialize with custom path
  fusekit init --config /etc/fusekit/config.yaml

  # Force overwrite existing config
  fusekit init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	force := initForce
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			overwrite, err := prompt.Confirm(fmt.Sprintf("Configuration file %s already exists. Overwrite?", configPath), false)
			if err != nil {
				return err
			}
			if !overwrite {
				fmt.Println("Aborted.")
				return nil
			}
			force = true
		}
	}

	if err := config.InitConfigToPath(configPath, force); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to declare your tree")
	fmt.Println("  2. Mount with: fusekit mount")
	fmt.Printf("  3. Or specify custom config: fusekit mount --config %s\n", configPath)

	return nil
}
