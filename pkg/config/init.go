package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileHeader is prepended to generated configuration files.
const configFileHeader = `# fusekit Configuration File
#
# This file was generated by 'fusekit init'.
# Environment variables with the FUSEKIT_ prefix override these values,
# e.g. FUSEKIT_LOGGING_LEVEL=DEBUG.
#
# See 'fusekit config schema' for the full schema.

`

// InitConfig writes a default configuration file at the default
// location ($XDG_CONFIG_HOME/fusekit/config.yaml).
//
// Parameters:
//   - force: Overwrite an existing file instead of failing
//
// Returns:
//   - string: Path of the written configuration file
//   - error: Creation error, or an "already exists" error without force
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes a default configuration file at the given
// path, creating parent directories as needed.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(GetDefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	content := append([]byte(configFileHeader), data...)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
