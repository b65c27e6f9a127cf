package config

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration for errors.
//
// Struct-level constraints (required fields, value ranges, enums) are
// enforced through validator tags; cross-field rules that tags cannot
// express are checked explicitly afterwards.
//
// Validation does not mutate the configuration. Normalization (such as
// upper-casing the log level) happens in ApplyDefaults.
func Validate(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry is enabled but no endpoint is configured")
	}

	if cfg.Telemetry.Profiling.Enabled && cfg.Telemetry.Profiling.Endpoint == "" {
		return fmt.Errorf("profiling is enabled but no endpoint is configured")
	}

	if err := validateTree(cfg.Tree); err != nil {
		return err
	}

	return nil
}

// validateTree checks the static tree declaration: paths must be
// absolute and unique, content sources mutually exclusive, and modes
// parseable octal strings.
func validateTree(entries []TreeEntry) error {
	seen := make(map[string]struct{}, len(entries))

	for i, e := range entries {
		if !strings.HasPrefix(e.Path, "/") {
			return fmt.Errorf("tree entry %d: path %q is not absolute", i, e.Path)
		}
		clean := path.Clean(e.Path)
		if clean == "/" {
			return fmt.Errorf("tree entry %d: path %q names the root directory", i, e.Path)
		}
		if _, dup := seen[clean]; dup {
			return fmt.Errorf("tree entry %d: duplicate path %q", i, clean)
		}
		seen[clean] = struct{}{}

		if e.Content != "" && e.ContentFile != "" {
			return fmt.Errorf("tree entry %d (%s): content and content_file are mutually exclusive", i, clean)
		}

		if e.Mode != "" {
			if _, err := ParseMode(e.Mode); err != nil {
				return fmt.Errorf("tree entry %d (%s): %w", i, clean, err)
			}
		}
	}

	return nil
}

// ParseMode parses an octal permission string like "0644" or "644"
// into permission bits. Anything outside the permission range is an
// error.
func ParseMode(s string) (uint32, error) {
	mode, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid mode %q: not an octal number", s)
	}
	if mode > 0o777 {
		return 0, fmt.Errorf("invalid mode %q: outside permission range", s)
	}
	return uint32(mode), nil
}
