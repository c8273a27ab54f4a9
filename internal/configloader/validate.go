package configloader

import (
	"fmt"

	"github.com/yaklabco/mdtree/pkg/config"
)

// validate rejects merged configurations that cannot be acted on.
func validate(cfg *config.Config) error {
	if !cfg.Format.IsValid() {
		return fmt.Errorf("invalid output format %q", cfg.Format)
	}

	if !cfg.Color.IsValid() {
		return fmt.Errorf("invalid color mode %q", cfg.Color)
	}

	if cfg.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative, got %d", cfg.MaxDepth)
	}

	for _, ext := range cfg.Extensions {
		if ext == "" || ext[0] != '.' {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	return nil
}
