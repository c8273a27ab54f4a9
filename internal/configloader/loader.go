package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/mdtree/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is the directory config discovery starts from.
	WorkingDir string

	// ExplicitPath is a config file given via --config. When set it
	// replaces the discovered project config and must exist.
	ExplicitPath string

	// CLIConfig holds values set via command-line flags. These take
	// the highest precedence.
	CLIConfig *config.Config
}

// LoadResult is the outcome of configuration loading.
type LoadResult struct {
	// Config is the fully merged configuration.
	Config *config.Config

	// LoadedFrom lists the config files that contributed, lowest
	// precedence first.
	LoadedFrom []string

	// Warnings holds non-fatal problems encountered while loading.
	Warnings []string
}

// Load discovers and merges configuration in precedence order:
// defaults, system, user, project (or explicit), environment, CLI.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{
		Config: config.NewConfig(),
	}

	paths, err := DiscoverPaths(ctx, opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("discover config paths: %w", err)
	}

	if opts.ExplicitPath != "" {
		if !fileExists(opts.ExplicitPath) {
			return nil, fmt.Errorf("config file not found: %s", opts.ExplicitPath)
		}
		paths.Project = ""
		paths.Explicit = opts.ExplicitPath
	}

	// Lowest precedence first.
	for _, path := range []string{paths.System, paths.User, paths.Project, paths.Explicit} {
		if path == "" {
			continue
		}

		fileCfg, err := loadFile(path)
		if err != nil {
			if path == paths.Explicit {
				return nil, err
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf("skipping %s: %v", path, err))
			continue
		}

		mergeConfig(result.Config, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	applyEnv(result.Config, result)

	if opts.CLIConfig != nil {
		mergeCLI(result.Config, opts.CLIConfig)
	}

	if err := validate(result.Config); err != nil {
		return nil, err
	}

	return result, nil
}

// loadFile reads and parses one YAML config file.
func loadFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
