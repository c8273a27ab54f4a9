package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/mdtree/pkg/config"
)

// Environment variable names recognized by mdtree.
const (
	envFormat     = "MDTREE_FORMAT"
	envColor      = "MDTREE_COLOR"
	envMaxDepth   = "MDTREE_MAX_DEPTH"
	envDetectLang = "MDTREE_DETECT_LANGUAGES"
)

// applyEnv overlays MDTREE_* environment variables onto cfg.
// Unparsable values are reported as warnings and skipped rather than
// failing the whole load.
func applyEnv(cfg *config.Config, result *LoadResult) {
	if v, ok := os.LookupEnv(envFormat); ok {
		format, err := config.ParseFormat(v)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", envFormat, err))
		} else {
			cfg.Format = format
		}
	}

	if v, ok := os.LookupEnv(envColor); ok {
		mode := config.ColorMode(v)
		if !mode.IsValid() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: unknown color mode %q", envColor, v))
		} else {
			cfg.Color = mode
		}
	}

	if v, ok := os.LookupEnv(envMaxDepth); ok {
		depth, err := strconv.Atoi(v)
		if err != nil || depth < 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: invalid depth %q", envMaxDepth, v))
		} else {
			cfg.MaxDepth = depth
		}
	}

	if v, ok := os.LookupEnv(envDetectLang); ok {
		detect, err := strconv.ParseBool(v)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: invalid boolean %q", envDetectLang, v))
		} else {
			cfg.DetectLanguages = detect
		}
	}
}
