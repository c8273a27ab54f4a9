// Package config defines core configuration types for mdtree.
// These types are pure data structures with no dependency on the
// loader; discovery and merging live in internal/configloader.
package config

import "fmt"

// OutputFormat specifies how a parsed document is rendered.
type OutputFormat string

const (
	// FormatTree renders the node tree with styled branches.
	FormatTree OutputFormat = "tree"

	// FormatJSON renders the node tree as JSON.
	FormatJSON OutputFormat = "json"

	// FormatMarkdown renders canonical markdown rebuilt from the tree.
	FormatMarkdown OutputFormat = "markdown"

	// FormatOutline renders only the heading structure.
	FormatOutline OutputFormat = "outline"
)

// IsValid returns true if the output format is one mdtree knows.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatTree, FormatJSON, FormatMarkdown, FormatOutline:
		return true
	default:
		return false
	}
}

// ParseFormat converts a string to an OutputFormat, validating it.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(s)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown output format %q (valid: tree, json, markdown, outline)", s)
	}
	return f, nil
}

// ColorMode controls when styled output is emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is recognized.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for mdtree.
type Config struct {
	// Format specifies the default output format.
	Format OutputFormat `mapstructure:"format" yaml:"format"`

	// Color controls styled output ("auto", "always", "never").
	Color ColorMode `mapstructure:"color" yaml:"color"`

	// MaxDepth bounds block nesting during parsing. Zero means the
	// parser default.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`

	// DetectLanguages enables language detection for fenced code
	// blocks that carry no info string.
	DetectLanguages bool `mapstructure:"detect_languages" yaml:"detect_languages"`

	// Extensions lists the file extensions treated as markdown.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// CLI-level options (not persisted to config files).

	// ShowRefs prints the link reference definition table after the tree.
	ShowRefs bool `mapstructure:"-" yaml:"-"`

	// ShowSpans includes source spans in tree output.
	ShowSpans bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format:          FormatTree,
		Color:           ColorAuto,
		MaxDepth:        0,
		DetectLanguages: false,
		Extensions:      []string{".md", ".markdown"},
	}
}
