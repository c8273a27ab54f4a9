// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Node kind styles
	Container lipgloss.Style
	Leaf      lipgloss.Style
	Inline    lipgloss.Style

	// Node detail styles
	Span     lipgloss.Style
	Value    lipgloss.Style
	Attr     lipgloss.Style
	Branch   lipgloss.Style
	Language lipgloss.Style

	// Outline styles
	OutlineBullet lipgloss.Style
	OutlineTitle  lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableLegend    lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style

	// Misc
	Error lipgloss.Style
	Dim   lipgloss.Style
	Bold  lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		// Containers (document, blockquote, list, item) stand out;
		// inline nodes stay quiet so text values carry the line.
		Container: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Leaf:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Inline:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),

		Span:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Value:    lipgloss.NewStyle(),
		Attr:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Branch:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Language: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),

		OutlineBullet: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		OutlineTitle:  lipgloss.NewStyle().Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableLegend:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),

		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:  lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Container:      plain,
		Leaf:           plain,
		Inline:         plain,
		Span:           plain,
		Value:          plain,
		Attr:           plain,
		Branch:         plain,
		Language:       plain,
		OutlineBullet:  plain,
		OutlineTitle:   plain,
		TableHeader:    plain,
		TableSeparator: plain,
		TableLegend:    plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Error:          plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		// Check if output is a TTY
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
