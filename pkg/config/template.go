package config

import (
	"fmt"
	"strings"
)

// TemplateHeader is the comment block written above generated config files.
const TemplateHeader = `# mdtree configuration
# See https://github.com/yaklabco/mdtree for documentation.`

// Template returns a commented starter configuration file.
// Every option is present with its default so users can uncomment
// and edit rather than consult the docs for key names.
func Template() []byte {
	defaults := NewConfig()

	var b strings.Builder
	b.WriteString(TemplateHeader)
	b.WriteString("\n\n")

	b.WriteString("# Output format: tree, json, markdown, outline.\n")
	fmt.Fprintf(&b, "format: %s\n\n", defaults.Format)

	b.WriteString("# Colorize output: auto, always, never.\n")
	fmt.Fprintf(&b, "color: %s\n\n", defaults.Color)

	b.WriteString("# Maximum block nesting depth. 0 uses the parser default.\n")
	fmt.Fprintf(&b, "max_depth: %d\n\n", defaults.MaxDepth)

	b.WriteString("# Detect languages for fenced code blocks without an info string.\n")
	fmt.Fprintf(&b, "detect_languages: %t\n\n", defaults.DetectLanguages)

	b.WriteString("# File extensions treated as markdown.\n")
	b.WriteString("extensions:\n")
	for _, ext := range defaults.Extensions {
		fmt.Fprintf(&b, "  - %s\n", ext)
	}

	return []byte(b.String())
}
