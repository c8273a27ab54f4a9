// Package langdetect detects the language of fenced code block
// content. It uses go-enry plus a few cheap structural heuristics,
// and is meant for annotating code blocks whose fence carries no
// info string.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language constants for common detected languages.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langText       = "text"
	langBash       = "bash"
)

// classifierCandidates are the languages offered to the enry
// classifier. A small candidate set keeps classification fast and
// avoids exotic false positives.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// DetectFence returns the language tag for a fenced code block.
// A non-empty info string wins outright; its first word is the tag.
// Otherwise the content is inspected.
func DetectFence(info string, content []byte) string {
	if info != "" {
		if tag := strings.Fields(info); len(tag) > 0 {
			return strings.ToLower(tag[0])
		}
	}
	return Detect(content)
}

// Detect returns the detected language for code content.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return langText
	}

	// A shebang names the interpreter outright.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	// Cheap structural patterns beat the classifier on short snippets.
	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// The classifier result is used only when enry reports it as safe.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return langText
}

// patternDetector inspects content for patterns strongly indicating
// one language. It returns "" when the pattern does not apply.
type patternDetector func(content []byte) string

// patternDetectors run in order of specificity.
//
//nolint:gochecknoglobals // Read-only lookup table.
var patternDetectors = []patternDetector{
	detectGo,
	detectPython,
	detectHTML,
	detectJSON,
	detectDockerfile,
	detectSQL,
	detectRust,
	detectJavaScript,
	detectYAML,
}

func detectByPattern(content []byte) string {
	for _, detect := range patternDetectors {
		if lang := detect(content); lang != "" {
			return lang
		}
	}
	return ""
}

func detectGo(content []byte) string {
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("package ")) {
		return langGo
	}
	return ""
}

func detectPython(content []byte) string {
	s := string(content)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return langPython
	}
	// Import statements, excluding Go's grouped form.
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") {
		if strings.Contains(s, "from ") || strings.HasPrefix(strings.TrimSpace(s), "import ") {
			return langPython
		}
	}
	if strings.Contains(s, "__name__") || strings.Contains(s, "__main__") {
		return langPython
	}
	return ""
}

func detectHTML(content []byte) string {
	lower := bytes.ToLower(bytes.TrimSpace(content))
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return langHTML
		}
	}
	return ""
}

func detectJSON(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func detectDockerfile(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if bytes.HasPrefix(trimmed, []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY "))) {
		return langDockerfile
	}
	return ""
}

func detectSQL(content []byte) string {
	upper := strings.ToUpper(strings.TrimSpace(string(content)))
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, keyword) {
			return langSQL
		}
	}
	return ""
}

func detectRust(content []byte) string {
	s := string(content)
	if strings.Contains(s, "fn main()") ||
		strings.Contains(s, "println!") ||
		strings.Contains(s, "let mut ") {
		return langRust
	}
	return ""
}

func detectJavaScript(content []byte) string {
	s := string(content)
	if strings.Contains(s, "=>") ||
		strings.Contains(s, "const ") ||
		strings.Contains(s, "let ") ||
		strings.Contains(s, "console.log") {
		return langJavaScript
	}
	return ""
}

// detectYAML counts key: value lines, excluding ones that look like code.
func detectYAML(content []byte) string {
	yamlKeyCount := 0

	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) {
			if !bytes.Contains(line, []byte("(")) &&
				!bytes.Contains(line, []byte("{")) &&
				!bytes.HasPrefix(line, []byte(`"`)) {
				yamlKeyCount++
			}
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			yamlKeyCount++
		}
	}

	if yamlKeyCount >= 2 {
		return langYAML
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
