package pretty

import (
	"fmt"
	"strings"
	"time"
)

// ParseSummary holds counts reported after parsing a document.
type ParseSummary struct {
	Path     string
	Bytes    int
	Lines    int
	Blocks   int
	Inlines  int
	Refs     int
	Duration time.Duration
}

// FormatSummary formats a one-line parse summary.
func FormatSummary(styles *Styles, summary ParseSummary) string {
	parts := []string{
		styles.SummaryTitle.Render(summary.Path),
		styles.SummaryValue.Render(fmt.Sprintf("%d bytes", summary.Bytes)),
		styles.SummaryValue.Render(fmt.Sprintf("%d lines", summary.Lines)),
		styles.SummaryValue.Render(fmt.Sprintf("%d blocks", summary.Blocks)),
		styles.SummaryValue.Render(fmt.Sprintf("%d inlines", summary.Inlines)),
	}

	if summary.Refs > 0 {
		parts = append(parts, styles.SummaryValue.Render(fmt.Sprintf("%d refs", summary.Refs)))
	}

	if summary.Duration > 0 {
		parts = append(parts, styles.Dim.Render(summary.Duration.Round(time.Microsecond).String()))
	}

	return strings.Join(parts, " | ")
}
