package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtree/pkg/parser"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 3 // LABEL, DESTINATION, TITLE
	minLabelWidth    = 8
	minDestWidth     = 20
	minTitleWidth    = 10
	heavySeparator   = "="
)

// RefTableFormatter formats link reference definitions as a styled table.
type RefTableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewRefTableFormatter creates a reference table formatter.
func NewRefTableFormatter(styles *Styles, termWidth int) *RefTableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &RefTableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatTable formats the reference map as a table, sorted by label.
// Returns the empty string when there are no definitions.
func (t *RefTableFormatter) FormatTable(refs *parser.ReferenceMap) string {
	if refs == nil || refs.Len() == 0 {
		return ""
	}

	rows := refs.All()
	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableLegend.Render(
		fmt.Sprintf(" %d reference definitions", len(rows))))
	builder.WriteString("\n")

	return builder.String()
}

type refColumnWidths struct {
	label int
	dest  int
	title int
}

// calculateColumnWidths determines column widths based on content,
// constrained to the terminal width by shrinking the destination first.
func (t *RefTableFormatter) calculateColumnWidths(rows []parser.Reference) refColumnWidths {
	widths := refColumnWidths{
		label: minLabelWidth,
		dest:  minDestWidth,
		title: minTitleWidth,
	}

	for _, row := range rows {
		if len(row.Label) > widths.label {
			widths.label = len(row.Label)
		}
		if len(row.Destination) > widths.dest {
			widths.dest = len(row.Destination)
		}
		if len(row.Title) > widths.title {
			widths.title = len(row.Title)
		}
	}

	totalWidth := t.totalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.dest = max(minDestWidth, widths.dest-excess)

		totalWidth = t.totalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.title = max(minTitleWidth, widths.title-excess)
		}
	}

	return widths
}

func (t *RefTableFormatter) totalWidth(widths refColumnWidths) int {
	return widths.label + widths.dest + widths.title + tablePadding*tableColumnCount
}

func (t *RefTableFormatter) formatHeader(widths refColumnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s",
		widths.label, "LABEL",
		widths.dest, "DESTINATION",
		widths.title, "TITLE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *RefTableFormatter) formatSeparator(widths refColumnWidths) string {
	sep := strings.Repeat(heavySeparator, t.totalWidth(widths))
	return t.styles.TableSeparator.Render(sep)
}

func (t *RefTableFormatter) formatRow(row parser.Reference, widths refColumnWidths) string {
	return fmt.Sprintf(" %-*s  %-*s  %-*s",
		widths.label, truncateString(row.Label, widths.label),
		widths.dest, truncateString(row.Destination, widths.dest),
		widths.title, truncateString(row.Title, widths.title),
	)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
