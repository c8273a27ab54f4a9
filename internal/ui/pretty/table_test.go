package pretty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/parser"
)

func refsFrom(t *testing.T, source string) *parser.ReferenceMap {
	t.Helper()
	doc, err := parser.Parse(source)
	require.NoError(t, err)
	return doc.Refs
}

func TestRefTableFormatter_FormatTable(t *testing.T) {
	t.Parallel()

	refs := refsFrom(t, "[beta]: /b\n[alpha]: /a \"First\"\n")
	out := NewRefTableFormatter(NewStyles(false), 0).FormatTable(refs)

	assert.Contains(t, out, "LABEL")
	assert.Contains(t, out, "DESTINATION")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "2 reference definitions")

	// Sorted by label: alpha before beta.
	alphaIdx := strings.Index(out, "alpha")
	betaIdx := strings.Index(out, "beta")
	require.GreaterOrEqual(t, alphaIdx, 0)
	require.GreaterOrEqual(t, betaIdx, 0)
	assert.Less(t, alphaIdx, betaIdx)

	assert.Contains(t, out, "/a")
	assert.Contains(t, out, "First")
}

func TestRefTableFormatter_Empty(t *testing.T) {
	t.Parallel()

	formatter := NewRefTableFormatter(NewStyles(false), 80)
	assert.Equal(t, "", formatter.FormatTable(nil))
	assert.Equal(t, "", formatter.FormatTable(parser.NewReferenceMap()))
}

func TestRefTableFormatter_NarrowTerminal(t *testing.T) {
	t.Parallel()

	refs := parser.NewReferenceMap()
	require.True(t, refs.Add("docs", "https://example.com/"+strings.Repeat("p/", 60), ""))

	out := NewRefTableFormatter(NewStyles(false), 60).FormatTable(refs)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 70, "line too wide: %q", line)
	}
	assert.Contains(t, out, "...")
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "exact", truncateString("exact", 5))
	assert.Equal(t, "lon...", truncateString("longvalue", 6))
	assert.Equal(t, "lo", truncateString("longvalue", 2))
}
