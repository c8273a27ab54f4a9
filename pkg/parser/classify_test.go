package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchATXHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		line            string
		expectedLevel   int
		expectedContent string
	}{
		{"plain", "# hello", 1, "hello"},
		{"deep", "###### six", 6, "six"},
		{"too deep", "####### no", 0, ""},
		{"glued", "#no", 0, ""},
		{"tab separator", "#\thello", 1, "hello"},
		{"bare", "##", 2, ""},
		{"closing run", "## x ##", 2, "x"},
		{"hash glued to content kept", "## x##", 2, "x##"},
		{"only hashes and space", "## ##", 2, ""},
		{"indent three", "   # ok", 1, "ok"},
		{"indent four", "    # no", 0, ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			m := matchATXHeading(testCase.line)
			if testCase.expectedLevel == 0 {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.Equal(t, testCase.expectedLevel, m.level)
			assert.Equal(t, testCase.expectedContent, m.content)
		})
	}
}

func TestMatchListItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		line            string
		expectNil       bool
		expectedMarker  string
		expectedContent string
		expectedCol     int
	}{
		{"dash", "- x", false, "-", "x", 2},
		{"plus", "+ x", false, "+", "x", 2},
		{"star", "* x", false, "*", "x", 2},
		{"ordered dot", "12. x", false, "12.", "x", 4},
		{"ordered paren", "3) y", false, "3)", "y", 3},
		{"bare marker", "-", false, "-", "", 2},
		{"ten digits", "1234567890. x", true, "", "", 0},
		{"no space", "-x", true, "", "", 0},
		{"wide padding keeps one", "-     x", false, "-", "    x", 2},
		{"four space padding", "-    x", false, "-", "x", 5},
		{"indented marker", "  - x", false, "-", "x", 4},
		{"deep indent rejected", "    - x", true, "", "", 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			m := matchListItem(testCase.line)
			if testCase.expectNil {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.Equal(t, testCase.expectedMarker, m.marker)
			assert.Equal(t, testCase.expectedContent, m.content)
			assert.Equal(t, testCase.expectedCol, m.contentColumn())
		})
	}
}

func TestMatchListItem_Families(t *testing.T) {
	t.Parallel()

	dash := matchListItem("- a")
	plus := matchListItem("+ a")
	dot := matchListItem("1. a")
	paren := matchListItem("2) a")

	assert.True(t, dash.sameFamily(matchListItem("- b")))
	assert.False(t, dash.sameFamily(plus))
	assert.False(t, dash.sameFamily(dot))
	assert.True(t, dot.sameFamily(matchListItem("9. b")))
	assert.False(t, dot.sameFamily(paren))
}

func TestMatchFences(t *testing.T) {
	t.Parallel()

	t.Run("open forms", func(t *testing.T) {
		t.Parallel()

		m := matchFenceOpen("```go")
		require.NotNil(t, m)
		assert.Equal(t, byte('`'), m.char)
		assert.Equal(t, 3, m.length)
		assert.Equal(t, "go", m.info)

		m = matchFenceOpen("  ~~~~ info words ")
		require.NotNil(t, m)
		assert.Equal(t, byte('~'), m.char)
		assert.Equal(t, 4, m.length)
		assert.Equal(t, 2, m.indent)
		assert.Equal(t, "info words", m.info)

		assert.Nil(t, matchFenceOpen("``"))
		assert.Nil(t, matchFenceOpen("``` a`b"))
		assert.NotNil(t, matchFenceOpen("~~~ a`b"))
	})

	t.Run("close forms", func(t *testing.T) {
		t.Parallel()

		open := matchFenceOpen("```")
		require.NotNil(t, open)
		assert.True(t, matchFenceClose("```", open))
		assert.True(t, matchFenceClose("`````  ", open))
		assert.False(t, matchFenceClose("``", open))
		assert.False(t, matchFenceClose("~~~", open))
		assert.False(t, matchFenceClose("``` x", open))
	})
}

func TestMatchBlockQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		line              string
		expectedPrefixLen int // -1 means no match
	}{
		{"plain", "> x", 2},
		{"no space", ">x", 1},
		{"bare marker", ">", 1},
		{"indented", "   > x", 5},
		{"deep indent", "    > x", -1},
		{"not a quote", "x > y", -1},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			m := matchBlockQuote(testCase.line)
			if testCase.expectedPrefixLen < 0 {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.Equal(t, testCase.expectedPrefixLen, m.prefixLen)
		})
	}
}

func TestScanLines(t *testing.T) {
	t.Parallel()

	assert.Nil(t, scanLines(""))

	lines := scanLines("a\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "a", lines[0].text)
	assert.True(t, lines[0].newline)

	lines = scanLines("a\nbb\nccc")
	require.Len(t, lines, 3)
	assert.Equal(t, scannedLine{text: "a", num: 1, offset: 0, newline: true}, lines[0])
	assert.Equal(t, scannedLine{text: "bb", num: 2, offset: 2, newline: true}, lines[1])
	assert.Equal(t, scannedLine{text: "ccc", num: 3, offset: 5, newline: false}, lines[2])
	assert.Equal(t, 8, lines[2].end())

	lines = scanLines("\n\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "", lines[0].text)
	assert.Equal(t, "", lines[1].text)
}
