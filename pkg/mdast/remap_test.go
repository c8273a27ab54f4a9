package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

func TestLineMap_ToParent(t *testing.T) {
	t.Parallel()

	// Models "> foo\nlazy" stripped to "foo\nlazy".
	m := &mdast.LineMap{
		ParentLines:  []int{1, 2},
		ParentStarts: []int{0, 6},
		Prefixes:     []string{"> ", ""},
	}

	tests := []struct {
		name     string
		pos      mdast.Position
		expected mdast.Position
		ok       bool
	}{
		{
			name:     "first line start",
			pos:      mdast.Position{Line: 1, Column: 1, Offset: 0},
			expected: mdast.Position{Line: 1, Column: 3, Offset: 2},
			ok:       true,
		},
		{
			name:     "first line interior",
			pos:      mdast.Position{Line: 1, Column: 3, Offset: 2},
			expected: mdast.Position{Line: 1, Column: 5, Offset: 4},
			ok:       true,
		},
		{
			name:     "lazy line keeps its column",
			pos:      mdast.Position{Line: 2, Column: 2, Offset: 5},
			expected: mdast.Position{Line: 2, Column: 2, Offset: 7},
			ok:       true,
		},
		{
			name: "line zero rejected",
			pos:  mdast.Position{Line: 0, Column: 1, Offset: 0},
		},
		{
			name: "line past map rejected",
			pos:  mdast.Position{Line: 3, Column: 1, Offset: 0},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, ok := m.ToParent(testCase.pos)
			require.Equal(t, testCase.ok, ok)
			if ok {
				assert.Equal(t, testCase.expected, got)
			}
		})
	}
}

func TestLineMap_NilSafe(t *testing.T) {
	t.Parallel()

	var m *mdast.LineMap
	assert.Equal(t, 0, m.Len())
	_, ok := m.ToParent(mdast.Position{Line: 1, Column: 1})
	assert.False(t, ok)
}

func TestContainerAttrs_OriginalText(t *testing.T) {
	t.Parallel()

	c := &mdast.ContainerAttrs{
		Subtext: "foo\nbar\n",
		Map: &mdast.LineMap{
			ParentLines:  []int{1, 2, 3},
			ParentStarts: []int{0, 6, 12},
			Prefixes:     []string{"> ", "> ", ">"},
		},
	}
	assert.Equal(t, "> foo\n> bar\n>", c.OriginalText())

	var empty *mdast.ContainerAttrs
	assert.Equal(t, "", empty.OriginalText())
}
