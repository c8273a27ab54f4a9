package pretty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := NewStyles(false)

	out := FormatSummary(styles, ParseSummary{
		Path:     "README.md",
		Bytes:    1024,
		Lines:    40,
		Blocks:   12,
		Inlines:  31,
		Refs:     2,
		Duration: 1500 * time.Microsecond,
	})

	assert.Contains(t, out, "README.md")
	assert.Contains(t, out, "1024 bytes")
	assert.Contains(t, out, "40 lines")
	assert.Contains(t, out, "12 blocks")
	assert.Contains(t, out, "31 inlines")
	assert.Contains(t, out, "2 refs")
	assert.Contains(t, out, "1.5ms")
}

func TestFormatSummary_Minimal(t *testing.T) {
	t.Parallel()

	out := FormatSummary(NewStyles(false), ParseSummary{Path: "-", Bytes: 0})
	assert.Contains(t, out, "-")
	assert.Contains(t, out, "0 bytes")
	assert.NotContains(t, out, "refs")
}
