package pretty

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	colored := NewStyles(true)
	require.NotNil(t, colored)

	plain := NewStyles(false)
	require.NotNil(t, plain)

	// Plain styles must not alter their input.
	assert.Equal(t, "document", plain.Container.Render("document"))
	assert.Equal(t, "1:1-2:5", plain.Span.Render("1:1-2:5"))
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, IsColorEnabled("always", &buf))
	assert.False(t, IsColorEnabled("never", &buf))

	// A plain buffer is not a TTY.
	assert.False(t, IsColorEnabled("auto", &buf))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, IsColorEnabled("auto", &buf))
	assert.True(t, IsColorEnabled("always", &buf))
}
