package markdown

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_RendersHeadingAndBody(t *testing.T) {
	r, err := New(40)
	require.NoError(t, err)
	assert.Equal(t, 40, r.Width())

	out, err := r.Render("# Title\n\nBody text.\n")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Title")
	assert.Contains(t, plain, "Body text.")
}

func TestNewWithStyle_AcceptsNamedStyles(t *testing.T) {
	for _, style := range []string{"dark", "light", ""} {
		r, err := NewWithStyle(40, style)
		require.NoError(t, err, "style %q", style)

		out, err := r.Render("plain paragraph")
		require.NoError(t, err)
		assert.Contains(t, ansi.Strip(out), "plain paragraph")
	}
}
