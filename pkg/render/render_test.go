package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdvault/mdvaultd/pkg/render"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	t.Run("headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		html, err := render.HTML("# Title\n\nSome *emphasis*.\n")
		require.NoError(t, err)

		assert.Contains(t, html, "<h1>Title</h1>")
		assert.Contains(t, html, "<em>emphasis</em>")
	})

	t.Run("GFM tables", func(t *testing.T) {
		t.Parallel()

		html, err := render.HTML("| a | b |\n|---|---|\n| 1 | 2 |\n")
		require.NoError(t, err)

		assert.Contains(t, html, "<table>")
	})

	t.Run("GFM strikethrough", func(t *testing.T) {
		t.Parallel()

		html, err := render.HTML("~~gone~~")
		require.NoError(t, err)

		assert.Contains(t, html, "<del>gone</del>")
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		html, err := render.HTML("")
		require.NoError(t, err)
		assert.Empty(t, html)
	})
}
