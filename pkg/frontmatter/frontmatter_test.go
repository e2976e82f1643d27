package frontmatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdvault/mdvaultd/pkg/frontmatter"
)

const sampleDoc = `---
title: Test Document
tags:
  - alpha
  - beta
count: 3
---

Body text here.
`

func TestParse(t *testing.T) {
	t.Run("document with frontmatter", func(t *testing.T) {
		doc := frontmatter.Parse(sampleDoc)

		assert.Equal(t, "\nBody text here.\n", doc.Body())
		assert.True(t, doc.Has("title"))
		assert.True(t, doc.Has("tags"))
		assert.False(t, doc.Has("missing"))

		title, ok := doc.Get("title")
		require.True(t, ok)
		assert.Equal(t, "Test Document", title)

		tags, ok := doc.Get("tags")
		require.True(t, ok)
		assert.Equal(t, []any{"alpha", "beta"}, tags)

		count, ok := doc.Get("count")
		require.True(t, ok)
		assert.Equal(t, 3, count)
	})

	t.Run("document without frontmatter", func(t *testing.T) {
		doc := frontmatter.Parse("# Heading\n\nJust a body.")

		assert.Equal(t, "# Heading\n\nJust a body.", doc.Body())
		assert.Empty(t, doc.Fields())
	})

	t.Run("unclosed block is body", func(t *testing.T) {
		content := "---\ntitle: Oops\n\nNo closing delimiter."
		doc := frontmatter.Parse(content)

		assert.Equal(t, content, doc.Body())
		assert.False(t, doc.Has("title"))
	})

	t.Run("non-mapping metadata is body", func(t *testing.T) {
		content := "---\n- just\n- a list\n---\nBody."
		doc := frontmatter.Parse(content)

		assert.Equal(t, content, doc.Body())
	})

	t.Run("invalid yaml is body", func(t *testing.T) {
		content := "---\n\t{bad yaml\n---\nBody."
		doc := frontmatter.Parse(content)

		assert.Equal(t, content, doc.Body())
	})

	t.Run("empty document", func(t *testing.T) {
		doc := frontmatter.Parse("")
		assert.Equal(t, "", doc.Body())
	})
}

func TestRenderRoundTrip(t *testing.T) {
	t.Run("body-only document is unchanged", func(t *testing.T) {
		doc := frontmatter.Parse("# Heading\n\nBody.")
		out, err := doc.Render()
		require.NoError(t, err)
		assert.Equal(t, "# Heading\n\nBody.", out)
	})

	t.Run("fields and body survive a round trip", func(t *testing.T) {
		out, err := frontmatter.Parse(sampleDoc).Render()
		require.NoError(t, err)

		again := frontmatter.Parse(out)
		assert.Equal(t, frontmatter.Parse(sampleDoc).Fields(), again.Fields())
		assert.Equal(t, "\nBody text here.\n", again.Body())
	})

	t.Run("key order is preserved", func(t *testing.T) {
		content := "---\nzebra: 1\nalpha: 2\nmiddle: 3\n---\nBody."
		out, err := frontmatter.Parse(content).Render()
		require.NoError(t, err)
		assert.Equal(t, content, out)
	})
}

func TestSet(t *testing.T) {
	t.Run("replaces existing field in place", func(t *testing.T) {
		doc := frontmatter.Parse("---\ntitle: Old\nstatus: draft\n---\nBody.")
		require.NoError(t, doc.Set("title", "New"))

		out, err := doc.Render()
		require.NoError(t, err)
		assert.Equal(t, "---\ntitle: New\nstatus: draft\n---\nBody.", out)
	})

	t.Run("appends new field at the end", func(t *testing.T) {
		doc := frontmatter.Parse("---\ntitle: Test\n---\nBody.")
		require.NoError(t, doc.Set("status", "draft"))

		out, err := doc.Render()
		require.NoError(t, err)
		assert.Equal(t, "---\ntitle: Test\nstatus: draft\n---\nBody.", out)
	})

	t.Run("creates metadata on a bare document", func(t *testing.T) {
		doc := frontmatter.Parse("Just a body.")
		require.NoError(t, doc.Set("title", "Fresh"))

		out, err := doc.Render()
		require.NoError(t, err)
		assert.Equal(t, "---\ntitle: Fresh\n---\nJust a body.", out)
	})

	t.Run("stores structured values", func(t *testing.T) {
		doc := frontmatter.Parse("Body.")
		require.NoError(t, doc.Set("tags", []any{"a", "b"}))

		tags, ok := doc.Get("tags")
		require.True(t, ok)
		assert.Equal(t, []any{"a", "b"}, tags)
	})
}

func TestFields(t *testing.T) {
	t.Parallel()

	fields := frontmatter.Parse(sampleDoc).Fields()

	assert.Equal(t, "Test Document", fields["title"])
	assert.Equal(t, []any{"alpha", "beta"}, fields["tags"])
	assert.Len(t, fields, 3)
}
