package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdvault/mdvaultd/pkg/search"
	"github.com/mdvault/mdvaultd/pkg/vault"
)

func newEngine(t *testing.T) (*search.Engine, *vault.Manager) {
	t.Helper()

	m, err := vault.New(t.TempDir(), nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, m.Write(ctx, "projects/roadmap",
		"---\nstatus: active\npriority: 2\n---\n\nThe roadmap mentions goals. Goals matter.\n"))
	require.NoError(t, m.Write(ctx, "journal/monday",
		"---\nstatus: draft\n---\n\nOne goal for today.\n"))
	require.NoError(t, m.Write(ctx, "plain",
		"Nothing of interest here.\n"))

	return search.New(m, nil), m
}

func TestSimple(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	t.Run("counts case-insensitively and sorts by matches", func(t *testing.T) {
		results, err := e.Simple(ctx, "goal", 0)
		require.NoError(t, err)

		require.Len(t, results, 2)
		assert.Equal(t, "projects/roadmap.md", results[0].Path)
		assert.Equal(t, 2, results[0].Matches)
		assert.Equal(t, "journal/monday.md", results[1].Path)
		assert.Equal(t, 1, results[1].Matches)
	})

	t.Run("searches frontmatter too", func(t *testing.T) {
		results, err := e.Simple(ctx, "active", 0)
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, "projects/roadmap.md", results[0].Path)
	})

	t.Run("caps results", func(t *testing.T) {
		results, err := e.Simple(ctx, "goal", 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("blank query is empty", func(t *testing.T) {
		results, err := e.Simple(ctx, "   ", 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("no matches", func(t *testing.T) {
		results, err := e.Simple(ctx, "unfindable", 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestFilter(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	t.Run("field equality", func(t *testing.T) {
		results, err := e.Filter(ctx, map[string]any{"status": "active"}, 0)
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, "projects/roadmap.md", results[0].Path)
		assert.Equal(t, 1, results[0].Matches)
	})

	t.Run("numeric equality across JSON and YAML", func(t *testing.T) {
		// JSON bodies decode numbers as float64; YAML stores ints.
		results, err := e.Filter(ctx, map[string]any{"priority": float64(2)}, 0)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "projects/roadmap.md", results[0].Path)
	})

	t.Run("regex operator", func(t *testing.T) {
		results, err := e.Filter(ctx, map[string]any{
			"status": map[string]any{"$regex": "^(ACTIVE|DRAFT)$"},
		}, 0)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("multiple fields use AND logic", func(t *testing.T) {
		results, err := e.Filter(ctx, map[string]any{
			"status":   "active",
			"priority": float64(3),
		}, 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("invalid regex matches nothing", func(t *testing.T) {
		results, err := e.Filter(ctx, map[string]any{
			"status": map[string]any{"$regex": "("},
		}, 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("empty query is empty", func(t *testing.T) {
		results, err := e.Filter(ctx, map[string]any{}, 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("files without frontmatter never match", func(t *testing.T) {
		results, err := e.Filter(ctx, map[string]any{"status": nil}, 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
