// Package render converts markdown note bodies to HTML for content
// negotiation.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// renderer is a pre-configured goldmark instance with GFM extensions.
//
//nolint:gochecknoglobals // goldmark instances are safe for concurrent use
var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// HTML renders a markdown body as an HTML fragment. Frontmatter should
// be stripped before rendering.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
