// Package frontmatter reads and writes the YAML metadata block at the top
// of a markdown document. Fields are kept as yaml.Node values so key order
// survives a parse/render round trip.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Doc is a markdown document split into a metadata mapping and a body.
type Doc struct {
	meta *yaml.Node // mapping node; nil when the document has none
	body string
}

// Parse splits a document into frontmatter and body. Documents without a
// leading "---" block, with an unclosed block, or with metadata that is
// not a YAML mapping are treated as body-only; Parse never fails.
func Parse(content string) *Doc {
	raw, body, ok := split(content)
	if !ok {
		return &Doc{body: content}
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &root); err != nil {
		return &Doc{body: content}
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return &Doc{body: content}
	}

	return &Doc{meta: root.Content[0], body: body}
}

// split separates the raw frontmatter text from the body. The block is
// delimited by "---" on its own line at the very start of the document.
func split(content string) (raw, body string, ok bool) {
	if !strings.HasPrefix(content, "---\n") {
		return "", content, false
	}

	rest := content[4:]
	pos := 0
	for pos < len(rest) {
		end := strings.IndexByte(rest[pos:], '\n')
		if end < 0 {
			if rest[pos:] == "---" {
				return rest[:pos], "", true
			}
			break
		}
		if rest[pos:pos+end] == "---" {
			return rest[:pos], rest[pos+end+1:], true
		}
		pos += end + 1
	}

	return "", content, false
}

// Body returns the document content below the frontmatter block.
func (d *Doc) Body() string {
	return d.body
}

// Has reports whether the metadata contains the field.
func (d *Doc) Has(field string) bool {
	return d.meta != nil && findKey(d.meta, field) >= 0
}

// Get returns the decoded value of a metadata field.
func (d *Doc) Get(field string) (any, bool) {
	if d.meta == nil {
		return nil, false
	}
	i := findKey(d.meta, field)
	if i < 0 {
		return nil, false
	}

	var v any
	if err := d.meta.Content[i+1].Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// Set stores a metadata field, replacing an existing value in place so
// field order is preserved. New fields are appended at the end.
func (d *Doc) Set(field string, value any) error {
	var val yaml.Node
	if err := val.Encode(value); err != nil {
		return fmt.Errorf("encode frontmatter field %q: %w", field, err)
	}

	if d.meta == nil {
		d.meta = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	if i := findKey(d.meta, field); i >= 0 {
		d.meta.Content[i+1] = &val
		return nil
	}

	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field}
	d.meta.Content = append(d.meta.Content, key, &val)
	return nil
}

// Fields decodes the whole metadata mapping.
func (d *Doc) Fields() map[string]any {
	out := map[string]any{}
	if d.meta != nil {
		_ = d.meta.Decode(&out)
	}
	return out
}

// Render serializes the document back to markdown. A document without
// metadata renders as its body unchanged.
func (d *Doc) Render() (string, error) {
	if d.meta == nil || len(d.meta.Content) == 0 {
		return d.body, nil
	}

	out, err := yaml.Marshal(d.meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	return "---\n" + string(out) + "---\n" + d.body, nil
}

// findKey returns the index of a key in a YAML mapping node, or -1.
func findKey(mapping *yaml.Node, key string) int {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i
		}
	}
	return -1
}
