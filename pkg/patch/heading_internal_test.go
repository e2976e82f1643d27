package patch

import (
	"strings"
	"testing"
)

func parseDoc(content string) []*headingNode {
	return parseHeadings(strings.Split(content, "\n"))
}

func TestParseHeadingsSimple(t *testing.T) {
	t.Parallel()

	tree := parseDoc("# Heading 1\n\nContent\n\n## Heading 2\n\nMore content")

	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}
	if tree[0].text != "Heading 1" || tree[0].level != 1 {
		t.Errorf("unexpected root: %q level %d", tree[0].text, tree[0].level)
	}
	if len(tree[0].children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(tree[0].children))
	}
	if tree[0].children[0].text != "Heading 2" || tree[0].children[0].level != 2 {
		t.Errorf("unexpected child: %q level %d", tree[0].children[0].text, tree[0].children[0].level)
	}
}

func TestParseHeadingsMultipleTopLevel(t *testing.T) {
	t.Parallel()

	tree := parseDoc("# Heading 1\n\nContent\n\n# Heading 2\n\nMore content")

	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}
	if tree[0].text != "Heading 1" || tree[1].text != "Heading 2" {
		t.Errorf("unexpected roots: %q, %q", tree[0].text, tree[1].text)
	}
}

func TestParseHeadingsNested(t *testing.T) {
	t.Parallel()

	tree := parseDoc("# Level 1\n## Level 2\n### Level 3\n#### Level 4\nContent")

	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}
	l2 := tree[0].children
	if len(l2) != 1 || l2[0].level != 2 {
		t.Fatalf("expected one level-2 child, got %+v", l2)
	}
	l3 := l2[0].children
	if len(l3) != 1 || l3[0].level != 3 {
		t.Fatalf("expected one level-3 child, got %+v", l3)
	}
	if len(l3[0].children) != 1 || l3[0].children[0].level != 4 {
		t.Fatalf("expected one level-4 child, got %+v", l3[0].children)
	}
}

func TestParseHeadingsSiblingClosesRegion(t *testing.T) {
	t.Parallel()

	tree := parseDoc("# A\nline one\nline two\n# B\nline three")

	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}
	if tree[0].endLine != 2 {
		t.Errorf("expected A to end on line 2, got %d", tree[0].endLine)
	}
	if tree[1].endLine != 4 {
		t.Errorf("expected B to end on line 4, got %d", tree[1].endLine)
	}
}

func TestParseHeadingsStripsAttributes(t *testing.T) {
	t.Parallel()

	tree := parseDoc("# Heading {#my-id}\n\nContent.")

	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}
	if tree[0].text != "Heading" {
		t.Errorf("expected attribute block stripped, got %q", tree[0].text)
	}
}
