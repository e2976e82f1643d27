package patch

import (
	"regexp"
	"strings"
)

// headingPattern matches an ATX heading line. Group 1 is the marker run,
// group 2 the heading text. A trailing {...} attribute block is excluded
// from the text.
var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)(?:\s+\{[^}]*\})?\s*$`)

// headingNode is one heading in the document hierarchy. Line numbers are
// zero-based; endLine is the inclusive last line of the heading's region,
// including any child sections.
type headingNode struct {
	text      string
	level     int
	startLine int
	endLine   int
	children  []*headingNode
}

// parseHeadings scans the document lines and builds the heading forest.
// Setext headings are not recognized; only ATX levels 1-6 participate in
// targeting.
func parseHeadings(lines []string) []*headingNode {
	var roots []*headingNode
	var stack []*headingNode

	for i, line := range lines {
		m := headingPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		node := &headingNode{
			text:      strings.TrimSpace(m[2]),
			level:     len(m[1]),
			startLine: i,
			endLine:   len(lines) - 1,
		}

		// The heading that was open until now ends on the previous line.
		if len(stack) > 0 {
			stack[len(stack)-1].endLine = i - 1
		}

		// Unwind to the nearest ancestor with a smaller level.
		for len(stack) > 0 && stack[len(stack)-1].level >= node.level {
			popped := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				popped.endLine = i - 1
			}
		}

		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, node)
		} else {
			roots = append(roots, node)
		}
		stack = append(stack, node)
	}

	return roots
}

// findHeading walks the forest along path. Intermediate segments descend
// into the first node whose text matches. The index (zero-based) picks
// among duplicates of the final segment. A final segment that does not
// match any sibling is searched recursively through the subtree.
func findHeading(nodes []*headingNode, path []string, index int) *headingNode {
	if len(path) == 0 {
		return nil
	}

	var matches []*headingNode
	for _, n := range nodes {
		if n.text == path[0] {
			matches = append(matches, n)
		}
	}

	if len(matches) == 0 {
		if len(path) == 1 {
			for _, n := range nodes {
				if found := findHeading(n.children, path, index); found != nil {
					return found
				}
			}
		}
		return nil
	}

	if len(path) == 1 {
		if index >= len(matches) {
			return nil
		}
		return matches[index]
	}

	// The index applies only to the final segment.
	return findHeading(matches[0].children, path[1:], index)
}
