package patch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// blockPattern matches a block reference marker at the end of a line.
var blockPattern = regexp.MustCompile(`\^([a-zA-Z0-9_-]+)\s*$`)

// span marks a line range within a document. Lines are zero-based and
// endLine is inclusive. For single-line block targets, endCol is the
// column where the reference marker (and its preceding space) begins;
// zero means the whole line.
type span struct {
	startLine int
	endLine   int
	endCol    int
}

// resolveHeading locates the content region of a heading target. The
// target is a "::"-separated path; a trailing ":N" on the final segment
// selects among duplicates (1-based). A suffix that does not parse as an
// integer is treated as literal heading text.
//
// Returns (nil, nil) when no heading matches, so the caller can decide
// between not-found and create-if-missing.
func resolveHeading(lines []string, target string) (*span, error) {
	parts := strings.Split(target, "::")

	index := 0
	last := parts[len(parts)-1]
	if i := strings.LastIndex(last, ":"); i >= 0 {
		if n, err := strconv.Atoi(last[i+1:]); err == nil {
			if n < 1 {
				return nil, fmt.Errorf("%w: heading index must be >= 1, got %q", ErrInvalidTarget, last[i+1:])
			}
			index = n - 1
			parts[len(parts)-1] = last[:i]
		}
	}

	node := findHeading(parseHeadings(lines), parts, index)
	if node == nil {
		return nil, nil
	}

	// The region is the heading's own content: everything after the
	// heading line up to the first child heading, if any.
	end := node.endLine
	if len(node.children) > 0 {
		end = node.children[0].startLine - 1
	}

	return &span{startLine: node.startLine + 1, endLine: end}, nil
}

// resolveBlock locates the first line carrying the block reference ^id.
// The marker itself is excluded from the region via endCol so inline
// appends can splice before it.
func resolveBlock(lines []string, id string) (*span, error) {
	for i, line := range lines {
		m := blockPattern.FindStringSubmatchIndex(line)
		if m == nil || line[m[2]:m[3]] != id {
			continue
		}

		col := m[0]
		if col > 0 && line[col-1] == ' ' {
			col--
		}
		return &span{startLine: i, endLine: i, endCol: col}, nil
	}

	return nil, fmt.Errorf("%w: block reference ^%s", ErrTargetNotFound, id)
}
