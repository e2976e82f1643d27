// Package patch applies partial updates to markdown documents.
//
// A patch addresses a target inside the document rather than the whole
// file: a heading section (by hierarchical path, with ":N" disambiguation
// for duplicates), a block reference (a trailing ^id marker), or a
// frontmatter field. The operation inserts before, inserts after, or
// replaces the addressed region. Apply is pure: it never touches the
// filesystem and is safe for concurrent use.
package patch

import (
	"fmt"
	"strings"
)

// Operation selects how new content combines with the target region.
type Operation string

// Supported operations.
const (
	OpAppend  Operation = "append"
	OpPrepend Operation = "prepend"
	OpReplace Operation = "replace"
)

// TargetType selects how the target string is interpreted.
type TargetType string

// Supported target types.
const (
	TargetHeading     TargetType = "heading"
	TargetBlock       TargetType = "block"
	TargetFrontmatter TargetType = "frontmatter"
)

// ParseOperation validates a wire-format operation name.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(s); op {
	case OpAppend, OpPrepend, OpReplace:
		return op, nil
	default:
		return "", fmt.Errorf("%w: operation %q must be append, prepend, or replace", ErrInvalidTarget, s)
	}
}

// ParseTargetType validates a wire-format target type name.
func ParseTargetType(s string) (TargetType, error) {
	switch tt := TargetType(s); tt {
	case TargetHeading, TargetBlock, TargetFrontmatter:
		return tt, nil
	default:
		return "", fmt.Errorf("%w: target type %q must be heading, block, or frontmatter", ErrInvalidTarget, s)
	}
}

// Apply patches content and returns the updated document. The original
// content is never modified. Errors wrap ErrTargetNotFound when the
// target does not exist and ErrInvalidTarget for malformed requests.
//
// createIfMissing applies to heading targets only: a missing heading
// path is created at the end of the document instead of failing.
func Apply(content string, op Operation, tt TargetType, target, newContent string, createIfMissing bool) (string, error) {
	switch tt {
	case TargetFrontmatter:
		return applyFrontmatter(content, target, newContent, op)

	case TargetBlock:
		lines := strings.Split(content, "\n")
		pos, err := resolveBlock(lines, target)
		if err != nil {
			return "", err
		}
		out, err := applyAt(lines, pos, newContent, op)
		if err != nil {
			return "", err
		}
		return strings.Join(out, "\n"), nil

	case TargetHeading:
		lines := strings.Split(content, "\n")
		pos, err := resolveHeading(lines, target)
		if err != nil {
			return "", err
		}
		if pos == nil {
			if createIfMissing {
				return createHeading(content, target, newContent), nil
			}
			return "", fmt.Errorf("%w: heading %q", ErrTargetNotFound, target)
		}
		out, err := applyAt(lines, pos, newContent, op)
		if err != nil {
			return "", err
		}
		return strings.Join(out, "\n"), nil

	default:
		return "", fmt.Errorf("%w: target type %q must be heading, block, or frontmatter", ErrInvalidTarget, tt)
	}
}
