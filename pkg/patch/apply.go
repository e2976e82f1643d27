package patch

import (
	"fmt"
	"strings"
)

// applyAt rewrites the line buffer according to the operation and the
// resolved target span.
func applyAt(lines []string, pos *span, newContent string, op Operation) ([]string, error) {
	switch op {
	case OpReplace:
		return replaceRegion(lines, pos, newContent), nil
	case OpAppend:
		if pos.startLine == pos.endLine && pos.endCol > 0 {
			return appendInline(lines, pos, newContent), nil
		}
		return appendRegion(lines, pos, newContent), nil
	case OpPrepend:
		return prependRegion(lines, pos, newContent), nil
	default:
		return nil, fmt.Errorf("%w: operation %q must be append, prepend, or replace", ErrInvalidTarget, op)
	}
}

// replaceRegion swaps the entire span for the new content. The span may
// be empty (startLine past endLine) for a heading with no body, in which
// case nothing is removed.
func replaceRegion(lines []string, pos *span, newContent string) []string {
	before := lines[:pos.startLine]
	after := lines[pos.endLine+1:]

	out := make([]string, 0, len(before)+len(after)+1)
	out = append(out, before...)
	out = append(out, strings.Split(newContent, "\n")...)
	out = append(out, after...)
	return out
}

// appendRegion inserts the new content after the last line of the span.
// A leading newline is added unless the content already starts with one,
// so the insertion lands on its own line.
func appendRegion(lines []string, pos *span, newContent string) []string {
	if !strings.HasPrefix(newContent, "\n") {
		newContent = "\n" + newContent
	}

	before := lines[:pos.endLine+1]
	after := lines[pos.endLine+1:]

	out := make([]string, 0, len(lines)+1)
	out = append(out, before...)
	out = append(out, strings.Split(newContent, "\n")...)
	out = append(out, after...)
	return out
}

// appendInline splices the new content into a single-line block target,
// between the existing text and the block reference marker.
func appendInline(lines []string, pos *span, newContent string) []string {
	line := lines[pos.startLine]
	marker := line[pos.endCol:]
	text := strings.TrimRight(line[:pos.endCol], " \t")

	out := make([]string, 0, len(lines))
	out = append(out, lines[:pos.startLine]...)
	out = append(out, text+" "+strings.TrimSpace(newContent)+marker)
	out = append(out, lines[pos.startLine+1:]...)
	return out
}

// prependRegion inserts the new content before the first line of the
// span. One trailing empty line of the content is dropped so a
// newline-terminated payload does not open a gap.
func prependRegion(lines []string, pos *span, newContent string) []string {
	newLines := strings.Split(newContent, "\n")
	if len(newLines) > 0 && newLines[len(newLines)-1] == "" {
		newLines = newLines[:len(newLines)-1]
	}

	out := make([]string, 0, len(lines)+len(newLines))
	out = append(out, lines[:pos.startLine]...)
	out = append(out, newLines...)
	out = append(out, lines[pos.startLine:]...)
	return out
}
