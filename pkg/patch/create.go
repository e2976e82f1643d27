package patch

import "strings"

// createHeading appends the missing heading chain to the end of the
// document and places the new content under the deepest heading. Segment
// depth determines the heading level: the first segment becomes an H1,
// the second an H2, and so on.
func createHeading(content, target, newContent string) string {
	parts := strings.Split(target, "::")

	// Drop any duplicate-index suffix; the created heading is always new.
	if i := strings.LastIndex(parts[len(parts)-1], ":"); i >= 0 {
		parts[len(parts)-1] = parts[len(parts)-1][:i]
	}

	var block []string
	if content != "" && !strings.HasSuffix(content, "\n") {
		block = append(block, "")
	}
	for i, segment := range parts {
		block = append(block, strings.Repeat("#", i+1)+" "+segment, "")
	}
	block = append(block, newContent)

	joined := strings.Join(block, "\n")
	if content == "" {
		return joined
	}
	return content + "\n" + joined
}
