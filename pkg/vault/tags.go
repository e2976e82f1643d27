package vault

import (
	"regexp"
	"sort"
)

// inlineTagPattern matches #tag tokens, including nested tags such as
// #project/subtopic.
var inlineTagPattern = regexp.MustCompile(`#[\w/-]+`)

// ExtractTags collects tags from the frontmatter "tags" field (string or
// list) and inline #tag tokens in the body, deduplicated and sorted.
// Inline tags keep their # prefix, matching how they appear in the text.
func ExtractTags(content string, meta map[string]any) []string {
	set := make(map[string]struct{})

	switch v := meta["tags"].(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				set[s] = struct{}{}
			}
		}
	case string:
		set[v] = struct{}{}
	}

	for _, tag := range inlineTagPattern.FindAllString(content, -1) {
		set[tag] = struct{}{}
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
