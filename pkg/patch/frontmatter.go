package patch

import (
	"encoding/json"
	"fmt"

	"github.com/mdvault/mdvaultd/pkg/frontmatter"
)

// applyFrontmatter updates a single metadata field. Replace sets the
// field unconditionally; append extends a list field, initializing an
// absent one; prepend has no meaning for metadata and is rejected.
func applyFrontmatter(content, field, value string, op Operation) (string, error) {
	if op == OpPrepend {
		return "", fmt.Errorf("%w: operation prepend not supported for frontmatter, use replace or append", ErrInvalidTarget)
	}

	doc := frontmatter.Parse(content)
	val := coerceValue(value)

	switch op {
	case OpReplace:
		if err := doc.Set(field, val); err != nil {
			return "", err
		}

	case OpAppend:
		existing, found := doc.Get(field)
		if !found {
			existing = []any{}
		}
		list, isList := existing.([]any)
		if !isList {
			return "", fmt.Errorf("%w: cannot append to non-list field %q", ErrInvalidTarget, field)
		}
		if items, ok := val.([]any); ok {
			list = append(list, items...)
		} else {
			list = append(list, val)
		}
		if err := doc.Set(field, list); err != nil {
			return "", err
		}

	default:
		return "", fmt.Errorf("%w: invalid operation for frontmatter: %q", ErrInvalidTarget, op)
	}

	return doc.Render()
}

// coerceValue decodes the raw header value as JSON when possible, so
// lists, numbers, and booleans arrive typed. Anything else stays a
// literal string.
func coerceValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
