// Package search provides full-text and frontmatter queries over a vault.
package search

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mdvault/mdvaultd/pkg/vault"
)

// Result is one matching file. Matches counts query occurrences for text
// search and is always 1 for filter queries, which are binary.
type Result struct {
	Path    string `json:"path"`
	Matches int    `json:"matches"`
}

// Engine runs queries against a vault. Files that fail to read are
// logged and skipped so one broken note cannot poison a search.
type Engine struct {
	vault  *vault.Manager
	logger *log.Logger
}

// New creates an Engine. A nil logger falls back to the package default.
func New(v *vault.Manager, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{vault: v, logger: logger}
}

// Simple performs a case-insensitive substring search over the body and
// frontmatter of every file, sorted by match count descending. A
// maxResults of 0 or less means unlimited.
func (e *Engine) Simple(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return []Result{}, nil
	}
	needle := strings.ToLower(query)

	files, err := e.vault.List(ctx, "", true)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := []Result{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}

		note, err := e.vault.Read(ctx, path)
		if err != nil {
			e.logger.Warn("skipping unreadable file during search", "path", path, "error", err)
			continue
		}

		matches := strings.Count(strings.ToLower(note.Content), needle)
		if len(note.Frontmatter) > 0 {
			serialized := strings.ToLower(fmt.Sprintf("%v", note.Frontmatter))
			matches += strings.Count(serialized, needle)
		}

		if matches > 0 {
			results = append(results, Result{Path: path, Matches: matches})
		}
	}

	// Ties keep the listing's path order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Matches > results[j].Matches
	})

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}

	e.logger.Info("search complete", "query", query, "results", len(results))
	return results, nil
}

// Filter matches files whose frontmatter satisfies every field of the
// query. A field value of {"$regex": pattern} matches case-insensitively
// against the stringified field; anything else requires equality.
func (e *Engine) Filter(ctx context.Context, query map[string]any, maxResults int) ([]Result, error) {
	if len(query) == 0 {
		return []Result{}, nil
	}

	files, err := e.vault.List(ctx, "", true)
	if err != nil {
		return nil, fmt.Errorf("filter search: %w", err)
	}

	results := []Result{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("filter search: %w", err)
		}

		note, err := e.vault.Read(ctx, path)
		if err != nil {
			e.logger.Warn("skipping unreadable file during search", "path", path, "error", err)
			continue
		}

		if e.matches(note.Frontmatter, query) {
			results = append(results, Result{Path: path, Matches: 1})
		}
	}

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}

	e.logger.Info("filter search complete", "results", len(results))
	return results, nil
}

// matches applies every query field with AND logic.
func (e *Engine) matches(meta map[string]any, query map[string]any) bool {
	if len(meta) == 0 {
		return false
	}

	for field, expected := range query {
		value := meta[field]

		if op, ok := expected.(map[string]any); ok {
			if pattern, ok := op["$regex"]; ok {
				if value == nil {
					return false
				}
				re, err := regexp.Compile("(?i)" + fmt.Sprint(pattern))
				if err != nil {
					e.logger.Warn("invalid regex pattern in search query", "pattern", pattern)
					return false
				}
				if !re.MatchString(fmt.Sprint(value)) {
					return false
				}
				continue
			}
		}

		if !equal(value, expected) {
			return false
		}
	}

	return true
}

// equal compares a frontmatter value against a query value. Numbers are
// compared numerically: YAML decodes integers while JSON queries arrive
// as floats.
func equal(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
