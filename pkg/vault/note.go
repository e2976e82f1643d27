package vault

// Note is a parsed markdown file: frontmatter split from the body, with
// tags collected from both.
type Note struct {
	Path        string         `json:"path"`
	Content     string         `json:"content"`
	Frontmatter map[string]any `json:"frontmatter"`
	Tags        []string       `json:"tags"`
	Stat        *Stat          `json:"stat,omitempty"`
}

// Stat is file metadata as reported to API clients. Times are Unix
// milliseconds.
type Stat struct {
	CTime int64 `json:"ctime"`
	MTime int64 `json:"mtime"`
	Size  int64 `json:"size"`
}
