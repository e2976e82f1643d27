// Package vault manages a directory of markdown files: reads with
// frontmatter and tag extraction, atomic writes, listings, and metadata.
// All paths are relative to the vault root and validated against
// traversal before any filesystem access.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mdvault/mdvaultd/pkg/frontmatter"
	"github.com/mdvault/mdvaultd/pkg/fsutil"
)

// Sentinel errors for vault operations.
var (
	// ErrNotFound indicates the file does not exist in the vault.
	ErrNotFound = errors.New("file not found in vault")

	// ErrInvalidPath indicates a path that is malformed or escapes the
	// vault root.
	ErrInvalidPath = errors.New("invalid vault path")
)

// Manager performs all file operations for one vault directory.
type Manager struct {
	root   string
	logger *log.Logger
}

// New creates a Manager rooted at an existing absolute directory. A nil
// logger falls back to the package default.
func New(root string, logger *log.Logger) (*Manager, error) {
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("vault root must be absolute: %s", root)
	}

	stat, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("vault root: %w", err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("vault root is not a directory: %s", root)
	}

	if logger == nil {
		logger = log.Default()
	}

	return &Manager{root: filepath.Clean(root), logger: logger}, nil
}

// Root returns the absolute vault root directory.
func (m *Manager) Root() string {
	return m.root
}

// NormalizePath forces the .md extension on a note path.
func NormalizePath(path string) string {
	if !strings.HasSuffix(path, ".md") {
		return path + ".md"
	}
	return path
}

// ResolvePath validates a vault-relative path and returns the absolute
// path on disk. Leading slashes are ignored; a path that escapes the
// vault root is rejected.
func (m *Manager) ResolvePath(path string) (string, error) {
	path = strings.TrimLeft(path, "/")

	full := filepath.Join(m.root, filepath.FromSlash(path))
	if full != m.root && !strings.HasPrefix(full, m.root+string(filepath.Separator)) {
		m.logger.Warn("path traversal attempt", "path", path)
		return "", fmt.Errorf("%w: path is outside vault: %s", ErrInvalidPath, path)
	}
	return full, nil
}

// Read loads and parses a note.
func (m *Manager) Read(ctx context.Context, path string) (*Note, error) {
	path = NormalizePath(path)

	raw, err := m.ReadRaw(ctx, path)
	if err != nil {
		return nil, err
	}

	doc := frontmatter.Parse(raw)
	fields := doc.Fields()

	return &Note{
		Path:        path,
		Content:     doc.Body(),
		Frontmatter: fields,
		Tags:        ExtractTags(doc.Body(), fields),
	}, nil
}

// ReadRaw returns a note's content verbatim, frontmatter included.
func (m *Manager) ReadRaw(ctx context.Context, path string) (string, error) {
	path = NormalizePath(path)

	full, err := m.ResolvePath(path)
	if err != nil {
		return "", err
	}

	content, _, err := fsutil.ReadFile(ctx, full)
	if err != nil {
		return "", m.classify(path, err)
	}

	m.logger.Debug("read file", "path", path)
	return string(content), nil
}

// Write stores a note atomically, creating parent directories as needed.
// An existing note is replaced.
func (m *Manager) Write(ctx context.Context, path, content string) error {
	path = NormalizePath(path)

	full, err := m.ResolvePath(path)
	if err != nil {
		return err
	}

	if err := fsutil.WriteAtomic(ctx, full, []byte(content), 0); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	m.logger.Info("wrote file", "path", path, "bytes", len(content))
	return nil
}

// Append adds content to the end of an existing note.
func (m *Manager) Append(ctx context.Context, path, content string) error {
	path = NormalizePath(path)

	full, err := m.ResolvePath(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("append %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}

	m.logger.Info("appended to file", "path", path, "bytes", len(content))
	return nil
}

// Delete removes a note.
func (m *Manager) Delete(ctx context.Context, path string) error {
	path = NormalizePath(path)

	full, err := m.ResolvePath(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}

	stat, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("delete %s: %w", path, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("%w: path is not a file: %s", ErrInvalidPath, path)
	}

	if err := os.Remove(full); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}

	m.logger.Info("deleted file", "path", path)
	return nil
}

// Exists reports whether a note exists.
func (m *Manager) Exists(path string) (bool, error) {
	full, err := m.ResolvePath(NormalizePath(path))
	if err != nil {
		return false, err
	}

	stat, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !stat.IsDir(), nil
}

// Stat returns a note's metadata.
func (m *Manager) Stat(path string) (*Stat, error) {
	path = NormalizePath(path)

	full, err := m.ResolvePath(path)
	if err != nil {
		return nil, err
	}

	info, err := fsutil.Stat(full)
	if err != nil {
		return nil, m.classify(path, err)
	}

	return &Stat{CTime: info.CreatedAt, MTime: info.ModifiedAt, Size: info.Size}, nil
}

// List returns the vault-relative paths of markdown files under dir,
// sorted. A missing directory yields an empty listing. Paths use forward
// slashes regardless of platform.
func (m *Manager) List(ctx context.Context, dir string, recursive bool) ([]string, error) {
	full := m.root
	if dir != "" {
		var err error
		if full, err = m.ResolvePath(dir); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	stat, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("%w: path is not a directory: %s", ErrInvalidPath, dir)
	}

	files := []string{}
	if recursive {
		err = filepath.WalkDir(full, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ".md") {
				rel, relErr := filepath.Rel(m.root, path)
				if relErr != nil {
					return relErr
				}
				files = append(files, filepath.ToSlash(rel))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", dir, err)
		}
	} else {
		entries, err := os.ReadDir(full)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}
			rel, relErr := filepath.Rel(m.root, filepath.Join(full, entry.Name()))
			if relErr != nil {
				return nil, relErr
			}
			files = append(files, filepath.ToSlash(rel))
		}
	}

	sort.Strings(files)
	m.logger.Debug("listed files", "dir", dir, "count", len(files))
	return files, nil
}

// classify translates fsutil errors into vault sentinels, keeping the
// vault-relative path in the message.
func (m *Manager) classify(path string, err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fsutil.ErrIsDirectory):
		return fmt.Errorf("%w: path is not a file: %s", ErrInvalidPath, path)
	default:
		return err
	}
}
