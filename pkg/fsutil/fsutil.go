// Package fsutil provides filesystem primitives for the vault: safe reads
// with categorized errors, atomic writes, and metadata snapshots.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileInfo is a point-in-time snapshot of a file's metadata. Timestamps
// are Unix milliseconds, matching what the API reports to clients.
type FileInfo struct {
	Path       string
	Size       int64
	CreatedAt  int64
	ModifiedAt int64
	ModTime    time.Time
	Mode       os.FileMode
}

// Stat returns a metadata snapshot for path. Creation time is not
// portably available, so the modification time stands in for it.
func Stat(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	millis := stat.ModTime().UnixMilli()
	return &FileInfo{
		Path:       path,
		Size:       stat.Size(),
		CreatedAt:  millis,
		ModifiedAt: millis,
		ModTime:    stat.ModTime(),
		Mode:       stat.Mode(),
	}, nil
}

// ReadFile reads a file's content along with its metadata snapshot.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	info, err := Stat(path)
	if err != nil {
		return nil, nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	return content, info, nil
}

// EnsureDir creates the directory and any missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// classify wraps an os error with the matching sentinel.
func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}
