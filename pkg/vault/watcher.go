package vault

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/charmbracelet/log"
)

// Watcher observes external changes to markdown files in the vault, so
// edits made outside the API (an editor, a sync client) surface in the
// logs and can notify interested components.
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	logger   *log.Logger
	onChange func(path string)
}

// NewWatcher sets up recursive watches over the vault. onChange receives
// the vault-relative path of each changed markdown file and may be nil.
func NewWatcher(m *Manager, onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		root:     m.root,
		logger:   m.logger,
		onChange: onChange,
	}

	// Watch the root and every subdirectory, skipping hidden ones.
	err = filepath.Walk(m.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != m.root {
				return filepath.SkipDir
			}
			_ = fw.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = fw.Close()
		return nil, err
	}

	return w, nil
}

// Run processes events until the context is cancelled or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("vault watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !strings.HasSuffix(path, ".md") {
		// New directories need their own watch.
		if event.Has(fsnotify.Create) {
			info, err := os.Stat(path)
			if err == nil && info.IsDir() && !strings.HasPrefix(info.Name(), ".") {
				_ = w.watcher.Add(path)
			}
		}
		return
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	w.logger.Debug("vault file changed", "path", rel, "op", event.Op.String())
	if w.onChange != nil {
		w.onChange(rel)
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
