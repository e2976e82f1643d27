// Package active tracks the active file per client session. Editors
// open a note, then address it through the active-file endpoints
// without repeating the path.
package active

import (
	"errors"
	"sync"
)

// DefaultSession is used when a client does not identify itself.
const DefaultSession = "default"

// ErrNoActiveFile is returned when a session has no active file and no
// default is configured.
var ErrNoActiveFile = errors.New("no active file")

// Tracker maps sessions to their active vault path. Safe for
// concurrent use.
type Tracker struct {
	mu          sync.RWMutex
	files       map[string]string
	defaultFile string
}

// NewTracker returns a tracker. defaultFile, if non-empty, is the
// fallback for sessions that never opened a file.
func NewTracker(defaultFile string) *Tracker {
	return &Tracker{
		files:       make(map[string]string),
		defaultFile: defaultFile,
	}
}

// Set records path as the active file for session. An empty session
// means the default session.
func (t *Tracker) Set(session, path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.files[normalize(session)] = path
}

// Get returns the active file for session, falling back to the
// configured default file.
func (t *Tracker) Get(session string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if path, ok := t.files[normalize(session)]; ok {
		return path, nil
	}
	if t.defaultFile != "" {
		return t.defaultFile, nil
	}
	return "", ErrNoActiveFile
}

// Clear forgets the active file for session.
func (t *Tracker) Clear(session string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.files, normalize(session))
}

func normalize(session string) string {
	if session == "" {
		return DefaultSession
	}
	return session
}
