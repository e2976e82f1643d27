package server

import "sync"

// pathLocks serializes read-modify-write cycles per vault path, so two
// concurrent PATCH requests to the same note cannot interleave.
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*sync.Mutex)}
}

func (p *pathLocks) lock(path string) func() {
	p.mu.Lock()
	m, ok := p.locks[path]
	if !ok {
		m = &sync.Mutex{}
		p.locks[path] = m
	}
	p.mu.Unlock()

	m.Lock()
	return m.Unlock
}
