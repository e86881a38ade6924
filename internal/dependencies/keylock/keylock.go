// Package keylock provides per-key mutual exclusion. The shoot-ink and
// end-game orchestrators hold a session's lock for the whole
// load-modify-save cycle so concurrent commits against the same session
// cannot lose updates.
package keylock

import "sync"

// KeyLock is a set of named mutexes. Entries are created on first use
// and released once no goroutine holds or waits on them.
type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyLock
func New() *KeyLock {
	return &KeyLock{
		entries: make(map[string]*entry),
	}
}

// Lock acquires the mutex for the given key, blocking until it is available
func (l *KeyLock) Lock(key string) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for the given key.
// Unlocking a key that is not held is a programming error and panics.
func (l *KeyLock) Unlock(key string) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		l.mu.Unlock()
		panic("keylock: unlock of unheld key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
	l.mu.Unlock()

	e.mu.Unlock()
}
