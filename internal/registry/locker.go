package registry

import "sync"

// keyedMutex hands out one mutex per game id so mutations on the same game
// serialize while different games never block each other. Entries are
// refcounted and dropped once the last holder releases, keeping the table
// bounded by the number of games under contention.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		entries: make(map[string]*lockEntry),
	}
}

func (that *keyedMutex) Lock(key string) {
	that.mu.Lock()
	entry, ok := that.entries[key]
	if !ok {
		entry = &lockEntry{}
		that.entries[key] = entry
	}
	entry.refs++
	that.mu.Unlock()

	entry.mu.Lock()
}

func (that *keyedMutex) Unlock(key string) {
	that.mu.Lock()
	entry, ok := that.entries[key]
	if !ok {
		that.mu.Unlock()
		panic("keyedMutex: unlock of unheld key " + key)
	}

	entry.refs--
	if entry.refs == 0 {
		delete(that.entries, key)
	}
	that.mu.Unlock()

	entry.mu.Unlock()
}
