package application

import "sync"

// lockTable hands out one mutex per key so read-modify-write sequences on
// the same entity serialize while unrelated entities proceed in parallel.
// Locks are never reclaimed; the key space is bounded by entity count.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock func.
func (t *lockTable) Lock(key string) func() {
	t.mu.Lock()
	l, ok := t.locks[key]
	if !ok {
		l = &sync.Mutex{}
		t.locks[key] = l
	}
	t.mu.Unlock()
	l.Lock()
	return l.Unlock
}
