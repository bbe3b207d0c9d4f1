package dayindex

import (
	"sync"
)

// keyedMutex serializes mutations per item uid. A move is two storage
// writes (registry, then index); without per-item serialization two
// concurrent moves on the same item could interleave those writes.
// Locks are retained for the life of the process; the map is bounded by
// the number of distinct items mutated.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for the given key and returns its unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
