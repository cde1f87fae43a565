package syncs

import "sync"

// KeyLocker provides per-key mutual exclusion.
// See [KeyLock] for an implementation.
type KeyLocker interface {
	Lock(key string)
	Unlock(key string)
}

// KeyLock is a per-key mutex that allows independent keys to be locked
// concurrently while serializing access to the same key. Entries are dropped
// once no goroutine holds or waits on them. The zero value is ready to use.
type KeyLock struct {
	locks map[string]*keyEntry
	mu    sync.Mutex
}

type keyEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyLock creates a new [KeyLock].
func NewKeyLock() *KeyLock {
	return &KeyLock{
		locks: make(map[string]*keyEntry),
	}
}

// Lock acquires the mutex for the given key, blocking if it is already held.
func (kl *KeyLock) Lock(key string) {
	kl.mu.Lock()

	if kl.locks == nil {
		kl.locks = make(map[string]*keyEntry)
	}

	e, ok := kl.locks[key]
	if !ok {
		e = &keyEntry{}
		kl.locks[key] = e
	}

	e.refs++
	kl.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for the given key. Unlocking a key that is not
// locked panics, as for [sync.Mutex].
func (kl *KeyLock) Unlock(key string) {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	e, ok := kl.locks[key]
	if !ok {
		panic("syncs: unlock of unlocked key " + key)
	}

	e.refs--
	if e.refs == 0 {
		delete(kl.locks, key)
	}

	e.mu.Unlock()
}

// Len returns the number of keys currently held or waited on.
func (kl *KeyLock) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	return len(kl.locks)
}
