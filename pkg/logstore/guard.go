package logstore

import "sync"

// Guard serializes all access to a Store behind one mutex.
type Guard struct {
	mu    sync.Mutex
	store *Store
}

// NewGuard wraps store. A nil store is replaced with an empty one.
func NewGuard(store *Store) *Guard {
	if store == nil {
		store = New()
	}
	return &Guard{store: store}
}

// Do runs fn with exclusive access to the store. The lock is released when fn
// returns or panics; fn must not retain the *Store after returning.
func (g *Guard) Do(fn func(*Store) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.store)
}
