package app

import (
	"sync"

	"settlers/internal/domain"
)

// Store owns every live session. Each entry carries its own mutex so
// actions against the same session are applied one at a time in
// acceptance order, while different sessions never contend.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*storeEntry
}

type storeEntry struct {
	mu      sync.Mutex
	session *domain.Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*storeEntry)}
}

// Put registers a session under its id.
func (st *Store) Put(sess *domain.Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.entries[sess.ID] = &storeEntry{session: sess}
}

// Do runs fn with exclusive access to the named session. Fn observes no
// partially applied prior action. Returns session_not_found when the
// session does not exist or was torn down.
func (st *Store) Do(id string, fn func(*domain.Session) ([]Event, error)) ([]Event, error) {
	st.mu.RLock()
	e, ok := st.entries[id]
	st.mu.RUnlock()
	if !ok {
		return nil, domain.NewRuleError(domain.KindSessionNotFound, "session %s not found", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// The entry may have been deleted between lookup and lock.
	st.mu.RLock()
	_, ok = st.entries[id]
	st.mu.RUnlock()
	if !ok {
		return nil, domain.NewRuleError(domain.KindSessionNotFound, "session %s not found", id)
	}

	return fn(e.session)
}

// Delete removes a session. Further actions against it fail with
// session_not_found.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.entries, id)
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.entries)
}
