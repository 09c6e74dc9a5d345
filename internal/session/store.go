// Package session tracks live MCP client sessions so the serving layer
// can report and bound them without reaching into transport internals.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Info describes one connected client session.
type Info struct {
	ID          string
	ConnectedAt time.Time
}

// Store is a concurrency-safe registry of active sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Info
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]Info)}
}

// Add registers a session and returns its record. An empty id gets a
// generated one; stdio transports do not assign session ids.
func (s *Store) Add(id string) Info {
	if id == "" {
		id = uuid.NewString()
	}
	info := Info{ID: id, ConnectedAt: time.Now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = info
	return info
}

// Remove deletes a session. Removing an unknown id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Get returns the session record for id.
func (s *Store) Get(id string) (Info, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.sessions[id]
	return info, ok
}

// Count returns the number of active sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// List returns all active sessions ordered by connect time.
func (s *Store) List() []Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]Info, 0, len(s.sessions))
	for _, info := range s.sessions {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].ConnectedAt.Equal(infos[j].ConnectedAt) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].ConnectedAt.Before(infos[j].ConnectedAt)
	})
	return infos
}
