package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store hands out one cart per session. Sessions never share a cart; the
// lock only protects the registry itself.
type Store struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*Cart)}
}

// Get returns the session's cart, creating an empty one on first use.
func (s *Store) Get(sessionID uuid.UUID) *Cart {

	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()

	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[sessionID]; ok {
		return c
	}

	c = New()
	s.carts[sessionID] = c

	return c
}

// Drop discards a session's cart, ending its lifetime.
func (s *Store) Drop(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}
