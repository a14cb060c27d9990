package session

import "sync"

// Store holds the bearer credential for the current session. Login sets it,
// logout or expiry clears it; every network-calling component reads it and
// fails closed when it is absent.
type Store struct {
	mu    sync.RWMutex
	token string
}

func NewStore() *Store {
	return &Store{}
}

// Set replaces the held credential
func (s *Store) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear drops the held credential
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Token returns the credential and whether one is held
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// IsValid reports whether a credential is held
func (s *Store) IsValid() bool {
	_, ok := s.Token()
	return ok
}
