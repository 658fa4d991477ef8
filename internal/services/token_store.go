package services

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// TokenStore maps issued bearer tokens to user ids. It is constructed once by
// the application and injected into whatever needs it.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]int
}

// NewTokenStore creates an empty token store
func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]int)}
}

// Issue creates a fresh random token for userID.
func (s *TokenStore) Issue(userID int) string {
	token := uuid.NewString()

	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()

	return token
}

// Lookup returns the user id a token was issued to.
func (s *TokenStore) Lookup(token string) (int, bool) {
	if strings.TrimSpace(token) == "" {
		return 0, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tokens[token]
	return id, ok
}

// Revoke forgets a token. It reports whether the token was known.
func (s *TokenStore) Revoke(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[token]; !ok {
		return false
	}
	delete(s.tokens, token)
	return true
}

// Len returns the number of live tokens
func (s *TokenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
