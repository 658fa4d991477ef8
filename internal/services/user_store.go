package services

import (
	"sync"
)

// User is a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash []byte `json:"-"`
}

// UserStore keeps accounts in memory, keyed by username.
type UserStore struct {
	mu     sync.RWMutex
	nextID int
	byName map[string]*User
	byID   map[int]*User
}

// NewUserStore creates an empty store
func NewUserStore() *UserStore {
	return &UserStore{
		byName: make(map[string]*User),
		byID:   make(map[int]*User),
	}
}

// Create stores a new user and assigns its id. A taken username yields
// ErrUsernameTaken.
func (s *UserStore) Create(username string, passwordHash []byte) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[username]; exists {
		return User{}, ErrUsernameTaken
	}

	s.nextID++
	u := &User{ID: s.nextID, Username: username, PasswordHash: passwordHash}
	s.byName[username] = u
	s.byID[u.ID] = u
	return *u, nil
}

// FindByUsername looks a user up by name.
func (s *UserStore) FindByUsername(username string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byName[username]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// FindByID looks a user up by id.
func (s *UserStore) FindByID(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// UpdateEmail sets the email of user id.
func (s *UserStore) UpdateEmail(id int, email string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, false
	}
	u.Email = email
	return *u, true
}
