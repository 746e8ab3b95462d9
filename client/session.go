package client

import (
	"sync"

	"travel-booking/models"
)

// Session holds the bearer token and the identity of the logged-in user. It
// is passed explicitly to New; nothing in this package keeps a global one.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

func NewSession() *Session {
	return &Session{}
}

// NewSessionWithToken restores a session persisted by the caller.
func NewSessionWithToken(token string, user models.User) *Session {
	s := &Session{}
	s.Set(token, user)
	return s
}

func (s *Session) Set(token string, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	u := user
	s.user = &u
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

func (s *Session) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.Role == models.RoleAdmin
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}
