package services

import (
	"sync"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

// SessionState holds the signed-in session in memory. It is the token
// source of the HTTP transport, so it exists before anyone logs in.
type SessionState struct {
	mu      sync.RWMutex
	session *models.Session
}

func NewSessionState() *SessionState {
	return &SessionState{}
}

// AccessToken returns the bearer token, or "" when signed out.
func (s *SessionState) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// Current returns a copy of the session, or nil.
func (s *SessionState) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

func (s *SessionState) Set(session models.Session) {
	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()
}

func (s *SessionState) Clear() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}
