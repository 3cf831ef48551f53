package client

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session owns the persisted token. The token is decoded locally to read its
// expiry; the signature is the server's business.
type Session struct {
	store TokenStore
	now   func() time.Time

	mu       sync.Mutex
	onExpiry []func()
}

func NewSession(store TokenStore) *Session {
	return &Session{store: store, now: time.Now}
}

// CurrentToken returns the stored token if there is one and it has not
// expired. An expired token is reported as absent but left in the store.
func (s *Session) CurrentToken() (string, bool) {
	a, ok, err := s.store.Load()
	if err != nil || !ok {
		return "", false
	}
	if !s.IsValid(a.Token) {
		return "", false
	}
	return a.Token, true
}

// User returns the user saved with the current login.
func (s *Session) User() (StoredAuth, bool) {
	a, ok, err := s.store.Load()
	if err != nil || !ok {
		return StoredAuth{}, false
	}
	return a, true
}

// IsValid decodes the token without verifying it and checks the exp claim.
// Tokens without exp are treated as valid.
func (s *Session) IsValid(token string) bool {
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if exp == nil {
		return true
	}
	return s.now().Before(exp.Time)
}

func (s *Session) Save(a StoredAuth) error {
	return s.store.Save(a)
}

// OnExpiry registers fn to run whenever the session is expired.
func (s *Session) OnExpiry(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpiry = append(s.onExpiry, fn)
}

// Expire clears the stored token and notifies listeners.
func (s *Session) Expire() error {
	err := s.store.Clear()

	s.mu.Lock()
	listeners := append([]func(){}, s.onExpiry...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return err
}

// Clear removes the stored token without firing expiry listeners.
func (s *Session) Clear() error {
	return s.store.Clear()
}
