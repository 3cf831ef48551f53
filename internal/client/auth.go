package client

import (
	"context"
	"errors"
	"sync"

	"github.com/01moynul/marketpro-admin/internal/models"
)

type AuthState int

const (
	LoggedOut AuthState = iota
	Pending
	LoggedIn
)

func (s AuthState) String() string {
	switch s {
	case Pending:
		return "pending"
	case LoggedIn:
		return "logged-in"
	default:
		return "logged-out"
	}
}

var ErrLoginInProgress = errors.New("login already in progress")

// Auth tracks the login lifecycle:
//
//	LoggedOut --Login--> Pending --ok--> LoggedIn
//	                     Pending --fail--> LoggedOut (Err set)
//	LoggedIn --401 or Logout--> LoggedOut
type Auth struct {
	client *Client

	mu    sync.Mutex
	state AuthState
	user  models.User
	err   error
}

// NewAuth starts LoggedIn when the session already holds a usable token.
func NewAuth(c *Client) *Auth {
	a := &Auth{client: c}
	if stored, ok := c.session.User(); ok {
		if _, valid := c.session.CurrentToken(); valid {
			a.state = LoggedIn
			a.user = stored.User
		}
	}
	c.session.OnExpiry(a.expired)
	return a
}

func (a *Auth) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Err is the reason the last login failed, if it did.
func (a *Auth) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

func (a *Auth) User() models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

// Login submits credentials. On success the token is persisted.
func (a *Auth) Login(ctx context.Context, usernameOrEmail, password string) error {
	a.mu.Lock()
	if a.state == Pending {
		a.mu.Unlock()
		return ErrLoginInProgress
	}
	a.state = Pending
	a.err = nil
	a.mu.Unlock()

	res, err := a.client.Login(ctx, usernameOrEmail, password)
	if err == nil {
		err = a.client.session.Save(StoredAuth{User: res.User, Token: res.Token})
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state = LoggedOut
		a.user = models.User{}
		a.err = err
		return err
	}
	a.state = LoggedIn
	a.user = res.User
	return nil
}

func (a *Auth) Logout() error {
	a.mu.Lock()
	a.state = LoggedOut
	a.user = models.User{}
	a.err = nil
	a.mu.Unlock()
	return a.client.session.Clear()
}

func (a *Auth) expired() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == Pending {
		return
	}
	a.state = LoggedOut
	a.user = models.User{}
}
