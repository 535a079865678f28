// Package auth owns the client-side session lifecycle: login, register,
// logout, and restoring a persisted session on startup.
package auth

import (
	"context"
	"sync"

	"invdesk/internal/api"
	"invdesk/internal/model"
	"invdesk/internal/session"
	"invdesk/internal/validate"
)

type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

type Manager struct {
	api   *api.Client
	store session.Store

	mu    sync.Mutex
	state State
	user  *model.User
}

// New restores a persisted session if one exists. A partial session
// (any entry missing or unparseable) is discarded rather than trusted.
func New(client *api.Client, store session.Store) *Manager {
	m := &Manager{api: client, store: store}
	if sess, ok := store.Snapshot(); ok {
		m.state = Authenticated
		m.user = sess.User
	} else {
		_ = store.Clear()
	}
	return m
}

type loginResponse struct {
	User         model.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

func (m *Manager) Login(ctx context.Context, email, password string) (*model.User, error) {
	v := validate.New()
	v.Require("email", email, "Email")
	v.Email("email", email)
	v.Require("password", password, "Password")
	if err := v.Err(); err != nil {
		return nil, err
	}

	m.setState(Authenticating, nil)

	var res loginResponse
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	if err := m.api.Post(ctx, "/auth/login", body, &res); err != nil {
		m.setState(Unauthenticated, nil)
		return nil, err
	}

	if err := m.store.Set(session.Session{
		User:         &res.User,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	}); err != nil {
		m.setState(Unauthenticated, nil)
		return nil, err
	}

	m.setState(Authenticated, &res.User)
	return &res.User, nil
}

type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register creates an account. It never transitions session state; the
// caller navigates to login separately.
func (m *Manager) Register(ctx context.Context, in RegisterInput) error {
	v := validate.New()
	v.Require("name", in.Name, "Name")
	v.Require("email", in.Email, "Email")
	v.Email("email", in.Email)
	v.Mobile("phoneNumber", in.PhoneNumber)
	v.Require("password", in.Password, "Password")
	v.MinLen("password", in.Password, 6, "Password")
	v.Check(in.Password == in.ConfirmPassword, "confirmPassword", "Passwords do not match")
	if err := v.Err(); err != nil {
		return err
	}

	return m.api.Post(ctx, "/auth/register", in, nil)
}

// Logout clears the local session. No server call is made.
func (m *Manager) Logout() error {
	err := m.store.Clear()
	m.setState(Unauthenticated, nil)
	return err
}

// Invalidate drops the in-memory session state after the API client has
// cleared the store on an unrecoverable refresh failure.
func (m *Manager) Invalidate() {
	m.setState(Unauthenticated, nil)
}

func (m *Manager) User() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) Authenticated() bool {
	return m.State() == Authenticated
}

func (m *Manager) setState(s State, u *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
	m.user = u
}
