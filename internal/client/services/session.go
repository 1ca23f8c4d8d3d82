package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/kycreview/internal/client/client"
	"github.com/dmitrijs2005/kycreview/internal/client/models"
	"github.com/dmitrijs2005/kycreview/internal/logging"
)

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	Load(ctx context.Context) (token, username string, err error)
	Save(ctx context.Context, token, username string) error
	Clear(ctx context.Context) error
}

// SessionManager owns the reviewer's credentials and authentication flag.
//
// Protected calls authenticate with HTTP Basic built from the retained
// credentials. The bearer token from login is persisted and exposed for
// display only.
type SessionManager struct {
	changeHook

	client   client.Client
	store    TokenStore
	notifier *Notifier
	log      logging.Logger

	mu            sync.RWMutex
	creds         models.Credentials
	authenticated bool
	token         string
	lastUsername  string
	signOutHooks  []func()
}

func NewSessionManager(c client.Client, store TokenStore, n *Notifier, log logging.Logger) *SessionManager {
	return &SessionManager{client: c, store: store, notifier: n, log: log}
}

// Init seeds the token from storage. A stored token never authenticates.
func (s *SessionManager) Init(ctx context.Context) error {
	token, username, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.lastUsername = username
	s.mu.Unlock()

	s.fire()
	return nil
}

// OnSignOut registers fn to run whenever the session ends, by logout or by
// expiry.
func (s *SessionManager) OnSignOut(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signOutHooks = append(s.signOutHooks, fn)
}

// Login exchanges credentials for a token. A failed attempt leaves the
// current state untouched.
func (s *SessionManager) Login(ctx context.Context, username, password string) (models.Session, error) {
	resp, err := s.client.Login(ctx, username, password)
	switch {
	case errors.Is(err, client.ErrInvalidCredentials):
		s.log.Info(ctx, "login rejected", "username", username)
		s.notifier.Push(models.NotificationError, msgInvalidCredentials)
		return s.Session(), err
	case err != nil:
		s.log.Warn(ctx, "login failed", "username", username, "error", err)
		s.notifier.Push(models.NotificationError, msgLoginFailed)
		if errors.Is(err, client.ErrAuthFailure) {
			return s.Session(), err
		}
		return s.Session(), fmt.Errorf("%w: %w", client.ErrAuthFailure, err)
	case resp.AccessToken == "":
		s.log.Warn(ctx, "login response carries no access token", "username", username)
		s.notifier.Push(models.NotificationError, msgLoginFailed)
		return s.Session(), fmt.Errorf("%w: missing access token", client.ErrAuthFailure)
	}

	if err := s.store.Save(ctx, resp.AccessToken, username); err != nil {
		s.log.Error(ctx, "failed to persist access token", "error", err)
	}

	s.mu.Lock()
	s.creds = models.Credentials{Username: username, Password: password}
	s.authenticated = true
	s.token = resp.AccessToken
	s.lastUsername = username
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "username", username, "role", resp.Role)
	s.notifier.Push(models.NotificationSuccess, msgLoginSuccess)
	s.fire()
	return s.Session(), nil
}

// Logout ends the session. Storage errors are logged, never returned.
func (s *SessionManager) Logout(ctx context.Context) {
	s.signOut(ctx)
	s.log.Info(ctx, "logged out")
	s.notifier.Push(models.NotificationInfo, msgLoggedOut)
}

// Expire is the shared reaction to a 401 on a protected call. Only the call
// that actually ends an authenticated session raises the notification.
func (s *SessionManager) Expire(ctx context.Context) {
	if !s.signOut(ctx) {
		return
	}
	s.log.Warn(ctx, "session expired")
	s.notifier.Push(models.NotificationError, msgSessionExpired)
}

func (s *SessionManager) signOut(ctx context.Context) bool {
	s.mu.Lock()
	was := s.authenticated
	s.creds = models.Credentials{}
	s.authenticated = false
	s.token = ""
	hooks := make([]func(), len(s.signOutHooks))
	copy(hooks, s.signOutHooks)
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear stored token", "error", err)
	}
	for _, fn := range hooks {
		fn()
	}

	s.fire()
	return was
}

// AuthorizationHeader returns the Basic authorization value for protected
// calls, or "" when not authenticated.
func (s *SessionManager) AuthorizationHeader() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.authenticated || s.creds.Empty() {
		return ""
	}
	raw := s.creds.Username + ":" + s.creds.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

func (s *SessionManager) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Session returns the current derived state.
func (s *SessionManager) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Session{Authenticated: s.authenticated, Username: s.creds.Username, Token: s.token}
}

// LastUsername is the username of the most recent login, kept across
// logouts and restarts to prefill the login prompt.
func (s *SessionManager) LastUsername() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUsername
}
