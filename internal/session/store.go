// Package session owns the authenticated user's identity and the token
// lifecycle around it. Pages (and the CLI) are read-only consumers; every
// mutation goes through the store's own operations.
package session

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/klasora/console-go/internal/models"
	appErrors "github.com/klasora/console-go/pkg/errors"
)

// Backend abstracts the authentication collaborator so the production
// HTTP path and the demo fixture path stay provably independent.
type Backend interface {
	// Login authenticates and leaves credentials in place on success.
	// A failed login must retain no credentials.
	Login(ctx context.Context, email, password string) (*models.User, error)
	// FetchUser resolves the current identity from stored credentials.
	FetchUser(ctx context.Context) (*models.User, error)
	// Refresh exchanges the refresh credential for a fresh one.
	Refresh(ctx context.Context) error
	// HasCredentials reports whether stored credentials exist.
	HasCredentials() bool
	// Discard drops all stored credentials.
	Discard()
}

// Store is the process-wide session state container.
type Store struct {
	backend  Backend
	logger   *zap.Logger
	validate *validator.Validate

	mu      sync.Mutex
	user    *models.User
	loading bool
	errMsg  string

	bootstrapOnce sync.Once

	listenerMu sync.Mutex
	listeners  map[int]func()
	listenerID int
}

// New constructs a Store over the given backend.
func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend:   backend,
		logger:    logger,
		validate:  validator.New(),
		listeners: make(map[int]func()),
	}
}

// Subscribe registers a listener invoked after every state transition.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	s.listenerID++
	id := s.listenerID
	s.listeners[id] = fn
	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify() {
	s.listenerMu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenerMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// User returns a copy of the authenticated user, or nil.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// IsAuthenticated derives from user presence.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// IsLoading reports whether a store operation is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last user-displayable error message, if any.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// ClearError clears only the last error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

// Login authenticates with the backend, publishes the resulting user, and
// re-raises failures so the calling form can react. A failed attempt
// leaves no partial state.
func (s *Store) Login(ctx context.Context, email, password string) error {
	req := models.LoginRequest{Email: email, Password: password}
	if err := s.validate.Struct(req); err != nil {
		vErr := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "enter a valid email and password")
		s.setError(vErr.Message)
		return vErr
	}

	s.setLoading(true)

	user, err := s.backend.Login(ctx, email, password)
	if err != nil {
		s.backend.Discard()
		s.mu.Lock()
		s.user = nil
		s.loading = false
		s.errMsg = appErrors.FromError(err).Message
		s.mu.Unlock()
		s.notify()
		return err
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()

	s.logger.Info("logged in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return nil
}

// Logout clears the in-memory user, the last error, and any stored
// credentials. Idempotent.
func (s *Store) Logout() {
	s.backend.Discard()

	s.mu.Lock()
	wasAuthenticated := s.user != nil
	s.user = nil
	s.errMsg = ""
	s.loading = false
	s.mu.Unlock()
	s.notify()

	if wasAuthenticated {
		s.logger.Info("logged out")
	}
}

// RefreshToken exchanges the refresh credential for a new access token.
// On success the profile is re-fetched best-effort; a profile fetch
// failure does not undo the successful refresh. On failure the session is
// terminated.
func (s *Store) RefreshToken(ctx context.Context) bool {
	if err := s.backend.Refresh(ctx); err != nil {
		s.logger.Warn("token refresh failed", zap.Error(err))
		s.forceLogout()
		return false
	}

	user, err := s.backend.FetchUser(ctx)
	if err != nil {
		s.logger.Warn("profile re-fetch after refresh failed", zap.Error(err))
		return true
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.notify()
	return true
}

// Bootstrap runs the startup identity check exactly once per store
// instance: stored credentials are resolved to a user, with exactly one
// refresh-and-retry if the first fetch fails. Further calls are no-ops.
func (s *Store) Bootstrap(ctx context.Context) {
	s.bootstrapOnce.Do(func() {
		s.bootstrap(ctx)
	})
}

func (s *Store) bootstrap(ctx context.Context) {
	if !s.backend.HasCredentials() {
		s.setLoading(false)
		return
	}

	s.setLoading(true)

	user, err := s.backend.FetchUser(ctx)
	if err == nil {
		s.mu.Lock()
		s.user = user
		s.loading = false
		s.mu.Unlock()
		s.notify()
		return
	}

	s.logger.Info("stored credentials rejected, attempting refresh", zap.Error(err))

	if refreshErr := s.backend.Refresh(ctx); refreshErr == nil {
		if user, err = s.backend.FetchUser(ctx); err == nil {
			s.mu.Lock()
			s.user = user
			s.loading = false
			s.mu.Unlock()
			s.notify()
			return
		}
	}

	s.backend.Discard()
	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

// HandleUnauthorized is wired as the HTTP client's unauthorized callback.
// An unrecoverable 401 anywhere forces the logged-out state. Concurrent
// invocations race benignly: last writer wins and every path converges on
// the same cleared state.
func (s *Store) HandleUnauthorized() {
	s.forceLogout()
}

func (s *Store) forceLogout() {
	s.backend.Discard()

	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.notify()
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
	s.notify()
}
