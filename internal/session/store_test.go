package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/klasora/console-go/internal/models"
	appErrors "github.com/klasora/console-go/pkg/errors"
)

// fakeBackend counts calls and scripts outcomes per operation.
type fakeBackend struct {
	mu sync.Mutex

	user        *models.User
	credentials bool

	loginErr   error
	fetchErrs  []error // consumed in order; nil entry means success
	refreshErr error

	loginCalls   int
	fetchCalls   int
	refreshCalls int
	discardCalls int
}

func (f *fakeBackend) Login(_ context.Context, _, _ string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.credentials = true
	return f.user, nil
}

func (f *fakeBackend) FetchUser(_ context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if len(f.fetchErrs) > 0 {
		err := f.fetchErrs[0]
		f.fetchErrs = f.fetchErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.user, nil
}

func (f *fakeBackend) Refresh(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	return f.refreshErr
}

func (f *fakeBackend) HasCredentials() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.credentials
}

func (f *fakeBackend) Discard() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discardCalls++
	f.credentials = false
}

func testUser() *models.User {
	return &models.User{ID: "u-1", Email: "admin@greenwood.school", FullName: "Greenwood Administrator", Role: models.RoleAdmin, Active: true}
}

func TestLoginSuccess(t *testing.T) {
	backend := &fakeBackend{user: testUser()}
	store := New(backend, zap.NewNop())

	var notified int
	unsubscribe := store.Subscribe(func() { notified++ })
	defer unsubscribe()

	err := store.Login(context.Background(), "admin@greenwood.school", "password123")
	require.NoError(t, err)

	assert.True(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())
	assert.Empty(t, store.Err())
	assert.Equal(t, "u-1", store.User().ID)
	assert.Positive(t, notified)
}

func TestLoginValidation(t *testing.T) {
	backend := &fakeBackend{user: testUser()}
	store := New(backend, zap.NewNop())

	err := store.Login(context.Background(), "not-an-email", "password123")
	require.Error(t, err)
	assert.Equal(t, 0, backend.loginCalls, "backend never sees an invalid request")
	assert.NotEmpty(t, store.Err())

	err = store.Login(context.Background(), "admin@greenwood.school", "")
	require.Error(t, err)
	assert.Equal(t, 0, backend.loginCalls)
}

func TestLoginFailureLeavesNoState(t *testing.T) {
	backend := &fakeBackend{loginErr: appErrors.ErrInvalidCredentials}
	store := New(backend, zap.NewNop())

	err := store.Login(context.Background(), "admin@greenwood.school", "wrongpassword")
	require.Error(t, err)

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
	assert.False(t, store.IsLoading())
	assert.Equal(t, appErrors.ErrInvalidCredentials.Message, store.Err())
	assert.Equal(t, 1, backend.discardCalls, "failed login discards credentials")
}

func TestLogoutIdempotent(t *testing.T) {
	backend := &fakeBackend{user: testUser()}
	store := New(backend, zap.NewNop())
	require.NoError(t, store.Login(context.Background(), "admin@greenwood.school", "password123"))

	store.Logout()
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Err())

	store.Logout()
	store.Logout()
	assert.False(t, store.IsAuthenticated())
}

func TestBootstrapNoCredentials(t *testing.T) {
	backend := &fakeBackend{}
	store := New(backend, zap.NewNop())

	store.Bootstrap(context.Background())

	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())
	assert.Equal(t, 0, backend.fetchCalls)
	assert.Equal(t, 0, backend.refreshCalls)
}

func TestBootstrapValidCredentials(t *testing.T) {
	backend := &fakeBackend{user: testUser(), credentials: true}
	store := New(backend, zap.NewNop())

	store.Bootstrap(context.Background())

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, 1, backend.fetchCalls)
	assert.Equal(t, 0, backend.refreshCalls, "a clean fetch never refreshes")
}

func TestBootstrapExpiredTokenRefreshes(t *testing.T) {
	backend := &fakeBackend{
		user:        testUser(),
		credentials: true,
		fetchErrs:   []error{appErrors.ErrUnauthorized, nil},
	}
	store := New(backend, zap.NewNop())

	store.Bootstrap(context.Background())

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, 2, backend.fetchCalls)
	assert.Equal(t, 1, backend.refreshCalls)
}

func TestBootstrapDeadCredentialsClear(t *testing.T) {
	backend := &fakeBackend{
		user:        testUser(),
		credentials: true,
		fetchErrs:   []error{appErrors.ErrUnauthorized, appErrors.ErrUnauthorized},
	}
	store := New(backend, zap.NewNop())

	store.Bootstrap(context.Background())

	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())
	assert.Equal(t, 2, backend.fetchCalls)
	assert.Equal(t, 1, backend.refreshCalls)
	assert.Equal(t, 1, backend.discardCalls)
}

func TestBootstrapRefreshFailsClears(t *testing.T) {
	backend := &fakeBackend{
		user:        testUser(),
		credentials: true,
		fetchErrs:   []error{appErrors.ErrUnauthorized},
		refreshErr:  appErrors.ErrUnauthorized,
	}
	store := New(backend, zap.NewNop())

	store.Bootstrap(context.Background())

	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, 1, backend.fetchCalls, "no retry fetch after a failed refresh")
	assert.Equal(t, 1, backend.refreshCalls)
	assert.Equal(t, 1, backend.discardCalls)
}

func TestBootstrapRunsOnce(t *testing.T) {
	backend := &fakeBackend{user: testUser(), credentials: true}
	store := New(backend, zap.NewNop())

	store.Bootstrap(context.Background())
	store.Bootstrap(context.Background())
	store.Bootstrap(context.Background())

	assert.Equal(t, 1, backend.fetchCalls)
}

func TestRefreshTokenSuccess(t *testing.T) {
	backend := &fakeBackend{user: testUser(), credentials: true}
	store := New(backend, zap.NewNop())

	ok := store.RefreshToken(context.Background())
	assert.True(t, ok)
	assert.Equal(t, 1, backend.refreshCalls)
	assert.Equal(t, 1, backend.fetchCalls, "profile re-fetched after refresh")
	assert.True(t, store.IsAuthenticated())
}

func TestRefreshTokenProfileFetchFailureKeepsSession(t *testing.T) {
	backend := &fakeBackend{
		user:        testUser(),
		credentials: true,
		fetchErrs:   []error{appErrors.ErrNetwork},
	}
	store := New(backend, zap.NewNop())

	ok := store.RefreshToken(context.Background())
	assert.True(t, ok, "a refresh that succeeded is not undone by a flaky profile fetch")
	assert.Equal(t, 0, backend.discardCalls)
}

func TestRefreshTokenFailureLogsOut(t *testing.T) {
	backend := &fakeBackend{user: testUser(), credentials: true, refreshErr: appErrors.ErrUnauthorized}
	store := New(backend, zap.NewNop())
	require.NoError(t, store.Login(context.Background(), "admin@greenwood.school", "password123"))

	ok := store.RefreshToken(context.Background())
	assert.False(t, ok)
	assert.False(t, store.IsAuthenticated())
	assert.Positive(t, backend.discardCalls)
}

func TestHandleUnauthorizedForcesLogout(t *testing.T) {
	backend := &fakeBackend{user: testUser()}
	store := New(backend, zap.NewNop())
	require.NoError(t, store.Login(context.Background(), "admin@greenwood.school", "password123"))

	store.HandleUnauthorized()
	assert.False(t, store.IsAuthenticated())

	// Concurrent invocations converge on the same cleared state.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.HandleUnauthorized()
		}()
	}
	wg.Wait()
	assert.False(t, store.IsAuthenticated())
}

func TestClearError(t *testing.T) {
	backend := &fakeBackend{loginErr: appErrors.ErrInvalidCredentials}
	store := New(backend, zap.NewNop())

	_ = store.Login(context.Background(), "admin@greenwood.school", "wrongpassword")
	require.NotEmpty(t, store.Err())

	store.ClearError()
	assert.Empty(t, store.Err())
}

func TestUserReturnsCopy(t *testing.T) {
	backend := &fakeBackend{user: testUser()}
	store := New(backend, zap.NewNop())
	require.NoError(t, store.Login(context.Background(), "admin@greenwood.school", "password123"))

	first := store.User()
	first.FullName = "mutated"
	assert.Equal(t, "Greenwood Administrator", store.User().FullName)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	backend := &fakeBackend{user: testUser()}
	store := New(backend, zap.NewNop())

	var calls int
	unsubscribe := store.Subscribe(func() { calls++ })
	store.ClearError()
	require.Positive(t, calls)

	before := calls
	unsubscribe()
	store.ClearError()
	assert.Equal(t, before, calls)
}
