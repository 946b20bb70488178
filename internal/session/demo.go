package session

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/klasora/console-go/internal/models"
	appErrors "github.com/klasora/console-go/pkg/errors"
)

// minDemoPasswordLen is the only credential check the fixture path makes.
const minDemoPasswordLen = 8

// demoBackend substitutes a fixed local user set for the real
// authentication backend, for environments without a live server. It
// never touches the network and persists the picked user under its own
// file, mutually exclusive with the real-token path.
type demoBackend struct {
	fixturePath string
	users       map[string]models.User

	mu sync.Mutex
}

// NewDemoBackend builds the fixture backend. A nil user set installs the
// default demo roster, one account per role.
func NewDemoBackend(fixturePath string, users map[string]models.User) Backend {
	if users == nil {
		users = defaultDemoUsers()
	}
	return &demoBackend{fixturePath: fixturePath, users: users}
}

func defaultDemoUsers() map[string]models.User {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	roster := []models.User{
		{ID: "demo-super", Email: "super@demo.school", FullName: "Demo Super Admin", Role: models.RoleSuperAdmin, Active: true, CreatedAt: now},
		{ID: "demo-admin", Email: "admin@demo.school", FullName: "Demo Administrator", Role: models.RoleAdmin, Active: true, TenantID: "demo-tenant", CreatedAt: now},
		{ID: "demo-teacher", Email: "teacher@demo.school", FullName: "Demo Teacher", Role: models.RoleTeacher, Active: true, TenantID: "demo-tenant", CreatedAt: now},
		{ID: "demo-student", Email: "student@demo.school", FullName: "Demo Student", Role: models.RoleStudent, Active: true, TenantID: "demo-tenant", CreatedAt: now},
		{ID: "demo-parent", Email: "parent@demo.school", FullName: "Demo Parent", Role: models.RoleParent, Active: true, TenantID: "demo-tenant", CreatedAt: now},
	}
	users := make(map[string]models.User, len(roster))
	for _, u := range roster {
		users[u.Email] = u
	}
	return users
}

func (b *demoBackend) Login(_ context.Context, email, password string) (*models.User, error) {
	if len(password) < minDemoPasswordLen {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "demo passwords need at least 8 characters")
	}

	user, ok := b.users[email]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrDemoUserUnknown, "")
	}

	if err := b.persist(&user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist demo user")
	}
	return &user, nil
}

func (b *demoBackend) FetchUser(_ context.Context) (*models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.fixturePath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "no demo session")
	}
	user := &models.User{}
	if err := json.Unmarshal(data, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt demo fixture")
	}
	return user, nil
}

// Refresh is a no-op in demo mode; the fixture never expires.
func (b *demoBackend) Refresh(_ context.Context) error {
	if !b.HasCredentials() {
		return appErrors.Clone(appErrors.ErrUnauthorized, "no demo session")
	}
	return nil
}

func (b *demoBackend) HasCredentials() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := os.Stat(b.fixturePath)
	return err == nil
}

func (b *demoBackend) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()

	_ = os.Remove(b.fixturePath)
}

func (b *demoBackend) persist(user *models.User) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(b.fixturePath, data, 0o600)
}
