package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
	appErrors "github.com/klasora/console-go/pkg/errors"
)

// Options configures a tenant Store.
type Options struct {
	Client   *api.Client
	Logger   *zap.Logger
	Reserved []string
	// Override pins the slug regardless of the page URL (local development).
	Override string
}

// Store loads and owns the active tenant's profile and settings. The load
// runs once per Store; pages consume it read-only and mutate settings only
// through UpdateSettings.
type Store struct {
	client   *api.Client
	logger   *zap.Logger
	reserved []string
	override string

	mu       sync.Mutex
	pageURL  string
	tenant   *models.Tenant
	settings models.TenantSettings
	loading  bool
	errMsg   string

	initOnce sync.Once

	listenerMu sync.Mutex
	listeners  map[int]func()
	listenerID int
}

// NewStore constructs a Store.
func NewStore(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client:    opts.Client,
		logger:    logger,
		reserved:  opts.Reserved,
		override:  opts.Override,
		settings:  models.TenantSettings{},
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

// Tenant returns a copy of the loaded tenant, or nil.
func (s *Store) Tenant() *models.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tenant == nil {
		return nil
	}
	copied := *s.tenant
	return &copied
}

// Settings returns a copy of the current settings map.
func (s *Store) Settings() models.TenantSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Merge(nil)
}

// IsLoading reports whether a fetch is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last load error message, if any.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Slug returns the resolved tenant slug, empty when none applies.
func (s *Store) Slug() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolvedSlug()
}

// resolvedSlug must be called with s.mu held.
func (s *Store) resolvedSlug() string {
	if s.override != "" {
		return s.override
	}
	slug, ok := ResolveSlug(s.pageURL, s.reserved)
	if !ok {
		return ""
	}
	return slug
}

// Init resolves the slug from pageURL and fetches the tenant exactly once
// per Store instance. When no slug resolves, the store finishes in an
// unloaded, not-an-error state: the main domain renders without a tenant.
func (s *Store) Init(ctx context.Context, pageURL string) {
	s.initOnce.Do(func() {
		s.mu.Lock()
		s.pageURL = pageURL
		s.mu.Unlock()
		s.load(ctx)
	})
}

// Refetch re-runs the same resolution and fetch, for recovering from a
// transient failure.
func (s *Store) Refetch(ctx context.Context) {
	s.load(ctx)
}

func (s *Store) load(ctx context.Context) {
	s.mu.Lock()
	slug := s.resolvedSlug()
	if slug == "" {
		s.tenant = nil
		s.loading = false
		s.errMsg = ""
		s.mu.Unlock()
		s.notify()
		return
	}
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()

	profile := &models.TenantProfile{}
	_, err := s.client.Do(ctx, http.MethodGet, "/api/tenants/"+url.PathEscape(slug), nil, nil, profile)

	s.mu.Lock()
	defer func() {
		s.mu.Unlock()
		s.notify()
	}()

	s.loading = false
	if err != nil {
		s.tenant = nil
		var typed *appErrors.Error
		if errors.As(err, &typed) && typed.Status == http.StatusNotFound {
			s.errMsg = appErrors.ErrTenantNotFound.Message
		} else {
			s.errMsg = appErrors.ErrTenantLoadFailed.Message
		}
		s.logger.Warn("tenant load failed", zap.String("slug", slug), zap.Error(err))
		return
	}

	tenant := profile.Tenant
	s.tenant = &tenant
	if profile.Settings != nil {
		s.settings = profile.Settings
	} else {
		s.settings = models.TenantSettings{}
	}
	s.errMsg = ""
	s.logger.Info("tenant loaded", zap.String("slug", tenant.Slug), zap.String("status", string(tenant.Status)))
}

// UpdateSettings sends the partial settings to the backend and merges the
// patch locally only after the remote call succeeds. A remote failure
// leaves local settings at the last known-good value and is re-raised.
func (s *Store) UpdateSettings(ctx context.Context, patch models.TenantSettings) error {
	s.mu.Lock()
	if s.tenant == nil {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrTenantNotLoaded, "")
	}
	slug := s.tenant.Slug
	s.mu.Unlock()

	if len(patch) == 0 {
		return nil
	}

	path := fmt.Sprintf("/api/tenants/%s/settings", url.PathEscape(slug))
	if _, err := s.client.Do(ctx, http.MethodPatch, path, nil, patch, nil); err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = s.settings.Merge(patch)
	s.mu.Unlock()
	s.notify()
	return nil
}
