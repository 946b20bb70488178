package tenant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
	appErrors "github.com/klasora/console-go/pkg/errors"
)

func newTenantBackend(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.New(api.Options{BaseURL: srv.URL, Logger: zap.NewNop()})
}

func greenwoodHandler(t *testing.T, fetches *atomic.Int32) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/tenants/greenwood":
			if fetches != nil {
				fetches.Add(1)
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": models.TenantProfile{
					Tenant: models.Tenant{ID: "t-1", Name: "Greenwood Academy", Slug: "greenwood", Status: models.TenantActive},
					Settings: models.TenantSettings{
						"theme":         "emerald",
						"grading_scale": "0-100",
					},
				},
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/tenants/greenwood/settings":
			patch := models.TenantSettings{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"data": patch})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestStoreInitLoadsTenant(t *testing.T) {
	var fetches atomic.Int32
	client := newTenantBackend(t, greenwoodHandler(t, &fetches))
	store := NewStore(Options{Client: client, Logger: zap.NewNop()})

	store.Init(context.Background(), "https://greenwood.platform.com/dashboard")

	require.NotNil(t, store.Tenant())
	assert.Equal(t, "greenwood", store.Tenant().Slug)
	assert.Equal(t, "emerald", store.Settings()["theme"])
	assert.Empty(t, store.Err())
	assert.False(t, store.IsLoading())

	// Init is once-only.
	store.Init(context.Background(), "https://other.platform.com")
	assert.Equal(t, int32(1), fetches.Load())
	assert.Equal(t, "greenwood", store.Tenant().Slug)
}

func TestStoreNoSlugIsNotAnError(t *testing.T) {
	client := newTenantBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected when no slug resolves")
	}))
	store := NewStore(Options{Client: client, Logger: zap.NewNop()})

	store.Init(context.Background(), "https://platform.com")

	assert.Nil(t, store.Tenant())
	assert.Empty(t, store.Err())
	assert.False(t, store.IsLoading())
}

func TestStoreUnknownTenantMessage(t *testing.T) {
	client := newTenantBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": appErrors.Clone(appErrors.ErrTenantNotFound, "")})
	}))
	store := NewStore(Options{Client: client, Logger: zap.NewNop()})

	store.Init(context.Background(), "https://ghost.platform.com")

	assert.Nil(t, store.Tenant())
	assert.Equal(t, appErrors.ErrTenantNotFound.Message, store.Err())
}

func TestStoreGenericFailureMessage(t *testing.T) {
	client := newTenantBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	store := NewStore(Options{Client: client, Logger: zap.NewNop()})

	store.Init(context.Background(), "https://greenwood.platform.com")

	assert.Nil(t, store.Tenant())
	assert.Equal(t, appErrors.ErrTenantLoadFailed.Message, store.Err())
}

func TestStoreRefetchRecovers(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	inner := greenwoodHandler(t, nil)
	client := newTenantBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		inner.ServeHTTP(w, r)
	}))
	store := NewStore(Options{Client: client, Logger: zap.NewNop()})

	store.Init(context.Background(), "https://greenwood.platform.com")
	require.NotEmpty(t, store.Err())

	failing.Store(false)
	store.Refetch(context.Background())

	assert.Empty(t, store.Err())
	require.NotNil(t, store.Tenant())
	assert.Equal(t, "greenwood", store.Tenant().Slug)
}

func TestStoreOverridePinsSlug(t *testing.T) {
	client := newTenantBackend(t, greenwoodHandler(t, nil))
	store := NewStore(Options{Client: client, Logger: zap.NewNop(), Override: "greenwood"})

	store.Init(context.Background(), "http://localhost:3000")

	require.NotNil(t, store.Tenant())
	assert.Equal(t, "greenwood", store.Slug())
}

func TestUpdateSettingsMergesOnSuccess(t *testing.T) {
	client := newTenantBackend(t, greenwoodHandler(t, nil))
	store := NewStore(Options{Client: client, Logger: zap.NewNop()})
	store.Init(context.Background(), "https://greenwood.platform.com")
	require.NotNil(t, store.Tenant())

	err := store.UpdateSettings(context.Background(), models.TenantSettings{"theme": "slate"})
	require.NoError(t, err)

	settings := store.Settings()
	assert.Equal(t, "slate", settings["theme"])
	assert.Equal(t, "0-100", settings["grading_scale"], "untouched keys survive the patch")
}

func TestUpdateSettingsRemoteFailureKeepsLocal(t *testing.T) {
	inner := greenwoodHandler(t, nil)
	client := newTenantBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		inner.ServeHTTP(w, r)
	}))
	store := NewStore(Options{Client: client, Logger: zap.NewNop()})
	store.Init(context.Background(), "https://greenwood.platform.com")
	require.NotNil(t, store.Tenant())

	err := store.UpdateSettings(context.Background(), models.TenantSettings{"theme": "slate"})
	require.Error(t, err)
	assert.Equal(t, "emerald", store.Settings()["theme"], "failed patch never applies locally")
}

func TestUpdateSettingsRequiresLoadedTenant(t *testing.T) {
	client := newTenantBackend(t, greenwoodHandler(t, nil))
	store := NewStore(Options{Client: client, Logger: zap.NewNop()})

	err := store.UpdateSettings(context.Background(), models.TenantSettings{"theme": "slate"})
	require.Error(t, err)

	var typed *appErrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, appErrors.ErrTenantNotLoaded.Code, typed.Code)
}

func TestUpdateSettingsEmptyPatchNoop(t *testing.T) {
	var patches atomic.Int32
	inner := greenwoodHandler(t, nil)
	client := newTenantBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			patches.Add(1)
		}
		inner.ServeHTTP(w, r)
	}))
	store := NewStore(Options{Client: client, Logger: zap.NewNop()})
	store.Init(context.Background(), "https://greenwood.platform.com")

	require.NoError(t, store.UpdateSettings(context.Background(), models.TenantSettings{}))
	assert.Equal(t, int32(0), patches.Load())
}
