package resources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
)

// TenantAdmin is the super-admin panel client for managing schools across
// the platform. Regular tenant pages never use it; authorization is
// enforced server-side.
type TenantAdmin struct {
	client *api.Client
}

// NewTenantAdmin constructs a TenantAdmin client.
func NewTenantAdmin(client *api.Client) *TenantAdmin {
	return &TenantAdmin{client: client}
}

// List fetches one page of tenants matching the filter.
func (t *TenantAdmin) List(ctx context.Context, f models.TenantFilter) ([]models.Tenant, *models.Pagination, error) {
	q := baseQuery(f.Page, f.PageSize)
	setIf(q, "status", string(f.Status))
	setIf(q, "plan", f.Plan)
	setIf(q, "search", f.Search)
	setSort(q, f.SortBy, f.SortOrder)

	var out []models.Tenant
	pagination, err := t.client.Do(ctx, http.MethodGet, "/api/admin/tenants", q, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pagination, nil
}

// Create provisions a new school.
func (t *TenantAdmin) Create(ctx context.Context, req models.CreateTenantRequest) (*models.Tenant, error) {
	out := &models.Tenant{}
	if _, err := t.client.Do(ctx, http.MethodPost, "/api/admin/tenants", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus activates, deactivates, or suspends a school.
func (t *TenantAdmin) SetStatus(ctx context.Context, id string, status models.TenantStatus) (*models.Tenant, error) {
	out := &models.Tenant{}
	body := map[string]string{"status": string(status)}
	path := "/api/admin/tenants/" + url.PathEscape(id) + "/status"
	if _, err := t.client.Do(ctx, http.MethodPatch, path, nil, body, out); err != nil {
		return nil, err
	}
	return out, nil
}
