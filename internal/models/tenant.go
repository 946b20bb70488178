package models

import "time"

// TenantStatus enumerates the lifecycle states of a school account.
type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantInactive  TenantStatus = "inactive"
	TenantSuspended TenantStatus = "suspended"
)

// Tenant is one customer school identified by a unique subdomain slug.
type Tenant struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	CustomDomain string       `json:"custom_domain,omitempty"`
	Status       TenantStatus `json:"status"`
	Plan         string       `json:"plan"`
	CreatedAt    time.Time    `json:"created_at"`
}

// TenantSettings is the open-ended customization map attached to a tenant.
// Only a few keys are well known (theme, logo_url, grading_scale,
// attendance_threshold); everything else is passed through untouched.
type TenantSettings map[string]any

// Merge returns a copy of s with the keys of patch shallow-merged in.
// New keys win; s itself is never mutated.
func (s TenantSettings) Merge(patch TenantSettings) TenantSettings {
	merged := make(TenantSettings, len(s)+len(patch))
	for k, v := range s {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// TenantProfile is the payload of GET /api/tenants/{slug}.
type TenantProfile struct {
	Tenant
	Settings TenantSettings `json:"settings"`
}

// TenantFilter captures super-admin tenant listing parameters.
type TenantFilter struct {
	Status    TenantStatus
	Plan      string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// CreateTenantRequest provisions a new school (super-admin panel).
type CreateTenantRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required,hostname_rfc1123"`
	Plan string `json:"plan" validate:"required"`
}
