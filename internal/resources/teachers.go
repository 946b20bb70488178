package resources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
)

// Teachers is the client for the teaching staff registry.
type Teachers struct {
	client *api.Client
}

// NewTeachers constructs a Teachers client.
func NewTeachers(client *api.Client) *Teachers {
	return &Teachers{client: client}
}

// List fetches one page of teachers matching the filter.
func (t *Teachers) List(ctx context.Context, f models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	q := baseQuery(f.Page, f.PageSize)
	setIf(q, "search", f.Search)
	setIf(q, "subject", f.Subject)
	setBool(q, "active", f.Active)
	setSort(q, f.SortBy, f.SortOrder)

	var out []models.Teacher
	pagination, err := t.client.Do(ctx, http.MethodGet, "/api/teachers", q, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pagination, nil
}

// Get fetches a single teacher by id.
func (t *Teachers) Get(ctx context.Context, id string) (*models.Teacher, error) {
	out := &models.Teacher{}
	if _, err := t.client.Do(ctx, http.MethodGet, "/api/teachers/"+url.PathEscape(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registers a new teacher.
func (t *Teachers) Create(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error) {
	out := &models.Teacher{}
	if _, err := t.client.Do(ctx, http.MethodPost, "/api/teachers", nil, teacher, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces a teacher's editable fields.
func (t *Teachers) Update(ctx context.Context, id string, teacher *models.Teacher) (*models.Teacher, error) {
	out := &models.Teacher{}
	if _, err := t.client.Do(ctx, http.MethodPut, "/api/teachers/"+url.PathEscape(id), nil, teacher, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a teacher.
func (t *Teachers) Delete(ctx context.Context, id string) error {
	_, err := t.client.Do(ctx, http.MethodDelete, "/api/teachers/"+url.PathEscape(id), nil, nil, nil)
	return err
}
