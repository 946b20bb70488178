package resources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
)

// Classes is the client for homeroom class management.
type Classes struct {
	client *api.Client
}

// NewClasses constructs a Classes client.
func NewClasses(client *api.Client) *Classes {
	return &Classes{client: client}
}

// List fetches one page of classes matching the filter.
func (c *Classes) List(ctx context.Context, f models.ClassFilter) ([]models.Class, *models.Pagination, error) {
	q := baseQuery(f.Page, f.PageSize)
	setIf(q, "search", f.Search)
	setIf(q, "academic_year", f.AcademicYear)
	if f.GradeLevel > 0 {
		q.Set("grade_level", strconv.Itoa(f.GradeLevel))
	}

	var out []models.Class
	pagination, err := c.client.Do(ctx, http.MethodGet, "/api/classes", q, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pagination, nil
}

// Get fetches a single class by id.
func (c *Classes) Get(ctx context.Context, id string) (*models.Class, error) {
	out := &models.Class{}
	if _, err := c.client.Do(ctx, http.MethodGet, "/api/classes/"+url.PathEscape(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create provisions a new class.
func (c *Classes) Create(ctx context.Context, class *models.Class) (*models.Class, error) {
	out := &models.Class{}
	if _, err := c.client.Do(ctx, http.MethodPost, "/api/classes", nil, class, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces a class's editable fields.
func (c *Classes) Update(ctx context.Context, id string, class *models.Class) (*models.Class, error) {
	out := &models.Class{}
	if _, err := c.client.Do(ctx, http.MethodPut, "/api/classes/"+url.PathEscape(id), nil, class, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a class.
func (c *Classes) Delete(ctx context.Context, id string) error {
	_, err := c.client.Do(ctx, http.MethodDelete, "/api/classes/"+url.PathEscape(id), nil, nil, nil)
	return err
}
