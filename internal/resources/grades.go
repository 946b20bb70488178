package resources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
)

// Grades is the client for assessment scores.
type Grades struct {
	client *api.Client
}

// NewGrades constructs a Grades client.
func NewGrades(client *api.Client) *Grades {
	return &Grades{client: client}
}

// List fetches one page of grades matching the filter.
func (g *Grades) List(ctx context.Context, f models.GradeFilter) ([]models.Grade, *models.Pagination, error) {
	q := baseQuery(f.Page, f.PageSize)
	setIf(q, "student_id", f.StudentID)
	setIf(q, "class_id", f.ClassID)
	setIf(q, "subject", f.Subject)
	setIf(q, "term", f.Term)

	var out []models.Grade
	pagination, err := g.client.Do(ctx, http.MethodGet, "/api/grades", q, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pagination, nil
}

// Record creates a new grade entry.
func (g *Grades) Record(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	out := &models.Grade{}
	if _, err := g.client.Do(ctx, http.MethodPost, "/api/grades", nil, grade, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update amends an existing grade entry.
func (g *Grades) Update(ctx context.Context, id string, grade *models.Grade) (*models.Grade, error) {
	out := &models.Grade{}
	if _, err := g.client.Do(ctx, http.MethodPut, "/api/grades/"+url.PathEscape(id), nil, grade, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a grade entry.
func (g *Grades) Delete(ctx context.Context, id string) error {
	_, err := g.client.Do(ctx, http.MethodDelete, "/api/grades/"+url.PathEscape(id), nil, nil, nil)
	return err
}
