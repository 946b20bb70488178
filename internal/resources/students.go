package resources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
)

// Students is the client for the student roster.
type Students struct {
	client *api.Client
}

// NewStudents constructs a Students client.
func NewStudents(client *api.Client) *Students {
	return &Students{client: client}
}

// List fetches one page of students matching the filter.
func (s *Students) List(ctx context.Context, f models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	q := baseQuery(f.Page, f.PageSize)
	setIf(q, "search", f.Search)
	setIf(q, "class_id", f.ClassID)
	setBool(q, "active", f.Active)
	setSort(q, f.SortBy, f.SortOrder)

	var out []models.Student
	pagination, err := s.client.Do(ctx, http.MethodGet, "/api/students", q, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pagination, nil
}

// Get fetches a single student by id.
func (s *Students) Get(ctx context.Context, id string) (*models.Student, error) {
	out := &models.Student{}
	if _, err := s.client.Do(ctx, http.MethodGet, "/api/students/"+url.PathEscape(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registers a new student.
func (s *Students) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	out := &models.Student{}
	if _, err := s.client.Do(ctx, http.MethodPost, "/api/students", nil, student, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces a student's editable fields.
func (s *Students) Update(ctx context.Context, id string, student *models.Student) (*models.Student, error) {
	out := &models.Student{}
	if _, err := s.client.Do(ctx, http.MethodPut, "/api/students/"+url.PathEscape(id), nil, student, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a student.
func (s *Students) Delete(ctx context.Context, id string) error {
	_, err := s.client.Do(ctx, http.MethodDelete, "/api/students/"+url.PathEscape(id), nil, nil, nil)
	return err
}

// DeleteAndList removes a student and immediately re-fetches the list the
// caller was showing, so the screen refreshes from server truth rather
// than patching its local copy.
func (s *Students) DeleteAndList(ctx context.Context, id string, f models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	if err := s.Delete(ctx, id); err != nil {
		return nil, nil, err
	}
	return s.List(ctx, f)
}
