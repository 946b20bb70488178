package resources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
)

// Leaves is the client for leave request review.
type Leaves struct {
	client *api.Client
}

// NewLeaves constructs a Leaves client.
func NewLeaves(client *api.Client) *Leaves {
	return &Leaves{client: client}
}

// List fetches one page of leave requests matching the filter.
func (l *Leaves) List(ctx context.Context, f models.LeaveFilter) ([]models.LeaveRequest, *models.Pagination, error) {
	q := baseQuery(f.Page, f.PageSize)
	setIf(q, "requester_id", f.RequesterID)
	setIf(q, "status", string(f.Status))
	setIf(q, "role", string(f.Role))

	var out []models.LeaveRequest
	pagination, err := l.client.Do(ctx, http.MethodGet, "/api/leaves", q, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pagination, nil
}

// Submit files a new leave request.
func (l *Leaves) Submit(ctx context.Context, req *models.LeaveRequest) (*models.LeaveRequest, error) {
	out := &models.LeaveRequest{}
	if _, err := l.client.Do(ctx, http.MethodPost, "/api/leaves", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Review approves or rejects a pending request.
func (l *Leaves) Review(ctx context.Context, id string, status models.LeaveStatus, note string) (*models.LeaveRequest, error) {
	out := &models.LeaveRequest{}
	body := map[string]string{"status": string(status), "review_note": note}
	path := "/api/leaves/" + url.PathEscape(id) + "/review"
	if _, err := l.client.Do(ctx, http.MethodPost, path, nil, body, out); err != nil {
		return nil, err
	}
	return out, nil
}
