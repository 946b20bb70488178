package resources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
)

// Reports is the client for asynchronous report generation.
type Reports struct {
	client *api.Client
}

// NewReports constructs a Reports client.
func NewReports(client *api.Client) *Reports {
	return &Reports{client: client}
}

// Generate enqueues a report and returns its job handle.
func (r *Reports) Generate(ctx context.Context, req models.ReportRequest) (*models.ReportJob, error) {
	out := &models.ReportJob{}
	if _, err := r.client.Do(ctx, http.MethodPost, "/api/reports/generate", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Status fetches the current state of a report job.
func (r *Reports) Status(ctx context.Context, id string) (*models.ReportJob, error) {
	out := &models.ReportJob{}
	if _, err := r.client.Do(ctx, http.MethodGet, "/api/reports/"+url.PathEscape(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Download fetches the tabular dataset of a completed report.
func (r *Reports) Download(ctx context.Context, id string) (*models.ReportDataset, error) {
	out := &models.ReportDataset{}
	path := "/api/reports/" + url.PathEscape(id) + "/download"
	if _, err := r.client.Do(ctx, http.MethodGet, path, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
