package resources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
)

// Fees is the client for fee invoices and payments.
type Fees struct {
	client *api.Client
}

// NewFees constructs a Fees client.
func NewFees(client *api.Client) *Fees {
	return &Fees{client: client}
}

// List fetches one page of fee invoices matching the filter.
func (f *Fees) List(ctx context.Context, filter models.FeeFilter) ([]models.FeeInvoice, *models.Pagination, error) {
	q := baseQuery(filter.Page, filter.PageSize)
	setIf(q, "student_id", filter.StudentID)
	setIf(q, "term", filter.Term)
	setIf(q, "status", string(filter.Status))
	setBool(q, "overdue", filter.Overdue)

	var out []models.FeeInvoice
	pagination, err := f.client.Do(ctx, http.MethodGet, "/api/fees", q, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pagination, nil
}

// Get fetches a single invoice by id.
func (f *Fees) Get(ctx context.Context, id string) (*models.FeeInvoice, error) {
	out := &models.FeeInvoice{}
	if _, err := f.client.Do(ctx, http.MethodGet, "/api/fees/"+url.PathEscape(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create issues a new invoice.
func (f *Fees) Create(ctx context.Context, invoice *models.FeeInvoice) (*models.FeeInvoice, error) {
	out := &models.FeeInvoice{}
	if _, err := f.client.Do(ctx, http.MethodPost, "/api/fees", nil, invoice, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordPayment applies a payment amount against an invoice.
func (f *Fees) RecordPayment(ctx context.Context, id string, amount int64) (*models.FeeInvoice, error) {
	out := &models.FeeInvoice{}
	body := map[string]int64{"amount": amount}
	path := "/api/fees/" + url.PathEscape(id) + "/payments"
	if _, err := f.client.Do(ctx, http.MethodPost, path, nil, body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Waive marks an invoice as waived.
func (f *Fees) Waive(ctx context.Context, id string, reason string) (*models.FeeInvoice, error) {
	out := &models.FeeInvoice{}
	body := map[string]string{"reason": reason}
	path := "/api/fees/" + url.PathEscape(id) + "/waive"
	if _, err := f.client.Do(ctx, http.MethodPost, path, nil, body, out); err != nil {
		return nil, err
	}
	return out, nil
}
