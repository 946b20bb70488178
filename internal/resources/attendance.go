package resources

import (
	"context"
	"net/http"
	"time"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
)

// Attendance is the client for daily attendance records.
type Attendance struct {
	client *api.Client
}

// NewAttendance constructs an Attendance client.
func NewAttendance(client *api.Client) *Attendance {
	return &Attendance{client: client}
}

// List fetches one page of attendance records matching the filter.
func (a *Attendance) List(ctx context.Context, f models.AttendanceFilter) ([]models.AttendanceRecord, *models.Pagination, error) {
	q := baseQuery(f.Page, f.PageSize)
	setIf(q, "student_id", f.StudentID)
	setIf(q, "class_id", f.ClassID)
	setIf(q, "status", string(f.Status))
	if f.DateFrom != nil {
		q.Set("date_from", f.DateFrom.Format(time.DateOnly))
	}
	if f.DateTo != nil {
		q.Set("date_to", f.DateTo.Format(time.DateOnly))
	}

	var out []models.AttendanceRecord
	pagination, err := a.client.Do(ctx, http.MethodGet, "/api/attendance", q, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pagination, nil
}

// Mark records attendance for one student on one date.
func (a *Attendance) Mark(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	out := &models.AttendanceRecord{}
	if _, err := a.client.Do(ctx, http.MethodPost, "/api/attendance", nil, record, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkBulk records attendance for a whole class in one call.
func (a *Attendance) MarkBulk(ctx context.Context, records []models.AttendanceRecord) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	if _, err := a.client.Do(ctx, http.MethodPost, "/api/attendance/bulk", nil, records, &out); err != nil {
		return nil, err
	}
	return out, nil
}
