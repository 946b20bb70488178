package models

import "time"

// ReportType enumerates the report kinds the console can request.
type ReportType string

const (
	ReportGrades     ReportType = "grades"
	ReportAttendance ReportType = "attendance"
	ReportFees       ReportType = "fees"
	ReportEnrollment ReportType = "enrollment"
)

// ReportStatus tracks asynchronous report generation.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportRunning   ReportStatus = "running"
	ReportCompleted ReportStatus = "completed"
	ReportFailed    ReportStatus = "failed"
)

// ReportRequest asks the backend to generate a report.
type ReportRequest struct {
	Type    ReportType `json:"type" validate:"required"`
	Term    string     `json:"term,omitempty"`
	ClassID string     `json:"class_id,omitempty"`
}

// ReportJob tracks one report generation request.
type ReportJob struct {
	ID          string       `json:"id"`
	Type        ReportType   `json:"type"`
	Status      ReportStatus `json:"status"`
	Progress    int          `json:"progress"`
	ResultURL   string       `json:"result_url,omitempty"`
	Error       string       `json:"error,omitempty"`
	RequestedAt time.Time    `json:"requested_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// ReportDataset is the tabular payload of a completed report download.
type ReportDataset struct {
	Title   string              `json:"title"`
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}
