package models

import "time"

// LeaveStatus enumerates the review states of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveRequest is a staff or student absence request awaiting review.
type LeaveRequest struct {
	ID          string      `json:"id"`
	RequesterID string      `json:"requester_id"`
	Role        UserRole    `json:"role"`
	Reason      string      `json:"reason"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Status      LeaveStatus `json:"status"`
	ReviewedBy  string      `json:"reviewed_by,omitempty"`
	ReviewNote  string      `json:"review_note,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// LeaveFilter encapsulates search parameters for listing leave requests.
type LeaveFilter struct {
	RequesterID string
	Status      LeaveStatus
	Role        UserRole
	Page        int
	PageSize    int
}
