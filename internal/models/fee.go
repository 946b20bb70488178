package models

import "time"

// FeeStatus enumerates invoice payment states.
type FeeStatus string

const (
	FeeUnpaid  FeeStatus = "unpaid"
	FeePartial FeeStatus = "partial"
	FeePaid    FeeStatus = "paid"
	FeeWaived  FeeStatus = "waived"
)

// FeeInvoice bills a student for one fee item in a term.
type FeeInvoice struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"student_id"`
	Term        string     `json:"term"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount"`
	AmountPaid  int64      `json:"amount_paid"`
	Currency    string     `json:"currency"`
	Status      FeeStatus  `json:"status"`
	DueDate     time.Time  `json:"due_date"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FeeFilter encapsulates search parameters for listing fee invoices.
type FeeFilter struct {
	StudentID string
	Term      string
	Status    FeeStatus
	Overdue   *bool
	Page      int
	PageSize  int
}
