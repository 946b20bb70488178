package models

import "time"

// Student represents a learner registered with the tenant.
type Student struct {
	ID             string    `json:"id"`
	AdmissionNo    string    `json:"admission_no"`
	FullName       string    `json:"full_name"`
	Gender         string    `json:"gender"`
	BirthDate      time.Time `json:"birth_date"`
	ClassID        string    `json:"class_id,omitempty"`
	GuardianName   string    `json:"guardian_name,omitempty"`
	GuardianPhone  string    `json:"guardian_phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	Active         bool      `json:"active"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search    string
	ClassID   string
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
