package models

import "time"

// Teacher represents a member of the teaching staff.
type Teacher struct {
	ID         string    `json:"id"`
	EmployeeNo string    `json:"employee_no"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Subjects   []string  `json:"subjects,omitempty"`
	Active     bool      `json:"active"`
	HiredAt    time.Time `json:"hired_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TeacherFilter encapsulates search parameters for listing teachers.
type TeacherFilter struct {
	Search    string
	Subject   string
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
