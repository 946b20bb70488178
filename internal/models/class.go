package models

import "time"

// Class represents a homeroom group for one academic year.
type Class struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	GradeLevel        int       `json:"grade_level"`
	AcademicYear      string    `json:"academic_year"`
	HomeroomTeacherID string    `json:"homeroom_teacher_id,omitempty"`
	Capacity          int       `json:"capacity"`
	StudentCount      int       `json:"student_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ClassFilter encapsulates search parameters for listing classes.
type ClassFilter struct {
	AcademicYear string
	GradeLevel   int
	Search       string
	Page         int
	PageSize     int
}
