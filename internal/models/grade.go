package models

import "time"

// Grade is a single score a student earned in a subject assessment.
type Grade struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	ClassID    string    `json:"class_id"`
	Subject    string    `json:"subject"`
	Term       string    `json:"term"`
	Assessment string    `json:"assessment"`
	Score      float64   `json:"score"`
	MaxScore   float64   `json:"max_score"`
	Remark     string    `json:"remark,omitempty"`
	RecordedBy string    `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GradeFilter encapsulates search parameters for listing grades.
type GradeFilter struct {
	StudentID string
	ClassID   string
	Subject   string
	Term      string
	Page      int
	PageSize  int
}
