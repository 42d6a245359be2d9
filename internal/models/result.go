package models

import (
	"time"

	"github.com/google/uuid"
)

var Grades = []string{"A+", "A", "A-", "B", "C", "D", "F"}

// SubjectResult is one entry of a result sheet. Stored as JSONB on results.
type SubjectResult struct {
	Subject string  `json:"subject"`
	Marks   float64 `json:"marks"`
	Grade   string  `json:"grade"`
}

// Result holds a student's marks for one exam. The GPA is supplied by the
// caller and range-checked only; it is not derived from the subject entries.
type Result struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	OrgID     uuid.UUID       `json:"org_id" db:"org_id"`
	StudentID uuid.UUID       `json:"student" db:"student_id"`
	ExamID    uuid.UUID       `json:"exam" db:"exam_id"`
	Session   string          `json:"session" db:"session"`
	Subjects  []SubjectResult `json:"results" db:"subjects"`
	GPA       float64         `json:"gpa" db:"gpa"`
	IsPassed  bool            `json:"is_passed" db:"is_passed"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}
