package models

import (
	"time"

	"github.com/noah-isme/sams-go-api/internal/admission"
)

// Stage sub-objects serialised into the application's JSON columns. Each is
// written once, when its stage completes, and carries a result plus freeform
// comments and a completion timestamp.

// ReviewData is the Review & Verify stage's recorded outcome.
type ReviewData struct {
	AcademicScore      float64   `json:"academic_score"`
	BehavioralScore    float64   `json:"behavioral_score"`
	CommunicationScore float64   `json:"communication_score"`
	CompositeScore     int       `json:"composite_score"`
	Notes              string    `json:"notes"`
	ReviewedBy         string    `json:"reviewed_by"`
	CompletedAt        time.Time `json:"completed_at"`
}

// AssessmentData is the recorded marks sheet and aggregate result.
type AssessmentData struct {
	Marks       []admission.SubjectMark `json:"marks"`
	Percentage  float64                 `json:"percentage"`
	Result      admission.Result        `json:"result"`
	Comments    string                  `json:"comments"`
	AssessedBy  string                  `json:"assessed_by"`
	CompletedAt time.Time               `json:"completed_at"`
}

// InterviewData is the interview step's recorded outcome.
type InterviewData struct {
	Result        admission.Result `json:"result"`
	Comments      string           `json:"comments"`
	InterviewedBy string           `json:"interviewed_by"`
	ScheduledAt   *time.Time       `json:"scheduled_at,omitempty"`
	CompletedAt   time.Time        `json:"completed_at"`
}

// DecisionData is the recorded admission decision.
type DecisionData struct {
	Decision  admission.Decision `json:"decision"`
	Notes     string             `json:"notes"`
	DecidedBy string             `json:"decided_by"`
	DecidedAt time.Time          `json:"decided_at"`
}

// EnrollmentData is the enrollment confirmation record.
type EnrollmentData struct {
	StudentID   string    `json:"student_id"`
	StartDate   string    `json:"start_date"`
	FormClass   string    `json:"form_class"`
	House       string    `json:"house"`
	ConfirmedBy string    `json:"confirmed_by"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// Details converts the enrollment record into the gate's input shape.
func (e EnrollmentData) Details() admission.EnrollmentDetails {
	return admission.EnrollmentDetails{
		StudentID: e.StudentID,
		StartDate: e.StartDate,
		FormClass: e.FormClass,
		House:     e.House,
	}
}
