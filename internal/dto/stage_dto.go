package dto

import "time"

// ReviewSubmitRequest carries the three 0-100 sub-scores and review notes.
type ReviewSubmitRequest struct {
	AcademicScore      float64 `json:"academic_score" validate:"gte=0,lte=100"`
	BehavioralScore    float64 `json:"behavioral_score" validate:"gte=0,lte=100"`
	CommunicationScore float64 `json:"communication_score" validate:"gte=0,lte=100"`
	Notes              string  `json:"notes" validate:"required,min=3"`
}

// ReviewSubmitResponse reports the computed composite score.
type ReviewSubmitResponse struct {
	ApplicationID     uint   `json:"application_id"`
	CompositeScore    int    `json:"composite_score"`
	ReviewStageStatus string `json:"review_stage_status"`
}

// SubjectMarkRequest is one subject's marks entry.
type SubjectMarkRequest struct {
	Subject  string `json:"subject" validate:"required"`
	Marks    int    `json:"marks" validate:"gte=0"`
	MaxMarks int    `json:"max_marks" validate:"gt=0"`
}

// AssessmentSubmitRequest carries the full marks sheet plus overall comments.
// Marks must be entered for every configured subject.
type AssessmentSubmitRequest struct {
	Marks    []SubjectMarkRequest `json:"marks" validate:"required,min=1,dive"`
	Comments string               `json:"comments" validate:"required,min=3"`
}

// AssessmentSubmitResponse reports the per-subject and aggregate outcome.
type AssessmentSubmitResponse struct {
	ApplicationID uint                 `json:"application_id"`
	Subjects      []SubjectMarkOutcome `json:"subjects"`
	Percentage    float64              `json:"percentage"`
	Result        string               `json:"result"`
	Status        string               `json:"status"`
}

// SubjectMarkOutcome is one subject's computed result.
type SubjectMarkOutcome struct {
	Subject    string  `json:"subject"`
	Marks      int     `json:"marks"`
	MaxMarks   int     `json:"max_marks"`
	Percentage float64 `json:"percentage"`
	Result     string  `json:"result"`
}

// InterviewScheduleRequest books the interview slot.
type InterviewScheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

// InterviewSubmitRequest records the interview outcome.
type InterviewSubmitRequest struct {
	Result   string `json:"result" validate:"required,oneof=pass fail"`
	Comments string `json:"comments" validate:"required,min=3"`
}

// DecisionSubmitRequest records the admission decision.
type DecisionSubmitRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Notes    string `json:"notes" validate:"required,min=3"`
}

// EnrollmentConfirmRequest carries the four confirmation fields; all are
// required before the stage may complete.
type EnrollmentConfirmRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	FormClass string `json:"form_class" validate:"required"`
	House     string `json:"house" validate:"required"`
}

// WelcomeEmailResponse reports the recorded communication.
type WelcomeEmailResponse struct {
	ApplicationID uint      `json:"application_id"`
	Recipient     string    `json:"recipient"`
	Subject       string    `json:"subject"`
	SentAt        time.Time `json:"sent_at"`
}
