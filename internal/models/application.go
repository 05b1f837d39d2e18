package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/sams-go-api/internal/admission"
)

// Application is one admission application moving through the pipeline.
// Guardian and pathway fields are sparsely populated; anything specific to
// the active pathway lives in AdditionalData.
type Application struct {
	ID                uint                        `gorm:"primaryKey" json:"id"`
	ApplicationNumber string                      `gorm:"size:32;uniqueIndex;not null" json:"application_number"`
	SchoolID          string                      `gorm:"size:64;index" json:"school_id"`
	Status            admission.Status            `gorm:"size:32;not null;index" json:"status"`
	Pathway           admission.Pathway           `gorm:"size:32;not null" json:"pathway"`
	ReviewStageStatus admission.ReviewStageStatus `gorm:"size:32;not null;default:documents_pending" json:"review_stage_status"`

	StudentName string     `gorm:"size:255;not null" json:"student_name"`
	DateOfBirth time.Time  `json:"date_of_birth"`
	YearGroup   string     `gorm:"size:16;not null" json:"year_group"`
	Gender      *string    `gorm:"size:16" json:"gender,omitempty"`
	Nationality *string    `gorm:"size:64" json:"nationality,omitempty"`
	ContactName *string    `gorm:"size:255" json:"contact_name,omitempty"`
	ContactTel  *string    `gorm:"size:32" json:"contact_tel,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	// Pathway-specific submitted data merged into the record at read time.
	AdditionalData datatypes.JSON `gorm:"type:jsonb" json:"additional_data,omitempty"`

	// Stage sub-objects, each written once when its stage completes.
	ReviewData     datatypes.JSON `gorm:"type:jsonb" json:"review_data,omitempty"`
	AssessmentData datatypes.JSON `gorm:"type:jsonb" json:"assessment_data,omitempty"`
	InterviewData  datatypes.JSON `gorm:"type:jsonb" json:"interview_data,omitempty"`
	DecisionData   datatypes.JSON `gorm:"type:jsonb" json:"decision_data,omitempty"`
	EnrollmentData datatypes.JSON `gorm:"type:jsonb" json:"enrollment_data,omitempty"`

	// Derived display metrics, recomputed on status changes.
	WorkflowCompletionPercentage int `gorm:"not null;default:0" json:"workflow_completion_percentage"`
	PriorityScore                int `gorm:"not null;default:0" json:"priority_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Documents []ApplicationDocument `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"documents,omitempty"`
	Notes     []ApplicationNote     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"notes,omitempty"`
}

// TableName keeps the collaborator schema's table name.
func (Application) TableName() string {
	return "enrollment_applications"
}

// IsDraft reports whether the application may still be hard-deleted.
func (a Application) IsDraft() bool {
	return a.Status == admission.StatusDraft
}
