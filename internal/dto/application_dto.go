package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/sams-go-api/internal/admission"
	"github.com/noah-isme/sams-go-api/internal/models"
)

// ApplicationCreateRequest is the pathway-specific submission payload.
type ApplicationCreateRequest struct {
	SchoolID    string          `json:"school_id" validate:"required"`
	Pathway     string          `json:"pathway" validate:"required,oneof=standard sen staff_child emergency"`
	StudentName string          `json:"student_name" validate:"required,min=2"`
	DateOfBirth string          `json:"date_of_birth" validate:"required"`
	YearGroup   string          `json:"year_group" validate:"required"`
	Gender      *string         `json:"gender" validate:"omitempty,oneof=male female other"`
	Nationality *string         `json:"nationality"`
	ContactName *string         `json:"contact_name"`
	ContactTel  *string         `json:"contact_tel"`
	PathwayData json.RawMessage `json:"pathway_data"`
}

// ApplicationFilter describes query string filters for listing applications.
type ApplicationFilter struct {
	Status    *string `query:"status"`
	Pathway   *string `query:"pathway" validate:"omitempty,oneof=standard sen staff_child emergency"`
	YearGroup *string `query:"year_group"`
	SchoolID  *string `query:"school_id"`
	Search    string  `query:"search"`
	Page      int     `query:"page"`
	PageSize  int     `query:"page_size" validate:"omitempty,lte=100"`
}

// ApplicationResponse is returned to dashboard clients.
type ApplicationResponse struct {
	ID                           uint            `json:"id"`
	ApplicationNumber            string          `json:"application_number"`
	SchoolID                     string          `json:"school_id"`
	Status                       string          `json:"status"`
	StatusLabel                  string          `json:"status_label"`
	StatusColor                  string          `json:"status_color"`
	Stage                        int             `json:"stage"`
	StageName                    string          `json:"stage_name"`
	Pathway                      string          `json:"pathway"`
	ReviewStageStatus            string          `json:"review_stage_status"`
	StudentName                  string          `json:"student_name"`
	DateOfBirth                  time.Time       `json:"date_of_birth"`
	YearGroup                    string          `json:"year_group"`
	Gender                       *string         `json:"gender,omitempty"`
	Nationality                  *string         `json:"nationality,omitempty"`
	ContactName                  *string         `json:"contact_name,omitempty"`
	ContactTel                   *string         `json:"contact_tel,omitempty"`
	AdditionalData               json.RawMessage `json:"additional_data,omitempty"`
	ReviewData                   json.RawMessage `json:"review_data,omitempty"`
	AssessmentData               json.RawMessage `json:"assessment_data,omitempty"`
	InterviewData                json.RawMessage `json:"interview_data,omitempty"`
	DecisionData                 json.RawMessage `json:"decision_data,omitempty"`
	EnrollmentData               json.RawMessage `json:"enrollment_data,omitempty"`
	WorkflowCompletionPercentage int             `json:"workflow_completion_percentage"`
	PriorityScore                int             `json:"priority_score"`
	SubmittedAt                  *time.Time      `json:"submitted_at,omitempty"`
	CreatedAt                    time.Time       `json:"created_at"`
	UpdatedAt                    time.Time       `json:"updated_at"`
}

// ApplicationListResponse wraps a page of applications.
type ApplicationListResponse struct {
	Items    []ApplicationResponse `json:"items"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// AdvanceResponse describes a completed stage transition.
type AdvanceResponse struct {
	ApplicationID uint   `json:"application_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	Stage         int    `json:"stage"`
	StageName     string `json:"stage_name"`
	StatusLabel   string `json:"status_label"`
	StatusColor   string `json:"status_color"`
}

// NewApplicationResponse converts an Application model into a DTO, attaching
// the derived stage/label/color view fields.
func NewApplicationResponse(model models.Application) ApplicationResponse {
	stage := admission.StageFor(model.Status)
	stageName := ""
	if stage >= 0 && stage < len(admission.Stages) {
		stageName = admission.Stages[stage].Name
	}

	return ApplicationResponse{
		ID:                           model.ID,
		ApplicationNumber:            model.ApplicationNumber,
		SchoolID:                     model.SchoolID,
		Status:                       string(model.Status),
		StatusLabel:                  admission.LabelFor(model.Status),
		StatusColor:                  admission.ColorFor(model.Status),
		Stage:                        stage,
		StageName:                    stageName,
		Pathway:                      string(model.Pathway),
		ReviewStageStatus:            string(model.ReviewStageStatus),
		StudentName:                  model.StudentName,
		DateOfBirth:                  model.DateOfBirth,
		YearGroup:                    model.YearGroup,
		Gender:                       model.Gender,
		Nationality:                  model.Nationality,
		ContactName:                  model.ContactName,
		ContactTel:                   model.ContactTel,
		AdditionalData:               json.RawMessage(model.AdditionalData),
		ReviewData:                   json.RawMessage(model.ReviewData),
		AssessmentData:               json.RawMessage(model.AssessmentData),
		InterviewData:                json.RawMessage(model.InterviewData),
		DecisionData:                 json.RawMessage(model.DecisionData),
		EnrollmentData:               json.RawMessage(model.EnrollmentData),
		WorkflowCompletionPercentage: model.WorkflowCompletionPercentage,
		PriorityScore:                model.PriorityScore,
		SubmittedAt:                  model.SubmittedAt,
		CreatedAt:                    model.CreatedAt,
		UpdatedAt:                    model.UpdatedAt,
	}
}

// NewApplicationResponseSlice converts application models into DTOs.
func NewApplicationResponseSlice(items []models.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewApplicationResponse(item))
	}
	return responses
}
