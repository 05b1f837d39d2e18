package admission

// Status is the fine-grained persisted state of an application. Many statuses
// map onto one coarse pipeline stage.
type Status string

// Application statuses.
const (
	StatusDraft               Status = "draft"
	StatusSubmitted           Status = "submitted"
	StatusUnderReview         Status = "under_review"
	StatusDocumentsPending    Status = "documents_pending"
	StatusAssessmentScheduled Status = "assessment_scheduled"
	StatusAssessmentComplete  Status = "assessment_complete"
	StatusInterviewScheduled  Status = "interview_scheduled"
	StatusInterviewComplete   Status = "interview_complete"
	StatusPendingApproval     Status = "pending_approval"
	StatusApproved            Status = "approved"
	StatusOnHold              Status = "on_hold"
	StatusRejected            Status = "rejected"
	StatusWithdrawn           Status = "withdrawn"
	StatusOfferSent           Status = "offer_sent"
	StatusOfferDeclined       Status = "offer_declined"
	StatusOfferAccepted       Status = "offer_accepted"
	StatusCommitted           Status = "committed"
	StatusEnrolled            Status = "enrolled"
	StatusOnboarding          Status = "onboarding"
)

// ReviewStageStatus tracks the sub-state inside the Review & Verify stage,
// independent of the top-level status.
type ReviewStageStatus string

// Review sub-states, in order.
const (
	ReviewDocumentsPending  ReviewStageStatus = "documents_pending"
	ReviewDocumentsVerified ReviewStageStatus = "documents_verified"
	ReviewSubmitted         ReviewStageStatus = "review_submitted"
)

// Result is the outcome of an assessment or interview step.
type Result string

// Step results.
const (
	ResultPass Result = "pass"
	ResultFail Result = "fail"
)

// Decision is the admission decision recorded by staff.
type Decision string

// Admission decisions.
const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Terminal reports whether the status permits no further stage movement.
func Terminal(status Status) bool {
	switch status {
	case StatusRejected, StatusWithdrawn, StatusOfferDeclined:
		return true
	default:
		return false
	}
}
