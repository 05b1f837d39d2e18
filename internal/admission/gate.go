package admission

import (
	"errors"
	"fmt"
	"strings"
)

// Gate errors returned by Advance. Handlers map these to 422 responses.
var (
	ErrTerminalStatus      = errors.New("application is in a terminal status")
	ErrReviewIncomplete    = errors.New("review must be submitted before advancing")
	ErrAssessmentPending   = errors.New("assessment has not been passed")
	ErrInterviewPending    = errors.New("interview has not been passed")
	ErrDecisionPending     = errors.New("admission decision has not been recorded")
	ErrDecisionNotApproved = errors.New("application was not approved")
	ErrEnrollmentPending   = errors.New("enrollment confirmation is incomplete")
	ErrUnknownStatus       = errors.New("status is not advanceable")
)

// EnrollmentDetails are the four fields that must all be present before the
// enrollment confirmation stage may complete.
type EnrollmentDetails struct {
	StudentID string
	StartDate string
	FormClass string
	House     string
}

// Complete reports whether every confirmation field is filled in.
func (d EnrollmentDetails) Complete() bool {
	return strings.TrimSpace(d.StudentID) != "" &&
		strings.TrimSpace(d.StartDate) != "" &&
		strings.TrimSpace(d.FormClass) != "" &&
		strings.TrimSpace(d.House) != ""
}

// GateInput is the snapshot of an application that the stage gates inspect.
// Callers build it from a freshly read row; gates never mutate state.
type GateInput struct {
	Status            Status
	ReviewStageStatus ReviewStageStatus
	AssessmentResult  Result
	InterviewResult   Result
	Decision          Decision
	Enrollment        EnrollmentDetails
}

// Advance evaluates the gate for the application's current stage and returns
// the status to write when the move-to-next-stage action is permitted. It
// performs no side effects; a gate error means nothing may be written.
func Advance(in GateInput) (Status, error) {
	if Terminal(in.Status) {
		return "", ErrTerminalStatus
	}

	switch in.Status {
	case StatusDraft, StatusSubmitted:
		// Submission carries no gate of its own.
		return StatusUnderReview, nil

	case StatusUnderReview, StatusDocumentsPending:
		if in.ReviewStageStatus != ReviewSubmitted {
			return "", ErrReviewIncomplete
		}
		return StatusAssessmentScheduled, nil

	case StatusAssessmentScheduled, StatusAssessmentComplete, StatusInterviewScheduled, StatusInterviewComplete:
		if in.AssessmentResult != ResultPass {
			return "", ErrAssessmentPending
		}
		if in.InterviewResult != ResultPass {
			return "", ErrInterviewPending
		}
		return StatusPendingApproval, nil

	case StatusPendingApproval, StatusOnHold:
		if in.Decision == "" {
			return "", ErrDecisionPending
		}
		if in.Decision != DecisionApproved {
			return "", ErrDecisionNotApproved
		}
		return StatusOfferSent, nil

	case StatusApproved:
		if in.Decision != "" && in.Decision != DecisionApproved {
			return "", ErrDecisionNotApproved
		}
		return StatusOfferSent, nil

	case StatusOfferSent:
		// Fee payment carries no completion gate in the observed workflow.
		return StatusOfferAccepted, nil

	case StatusOfferAccepted, StatusCommitted:
		if !in.Enrollment.Complete() {
			return "", ErrEnrollmentPending
		}
		return StatusEnrolled, nil

	case StatusEnrolled:
		// Welcome & Onboarding is ungated; the welcome email is a side
		// action independent of stage movement.
		return StatusOnboarding, nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, in.Status)
	}
}

// IsGateError reports whether the error is a gate refusal rather than an
// infrastructure failure.
func IsGateError(err error) bool {
	switch {
	case errors.Is(err, ErrTerminalStatus),
		errors.Is(err, ErrReviewIncomplete),
		errors.Is(err, ErrAssessmentPending),
		errors.Is(err, ErrInterviewPending),
		errors.Is(err, ErrDecisionPending),
		errors.Is(err, ErrDecisionNotApproved),
		errors.Is(err, ErrEnrollmentPending),
		errors.Is(err, ErrUnknownStatus):
		return true
	}
	return false
}
