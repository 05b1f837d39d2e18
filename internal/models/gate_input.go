package models

import (
	"encoding/json"

	"github.com/noah-isme/sams-go-api/internal/admission"
)

// GateInput builds the stage gate's snapshot from the persisted row. JSON
// columns that fail to decode are treated as absent, which keeps gates
// conservative: missing data blocks advancement.
func (a Application) GateInput() admission.GateInput {
	in := admission.GateInput{
		Status:            a.Status,
		ReviewStageStatus: a.ReviewStageStatus,
	}

	var assessment AssessmentData
	if decodeJSON(a.AssessmentData, &assessment) {
		in.AssessmentResult = assessment.Result
	}

	var interview InterviewData
	if decodeJSON(a.InterviewData, &interview) {
		in.InterviewResult = interview.Result
	}

	var decision DecisionData
	if decodeJSON(a.DecisionData, &decision) {
		in.Decision = decision.Decision
	}

	var enrollment EnrollmentData
	if decodeJSON(a.EnrollmentData, &enrollment) {
		in.Enrollment = enrollment.Details()
	}

	return in
}

func decodeJSON(raw []byte, target interface{}) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, target) == nil
}
