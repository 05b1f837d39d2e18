package admission

// Stage describes one coarse phase of the admissions pipeline.
type Stage struct {
	Index int
	Name  string
	Entry Status
}

// The seven pipeline stages in order. Entry is the status that marks an
// application as having completed the stage's decisive action.
var Stages = []Stage{
	{Index: 0, Name: "Application Submitted", Entry: StatusSubmitted},
	{Index: 1, Name: "Application Review & Verify", Entry: StatusUnderReview},
	{Index: 2, Name: "Assessment / Interview", Entry: StatusAssessmentScheduled},
	{Index: 3, Name: "Admission Decision", Entry: StatusApproved},
	{Index: 4, Name: "Fee Payment", Entry: StatusOfferSent},
	{Index: 5, Name: "Enrollment Confirmation", Entry: StatusOfferAccepted},
	{Index: 6, Name: "Welcome & Onboarding", Entry: StatusEnrolled},
}

// StageCount is the number of coarse pipeline stages.
const StageCount = 7

type statusInfo struct {
	label string
	color string
	stage int
}

var statusTable = map[Status]statusInfo{
	StatusDraft:               {label: "Draft", color: "gray", stage: 0},
	StatusSubmitted:           {label: "Submitted", color: "blue", stage: 0},
	StatusUnderReview:         {label: "Under Review", color: "amber", stage: 1},
	StatusDocumentsPending:    {label: "Documents Pending", color: "amber", stage: 1},
	StatusAssessmentScheduled: {label: "Assessment Scheduled", color: "purple", stage: 2},
	StatusAssessmentComplete:  {label: "Assessment Complete", color: "purple", stage: 2},
	StatusInterviewScheduled:  {label: "Interview Scheduled", color: "indigo", stage: 2},
	StatusInterviewComplete:   {label: "Interview Complete", color: "indigo", stage: 2},
	StatusPendingApproval:     {label: "Pending Approval", color: "orange", stage: 3},
	StatusApproved:            {label: "Approved", color: "green", stage: 3},
	StatusOnHold:              {label: "On Hold", color: "yellow", stage: 3},
	StatusRejected:            {label: "Rejected", color: "red", stage: 3},
	StatusWithdrawn:           {label: "Withdrawn", color: "gray", stage: 3},
	StatusOfferSent:           {label: "Offer Sent", color: "cyan", stage: 4},
	StatusOfferDeclined:       {label: "Offer Declined", color: "red", stage: 4},
	StatusOfferAccepted:       {label: "Offer Accepted", color: "teal", stage: 5},
	StatusCommitted:           {label: "Committed", color: "teal", stage: 5},
	StatusEnrolled:            {label: "Enrolled", color: "emerald", stage: 6},
	StatusOnboarding:          {label: "Onboarding", color: "emerald", stage: 6},
}

var draftInfo = statusTable[StatusDraft]

func infoFor(status Status) statusInfo {
	if info, ok := statusTable[status]; ok {
		return info
	}
	return draftInfo
}

// LabelFor returns the display label for a status. Unrecognised input falls
// back to the draft label; the function is total and never panics.
func LabelFor(status Status) string {
	return infoFor(status).label
}

// ColorFor returns the display color token for a status, with the same
// fallback behaviour as LabelFor.
func ColorFor(status Status) string {
	return infoFor(status).color
}

// StageFor maps a status to the index of the pipeline stage it belongs to.
// Halted statuses (rejected, withdrawn, on hold, offer declined) report the
// stage where progress stopped.
func StageFor(status Status) int {
	return infoFor(status).stage
}

// Known reports whether the status belongs to the defined vocabulary.
func Known(status Status) bool {
	_, ok := statusTable[status]
	return ok
}

// CompletionPercentage derives the workflow progress metric shown on the
// dashboard. Display-only; carries no invariants.
func CompletionPercentage(status Status) int {
	return (StageFor(status) + 1) * 100 / StageCount
}
