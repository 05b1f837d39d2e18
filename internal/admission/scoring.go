package admission

import "math"

// passThresholdNum/passThresholdDen express the 40% pass mark as a ratio so
// boundary cases compare exactly instead of through floating point.
const (
	passThresholdNum = 2
	passThresholdDen = 5
)

// SubjectMark is one subject's marks entry in an assessment.
type SubjectMark struct {
	Subject  string `json:"subject"`
	Marks    int    `json:"marks"`
	MaxMarks int    `json:"max_marks"`
}

// Result returns pass when marks/max_marks >= 40%. Exactly 40% passes.
func (m SubjectMark) Result() Result {
	if m.MaxMarks <= 0 {
		return ResultFail
	}
	if m.Marks*passThresholdDen >= m.MaxMarks*passThresholdNum {
		return ResultPass
	}
	return ResultFail
}

// Percentage returns the subject score as a percentage for display.
func (m SubjectMark) Percentage() float64 {
	if m.MaxMarks <= 0 {
		return 0
	}
	return float64(m.Marks) / float64(m.MaxMarks) * 100
}

// AggregateResult computes the overall assessment outcome: pass iff
// sum(marks)/sum(max_marks) >= 40%. The summed ratio deliberately weights
// subjects by their max marks, so it can diverge from an average of
// per-subject percentages.
func AggregateResult(marks []SubjectMark) Result {
	totalMarks, totalMax := 0, 0
	for _, m := range marks {
		totalMarks += m.Marks
		totalMax += m.MaxMarks
	}
	if totalMax <= 0 {
		return ResultFail
	}
	if totalMarks*passThresholdDen >= totalMax*passThresholdNum {
		return ResultPass
	}
	return ResultFail
}

// AggregatePercentage returns the summed-ratio score as a percentage.
func AggregatePercentage(marks []SubjectMark) float64 {
	totalMarks, totalMax := 0, 0
	for _, m := range marks {
		totalMarks += m.Marks
		totalMax += m.MaxMarks
	}
	if totalMax <= 0 {
		return 0
	}
	return float64(totalMarks) / float64(totalMax) * 100
}

// CompositeScore is the review stage's unweighted mean of the three 0-100
// sub-scores, rounded to the nearest integer (halves round away from zero).
func CompositeScore(academic, behavioral, communication float64) int {
	return int(math.Round((academic + behavioral + communication) / 3))
}
