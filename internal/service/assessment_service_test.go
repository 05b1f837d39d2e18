package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sams-go-api/internal/admission"
	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/internal/models"
)

func passingMarks() dto.AssessmentSubmitRequest {
	return dto.AssessmentSubmitRequest{
		Marks: []dto.SubjectMarkRequest{
			{Subject: "Math", Marks: 35, MaxMarks: 100},
			{Subject: "English", Marks: 50, MaxMarks: 100},
			{Subject: "Science", Marks: 38, MaxMarks: 100},
			{Subject: "Hindi", Marks: 40, MaxMarks: 100},
		},
		Comments: "solid overall performance",
	}
}

func newAssessmentFixture(t *testing.T, status admission.Status) (*memoryApplicationRepo, *capturingEvents, AssessmentService, uint) {
	t.Helper()
	repo := newMemoryApplicationRepo()
	events := &capturingEvents{}
	svc := NewAssessmentService(repo, events, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	application := models.Application{
		ApplicationNumber: "APP-2026-ASSESS01",
		Status:            status,
		ReviewStageStatus: admission.ReviewSubmitted,
	}
	require.NoError(t, repo.Create(context.Background(), &application))
	return repo, events, svc, application.ID
}

func TestAssessmentServicePassingMarks(t *testing.T) {
	repo, events, svc, appID := newAssessmentFixture(t, admission.StatusAssessmentScheduled)

	resp, err := svc.SubmitMarks(context.Background(), appID, passingMarks(), "examiner@school")
	require.NoError(t, err)
	require.Equal(t, "pass", resp.Result)
	require.Equal(t, "assessment_complete", resp.Status)
	require.InDelta(t, 40.75, resp.Percentage, 0.001)
	require.Len(t, resp.Subjects, 4)

	// Math at 35/100 fails the per-subject 40% threshold even though the
	// aggregate passes.
	require.Equal(t, "fail", resp.Subjects[0].Result)
	require.Equal(t, "pass", resp.Subjects[1].Result)

	stored, err := repo.GetByID(context.Background(), appID)
	require.NoError(t, err)
	require.Equal(t, admission.StatusAssessmentComplete, stored.Status)

	captured := events.captured()
	require.Len(t, captured, 1)
	require.Equal(t, "assessment_complete", captured[0].To)
}

func TestAssessmentServiceFailingMarksReject(t *testing.T) {
	repo, _, svc, appID := newAssessmentFixture(t, admission.StatusAssessmentScheduled)

	payload := dto.AssessmentSubmitRequest{
		Marks: []dto.SubjectMarkRequest{
			{Subject: "Math", Marks: 10, MaxMarks: 100},
			{Subject: "English", Marks: 20, MaxMarks: 100},
		},
		Comments: "below the pass threshold",
	}

	resp, err := svc.SubmitMarks(context.Background(), appID, payload, "examiner@school")
	require.NoError(t, err)
	require.Equal(t, "fail", resp.Result)
	require.Equal(t, "rejected", resp.Status)

	stored, err := repo.GetByID(context.Background(), appID)
	require.NoError(t, err)
	require.True(t, admission.Terminal(stored.Status))
}

func TestAssessmentServiceRejectsWrongStage(t *testing.T) {
	_, _, svc, appID := newAssessmentFixture(t, admission.StatusUnderReview)

	_, err := svc.SubmitMarks(context.Background(), appID, passingMarks(), "examiner@school")
	require.ErrorIs(t, err, ErrNotInAssessmentStage)
}

func TestAssessmentServiceInterviewChain(t *testing.T) {
	repo, _, svc, appID := newAssessmentFixture(t, admission.StatusAssessmentScheduled)

	// Interview cannot be scheduled before the assessment is recorded.
	_, err := svc.ScheduleInterview(context.Background(), appID, dto.InterviewScheduleRequest{ScheduledAt: time.Now().Add(48 * time.Hour)}, "examiner@school")
	require.ErrorIs(t, err, ErrAssessmentNotRecorded)

	_, err = svc.SubmitMarks(context.Background(), appID, passingMarks(), "examiner@school")
	require.NoError(t, err)

	slot := time.Now().Add(48 * time.Hour)
	scheduled, err := svc.ScheduleInterview(context.Background(), appID, dto.InterviewScheduleRequest{ScheduledAt: slot}, "examiner@school")
	require.NoError(t, err)
	require.Equal(t, "interview_scheduled", scheduled.Status)

	done, err := svc.SubmitInterview(context.Background(), appID, dto.InterviewSubmitRequest{Result: "pass", Comments: "confident and articulate"}, "panel@school")
	require.NoError(t, err)
	require.Equal(t, "interview_complete", done.Status)

	stored, err := repo.GetByID(context.Background(), appID)
	require.NoError(t, err)
	require.Equal(t, admission.StatusInterviewComplete, stored.Status)
}

func TestAssessmentServiceInterviewFailRejects(t *testing.T) {
	repo, _, svc, appID := newAssessmentFixture(t, admission.StatusAssessmentScheduled)

	_, err := svc.SubmitMarks(context.Background(), appID, passingMarks(), "examiner@school")
	require.NoError(t, err)
	_, err = svc.ScheduleInterview(context.Background(), appID, dto.InterviewScheduleRequest{ScheduledAt: time.Now().Add(24 * time.Hour)}, "examiner@school")
	require.NoError(t, err)

	resp, err := svc.SubmitInterview(context.Background(), appID, dto.InterviewSubmitRequest{Result: "fail", Comments: "unable to engage with the panel"}, "panel@school")
	require.NoError(t, err)
	require.Equal(t, "rejected", resp.Status)

	stored, err := repo.GetByID(context.Background(), appID)
	require.NoError(t, err)
	require.True(t, admission.Terminal(stored.Status))
}

func TestAssessmentServiceInterviewRequiresSchedule(t *testing.T) {
	_, _, svc, appID := newAssessmentFixture(t, admission.StatusAssessmentScheduled)

	_, err := svc.SubmitMarks(context.Background(), appID, passingMarks(), "examiner@school")
	require.NoError(t, err)

	_, err = svc.SubmitInterview(context.Background(), appID, dto.InterviewSubmitRequest{Result: "pass", Comments: "skipped the booking"}, "panel@school")
	require.ErrorIs(t, err, ErrInterviewNotScheduled)
}
