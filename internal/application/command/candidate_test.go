package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intern-hub/intern-placement-hub/internal/application/command"
	"github.com/intern-hub/intern-placement-hub/internal/domain/application"
	"github.com/intern-hub/intern-placement-hub/internal/domain/candidate"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/internal/testutils"
)

func TestAddCandidate(t *testing.T) {
	t.Run("duplicate student identifier conflicts", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		app := createApplication(t, f)
		addCandidate(t, f, app.ID, "STU-001")

		h := command.NewAddCandidateHandler(f, &testutils.SeqIDGenerator{Prefix: "dup"}, nil)
		_, err := h.Handle(context.Background(), command.AddCandidateCommand{
			Actor:         uniActor,
			ApplicationID: app.ID,
			FullName:      "Another Person",
			StudentID:     "STU-001",
			FieldOfStudy:  "Mathematics",
		})
		assert.ErrorIs(t, err, shared.ErrConflict)
	})

	t.Run("roster freezes after submission", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		app := createApplication(t, f)
		addCandidate(t, f, app.ID, "STU-001")

		submitH := command.NewSubmitApplicationHandler(f, nil, nil)
		_, err := submitH.Handle(context.Background(), command.SubmitApplicationCommand{Actor: uniActor, ApplicationID: app.ID})
		require.NoError(t, err)

		h := command.NewAddCandidateHandler(f, &testutils.SeqIDGenerator{Prefix: "late"}, nil)
		_, err = h.Handle(context.Background(), command.AddCandidateCommand{
			Actor:         uniActor,
			ApplicationID: app.ID,
			FullName:      "Late Arrival",
			StudentID:     "STU-002",
			FieldOfStudy:  "Physics",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("foreign university is forbidden", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		app := createApplication(t, f)

		h := command.NewAddCandidateHandler(f, &testutils.SeqIDGenerator{}, nil)
		_, err := h.Handle(context.Background(), command.AddCandidateCommand{
			Actor:         otherUni,
			ApplicationID: app.ID,
			FullName:      "Intruder",
			StudentID:     "STU-100",
			FieldOfStudy:  "CS",
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("announces the attached document references", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		app := createApplication(t, f)

		events := &testutils.RecordingPublisher{}
		h := command.NewAddCandidateHandler(f, &testutils.SeqIDGenerator{Prefix: "cand"}, events)
		added, err := h.Handle(context.Background(), command.AddCandidateCommand{
			Actor:         uniActor,
			ApplicationID: app.ID,
			FullName:      "Documented Student",
			StudentID:     "STU-010",
			FieldOfStudy:  "Computer Science",
			CVRef:         "docs/cv-010.pdf",
			TranscriptRef: "docs/tr-010.pdf",
		})
		require.NoError(t, err)

		require.Equal(t, []shared.EventType{shared.EventCandidateAdded}, events.Types())
		assert.Equal(t, added.ID, events.Events[0].AggregateID())
		assert.Equal(t, "docs/cv-010.pdf", events.Events[0].Payload()["cv_ref"])
		assert.Equal(t, "docs/tr-010.pdf", events.Events[0].Payload()["transcript_ref"])
	})
}

func TestUpdateCandidate(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	app := createApplication(t, f)
	addCandidate(t, f, app.ID, "STU-001")

	listed, err := f.CandidateRepo.ListByApplication(context.Background(), app.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	events := &testutils.RecordingPublisher{}
	h := command.NewUpdateCandidateHandler(f, events)
	updated, err := h.Handle(context.Background(), command.UpdateCandidateCommand{
		Actor:        uniActor,
		CandidateID:  listed[0].ID,
		FullName:     "Student STU-001",
		FieldOfStudy: "Computer Science",
		CVRef:        "docs/cv-v2.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "docs/cv-v2.pdf", updated.CVRef)

	require.Equal(t, []shared.EventType{shared.EventCandidateUpdated}, events.Types())
	assert.Equal(t, "docs/cv-v2.pdf", events.Events[0].Payload()["cv_ref"])
}

func TestRemoveCandidate(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	app := createApplication(t, f)
	addCandidate(t, f, app.ID, "STU-001")

	listed, err := f.CandidateRepo.ListByApplication(context.Background(), app.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	candidateID := listed[0].ID

	events := &testutils.RecordingPublisher{}
	h := command.NewRemoveCandidateHandler(f, events)
	require.NoError(t, h.Handle(context.Background(), command.RemoveCandidateCommand{
		Actor:       uniActor,
		CandidateID: candidateID,
	}))

	// Removed candidates vanish from listings and counts.
	count, err := f.CandidateRepo.CountByApplication(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, []shared.EventType{shared.EventCandidateRemoved}, events.Types())

	// And the batch can no longer be submitted.
	submitH := command.NewSubmitApplicationHandler(f, nil, nil)
	_, err = submitH.Handle(context.Background(), command.SubmitApplicationCommand{Actor: uniActor, ApplicationID: app.ID})
	assert.ErrorIs(t, err, shared.ErrPreconditionFailed)
}

func TestReviewCandidate(t *testing.T) {
	// parentDecision "" leaves the application in UNDER_REVIEW.
	setup := func(t *testing.T, parentDecision application.Decision) (*testutils.FakeUoWFactory, string) {
		f := testutils.NewFakeUoWFactory()
		app := createApplication(t, f)
		addCandidate(t, f, app.ID, "STU-001")

		submitH := command.NewSubmitApplicationHandler(f, nil, nil)
		_, err := submitH.Handle(context.Background(), command.SubmitApplicationCommand{Actor: uniActor, ApplicationID: app.ID})
		require.NoError(t, err)

		if parentDecision != "" {
			reviewH := command.NewReviewApplicationHandler(f, nil, nil)
			_, err = reviewH.Handle(context.Background(), command.ReviewApplicationCommand{
				Actor: adminActor, ApplicationID: app.ID, Decision: parentDecision,
				RejectionReason: "incomplete paperwork",
			})
			require.NoError(t, err)
		}

		listed, err := f.CandidateRepo.ListByApplication(context.Background(), app.ID)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		return f, listed[0].ID
	}

	t.Run("reviewable while the parent is still under review", func(t *testing.T) {
		f, candidateID := setup(t, "")

		h := command.NewReviewCandidateHandler(f, nil, nil)
		reviewed, err := h.Handle(context.Background(), command.ReviewCandidateCommand{
			Actor:       adminActor,
			CandidateID: candidateID,
			Decision:    candidate.DecisionAccept,
		})
		require.NoError(t, err)
		assert.Equal(t, candidate.StatusAwaitingArrival, reviewed.Status)
	})

	t.Run("reviewable after the parent was rejected", func(t *testing.T) {
		f, candidateID := setup(t, application.DecisionReject)

		h := command.NewReviewCandidateHandler(f, nil, nil)
		reviewed, err := h.Handle(context.Background(), command.ReviewCandidateCommand{
			Actor:           adminActor,
			CandidateID:     candidateID,
			Decision:        candidate.DecisionReject,
			RejectionReason: "did not meet the bar",
		})
		require.NoError(t, err)
		assert.Equal(t, candidate.StatusRejected, reviewed.Status)
	})

	t.Run("acceptance lands in awaiting arrival and notifies the university", func(t *testing.T) {
		f, candidateID := setup(t, application.DecisionApprove)

		notifier := &testutils.RecordingNotifier{}
		h := command.NewReviewCandidateHandler(f, notifier, nil)
		reviewed, err := h.Handle(context.Background(), command.ReviewCandidateCommand{
			Actor:       adminActor,
			CandidateID: candidateID,
			Decision:    candidate.DecisionAccept,
		})
		require.NoError(t, err)
		assert.Equal(t, candidate.StatusAwaitingArrival, reviewed.Status)

		sent := notifier.ByEvent(string(shared.EventCandidateReviewed))
		require.Len(t, sent, 1)
		assert.Equal(t, "uni-1", sent[0].Recipient)
	})

	t.Run("rejection is terminal", func(t *testing.T) {
		f, candidateID := setup(t, application.DecisionApprove)

		h := command.NewReviewCandidateHandler(f, nil, nil)
		_, err := h.Handle(context.Background(), command.ReviewCandidateCommand{
			Actor:           adminActor,
			CandidateID:     candidateID,
			Decision:        candidate.DecisionReject,
			RejectionReason: "transcript incomplete",
		})
		require.NoError(t, err)

		stored, err := f.CandidateRepo.GetByID(context.Background(), candidateID)
		require.NoError(t, err)
		assert.Equal(t, candidate.StatusRejected, stored.Status)
		assert.True(t, stored.Status.IsTerminal())
	})
}
