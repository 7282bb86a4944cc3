package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intern-hub/intern-placement-hub/internal/application/command"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/internal/domain/submission"
	"github.com/intern-hub/intern-placement-hub/internal/testutils"
)

func internActorFor(id string) shared.Actor {
	return shared.Actor{ID: id, Role: shared.RoleIntern}
}

func createSubmission(t *testing.T, f *testutils.FakeUoWFactory, actor shared.Actor) *submission.Submission {
	t.Helper()
	h := command.NewCreateSubmissionHandler(f, &testutils.SeqIDGenerator{Prefix: "sub"}, nil)
	sub, err := h.Handle(context.Background(), command.CreateSubmissionCommand{
		Actor:    actor,
		InternID: "intern-1",
		Title:    "Week 1 report",
		FileRef:  "files/week1.pdf",
	})
	require.NoError(t, err)
	return sub
}

func TestCreateSubmission(t *testing.T) {
	t.Run("intern submits via account identity", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		seedActiveIntern(t, f)

		sub := createSubmission(t, f, internActorFor("acc-1"))
		assert.Equal(t, submission.StatusPending, sub.Status)
		assert.Equal(t, "intern-1", sub.InternID)
	})

	t.Run("interns cannot submit for someone else", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		seedActiveIntern(t, f)

		h := command.NewCreateSubmissionHandler(f, &testutils.SeqIDGenerator{}, nil)
		_, err := h.Handle(context.Background(), command.CreateSubmissionCommand{
			Actor:    internActorFor("someone-else"),
			InternID: "intern-1",
			Title:    "Forged report",
			FileRef:  "files/forged.pdf",
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("suspended intern is blocked", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		seedActiveIntern(t, f)

		suspendH := command.NewSuspendInternHandler(f, nil)
		_, err := suspendH.Handle(context.Background(), command.SuspendInternCommand{
			Actor: adminActor, InternID: "intern-1", Reason: "policy breach",
		})
		require.NoError(t, err)

		h := command.NewCreateSubmissionHandler(f, &testutils.SeqIDGenerator{}, nil)
		_, err = h.Handle(context.Background(), command.CreateSubmissionCommand{
			Actor:    internActorFor("acc-1"),
			InternID: "intern-1",
			Title:    "Week 2 report",
			FileRef:  "files/week2.pdf",
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("completed intern is blocked", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		seedActiveIntern(t, f)

		completeH := command.NewCompleteInternHandler(f, nil, nil)
		_, err := completeH.Handle(context.Background(), command.CompleteInternCommand{
			Actor: adminActor, InternID: "intern-1", FinalEvaluation: 3.5,
		})
		require.NoError(t, err)

		h := command.NewCreateSubmissionHandler(f, &testutils.SeqIDGenerator{}, nil)
		_, err = h.Handle(context.Background(), command.CreateSubmissionCommand{
			Actor:    internActorFor("acc-1"),
			InternID: "intern-1",
			Title:    "Late report",
			FileRef:  "files/late.pdf",
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestReviewSubmission(t *testing.T) {
	setup := func(t *testing.T) (*testutils.FakeUoWFactory, string) {
		f := testutils.NewFakeUoWFactory()
		seedActiveIntern(t, f)

		assignH := command.NewAssignInternHandler(f, nil)
		_, err := assignH.Handle(context.Background(), command.AssignInternCommand{
			Actor: adminActor, InternID: "intern-1", SupervisorID: "sup-1",
		})
		require.NoError(t, err)

		sub := createSubmission(t, f, internActorFor("acc-1"))
		return f, sub.ID
	}

	t.Run("assigned supervisor approves and the intern is notified", func(t *testing.T) {
		f, subID := setup(t)

		notifier := &testutils.RecordingNotifier{}
		h := command.NewReviewSubmissionHandler(f, notifier, nil)
		reviewed, err := h.Handle(context.Background(), command.ReviewSubmissionCommand{
			Actor:        supervisorActor,
			SubmissionID: subID,
			Decision:     submission.DecisionApprove,
		})
		require.NoError(t, err)
		assert.Equal(t, submission.StatusApproved, reviewed.Status)
		assert.Equal(t, "sup-1", reviewed.ReviewedBy)

		sent := notifier.ByEvent(string(shared.EventSubmissionReviewed))
		require.Len(t, sent, 1)
		assert.Equal(t, "acc-1", sent[0].Recipient)
	})

	t.Run("unassigned supervisor is forbidden", func(t *testing.T) {
		f, subID := setup(t)

		h := command.NewReviewSubmissionHandler(f, nil, nil)
		_, err := h.Handle(context.Background(), command.ReviewSubmissionCommand{
			Actor:        shared.Actor{ID: "sup-9", Role: shared.RoleSupervisor},
			SubmissionID: subID,
			Decision:     submission.DecisionApprove,
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin reviews regardless of assignment", func(t *testing.T) {
		f, subID := setup(t)

		h := command.NewReviewSubmissionHandler(f, nil, nil)
		reviewed, err := h.Handle(context.Background(), command.ReviewSubmissionCommand{
			Actor:        adminActor,
			SubmissionID: subID,
			Decision:     submission.DecisionNeedsRevision,
			Feedback:     "add the load test results",
		})
		require.NoError(t, err)
		assert.Equal(t, submission.StatusNeedsRevision, reviewed.Status)
	})

	t.Run("rejection without feedback fails and nothing is persisted", func(t *testing.T) {
		f, subID := setup(t)

		h := command.NewReviewSubmissionHandler(f, nil, nil)
		_, err := h.Handle(context.Background(), command.ReviewSubmissionCommand{
			Actor:        supervisorActor,
			SubmissionID: subID,
			Decision:     submission.DecisionReject,
		})
		assert.ErrorIs(t, err, shared.ErrValidation)

		stored, err := f.SubmissionRepo.GetByID(context.Background(), subID)
		require.NoError(t, err)
		assert.Equal(t, submission.StatusPending, stored.Status)
	})

	t.Run("second review observes the first", func(t *testing.T) {
		f, subID := setup(t)

		h := command.NewReviewSubmissionHandler(f, nil, nil)
		_, err := h.Handle(context.Background(), command.ReviewSubmissionCommand{
			Actor:        supervisorActor,
			SubmissionID: subID,
			Decision:     submission.DecisionApprove,
		})
		require.NoError(t, err)

		_, err = h.Handle(context.Background(), command.ReviewSubmissionCommand{
			Actor:        adminActor,
			SubmissionID: subID,
			Decision:     submission.DecisionReject,
			Feedback:     "overruled",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidState)

		stored, err := f.SubmissionRepo.GetByID(context.Background(), subID)
		require.NoError(t, err)
		assert.Equal(t, "sup-1", stored.ReviewedBy)
	})
}
