package command_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intern-hub/intern-placement-hub/internal/application/command"
	"github.com/intern-hub/intern-placement-hub/internal/domain/intern"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/internal/testutils"
)

var supervisorActor = shared.Actor{ID: "sup-1", Role: shared.RoleSupervisor}

func seedActiveIntern(t *testing.T, f *testutils.FakeUoWFactory) *intern.Intern {
	t.Helper()
	i, err := intern.NewIntern(intern.NewInternParams{
		ID:          "intern-1",
		InternID:    intern.GenerateInternID(2026, "abc123"),
		CandidateID: "cand-1",
		StartDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	i.AccountID = "acc-1"
	f.InternRepo.Seed(i)
	return i
}

func TestAssignIntern(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	seedActiveIntern(t, f)

	events := &testutils.RecordingPublisher{}
	h := command.NewAssignInternHandler(f, events)

	// At least one of supervisor or department must be given.
	_, err := h.Handle(context.Background(), command.AssignInternCommand{
		Actor:    adminActor,
		InternID: "intern-1",
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Empty(t, events.Types())

	assigned, err := h.Handle(context.Background(), command.AssignInternCommand{
		Actor:        adminActor,
		InternID:     "intern-1",
		SupervisorID: "sup-1",
		DepartmentID: "dept-eng",
	})
	require.NoError(t, err)
	assert.Equal(t, "sup-1", assigned.SupervisorID)
	assert.Equal(t, "dept-eng", assigned.DepartmentID)

	// Reassignment overwrites.
	reassigned, err := h.Handle(context.Background(), command.AssignInternCommand{
		Actor:        supervisorActor,
		InternID:     "intern-1",
		SupervisorID: "sup-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "sup-2", reassigned.SupervisorID)
	assert.Equal(t, "dept-eng", reassigned.DepartmentID)

	// Every successful assignment announces itself so read-side caches of the
	// intern card get dropped.
	require.Equal(t, []shared.EventType{shared.EventInternAssigned, shared.EventInternAssigned}, events.Types())
	assert.Equal(t, "intern-1", events.Events[0].AggregateID())
	assert.Equal(t, "sup-2", events.Events[1].Payload()["supervisor_id"])
}

func TestSuspendAndUnsuspendIntern(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	seedActiveIntern(t, f)

	events := &testutils.RecordingPublisher{}
	suspendH := command.NewSuspendInternHandler(f, events)

	_, err := suspendH.Handle(context.Background(), command.SuspendInternCommand{
		Actor:    supervisorActor,
		InternID: "intern-1",
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	suspended, err := suspendH.Handle(context.Background(), command.SuspendInternCommand{
		Actor:    supervisorActor,
		InternID: "intern-1",
		Reason:   "unexcused absence",
	})
	require.NoError(t, err)
	assert.True(t, suspended.IsSuspended)
	assert.Equal(t, intern.StatusActive, suspended.Status)

	unsuspendH := command.NewUnsuspendInternHandler(f, events)
	restored, err := unsuspendH.Handle(context.Background(), command.UnsuspendInternCommand{
		Actor:    adminActor,
		InternID: "intern-1",
	})
	require.NoError(t, err)
	assert.False(t, restored.IsSuspended)

	assert.Equal(t, []shared.EventType{shared.EventInternSuspended, shared.EventInternUnsuspended}, events.Types())
}

func TestCompleteIntern(t *testing.T) {
	t.Run("completes a suspended intern and clears the flag", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		seedActiveIntern(t, f)

		suspendH := command.NewSuspendInternHandler(f, nil)
		_, err := suspendH.Handle(context.Background(), command.SuspendInternCommand{
			Actor: adminActor, InternID: "intern-1", Reason: "pending review",
		})
		require.NoError(t, err)

		notifier := &testutils.RecordingNotifier{}
		h := command.NewCompleteInternHandler(f, notifier, nil)
		completed, err := h.Handle(context.Background(), command.CompleteInternCommand{
			Actor:           adminActor,
			InternID:        "intern-1",
			FinalEvaluation: 3.7,
			CompletionNotes: "solid work",
		})
		require.NoError(t, err)
		assert.Equal(t, intern.StatusCompleted, completed.Status)
		assert.False(t, completed.IsSuspended)
		require.NotNil(t, completed.EndDate)

		sent := notifier.ByEvent(string(shared.EventInternCompleted))
		require.Len(t, sent, 1)
		assert.Equal(t, "acc-1", sent[0].Recipient)
	})

	t.Run("evaluation bounds enforced", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		seedActiveIntern(t, f)

		h := command.NewCompleteInternHandler(f, nil, nil)
		_, err := h.Handle(context.Background(), command.CompleteInternCommand{
			Actor: adminActor, InternID: "intern-1", FinalEvaluation: 4.2,
		})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("intern actor is forbidden", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		seedActiveIntern(t, f)

		h := command.NewCompleteInternHandler(f, nil, nil)
		_, err := h.Handle(context.Background(), command.CompleteInternCommand{
			Actor:    shared.Actor{ID: "intern-1", Role: shared.RoleIntern},
			InternID: "intern-1", FinalEvaluation: 3.0,
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestTerminateIntern(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	seedActiveIntern(t, f)

	h := command.NewTerminateInternHandler(f, nil)
	terminated, err := h.Handle(context.Background(), command.TerminateInternCommand{
		Actor:    supervisorActor,
		InternID: "intern-1",
		Reason:   "conduct violation",
	})
	require.NoError(t, err)
	assert.Equal(t, intern.StatusTerminated, terminated.Status)

	// Terminal status blocks further lifecycle commands.
	completeH := command.NewCompleteInternHandler(f, nil, nil)
	_, err = completeH.Handle(context.Background(), command.CompleteInternCommand{
		Actor: adminActor, InternID: "intern-1", FinalEvaluation: 3.0,
	})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestIssueCertificate(t *testing.T) {
	setupCompleted := func(t *testing.T) *testutils.FakeUoWFactory {
		f := testutils.NewFakeUoWFactory()
		seedActiveIntern(t, f)
		h := command.NewCompleteInternHandler(f, nil, nil)
		_, err := h.Handle(context.Background(), command.CompleteInternCommand{
			Actor: adminActor, InternID: "intern-1", FinalEvaluation: 3.9,
		})
		require.NoError(t, err)
		return f
	}

	t.Run("repeat issue with the same reference is idempotent", func(t *testing.T) {
		f := setupCompleted(t)

		notifier := &testutils.RecordingNotifier{}
		h := command.NewIssueCertificateHandler(f, notifier, nil)

		first, err := h.Handle(context.Background(), command.IssueCertificateCommand{
			Actor: adminActor, InternID: "intern-1", CertificateRef: "certs/intern-1.pdf",
		})
		require.NoError(t, err)
		assert.True(t, first.CertificateIssued)

		second, err := h.Handle(context.Background(), command.IssueCertificateCommand{
			Actor: adminActor, InternID: "intern-1", CertificateRef: "certs/intern-1.pdf",
		})
		require.NoError(t, err)
		assert.True(t, second.CertificateIssued)

		// Only the first issue announces.
		assert.Len(t, notifier.ByEvent(string(shared.EventInternCertificateIssued)), 1)
	})

	t.Run("different reference conflicts", func(t *testing.T) {
		f := setupCompleted(t)
		h := command.NewIssueCertificateHandler(f, nil, nil)

		_, err := h.Handle(context.Background(), command.IssueCertificateCommand{
			Actor: adminActor, InternID: "intern-1", CertificateRef: "certs/a.pdf",
		})
		require.NoError(t, err)

		_, err = h.Handle(context.Background(), command.IssueCertificateCommand{
			Actor: adminActor, InternID: "intern-1", CertificateRef: "certs/b.pdf",
		})
		assert.ErrorIs(t, err, shared.ErrConflict)
	})

	t.Run("supervisor cannot issue", func(t *testing.T) {
		f := setupCompleted(t)
		h := command.NewIssueCertificateHandler(f, nil, nil)

		_, err := h.Handle(context.Background(), command.IssueCertificateCommand{
			Actor: supervisorActor, InternID: "intern-1", CertificateRef: "certs/a.pdf",
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestUpdateInternProfile(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	seedActiveIntern(t, f)

	events := &testutils.RecordingPublisher{}
	h := command.NewUpdateInternProfileHandler(f, events)
	updated, err := h.Handle(context.Background(), command.UpdateInternProfileCommand{
		Actor:          supervisorActor,
		InternID:       "intern-1",
		Skills:         []string{"go", "postgres", "go"},
		InterviewNotes: "asks good questions",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "postgres"}, updated.Skills)

	require.Equal(t, []shared.EventType{shared.EventInternProfileUpdated}, events.Types())
	assert.Equal(t, "intern-1", events.Events[0].AggregateID())
}
