package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intern-hub/intern-placement-hub/internal/application/command"
	"github.com/intern-hub/intern-placement-hub/internal/domain/application"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/internal/testutils"
)

var (
	uniActor   = shared.Actor{ID: "user-uni", Role: shared.RoleUniversity, UniversityID: "uni-1"}
	otherUni   = shared.Actor{ID: "user-other", Role: shared.RoleUniversity, UniversityID: "uni-2"}
	adminActor = shared.Actor{ID: "admin-1", Role: shared.RoleAdmin}
)

func createApplication(t *testing.T, f *testutils.FakeUoWFactory) *application.Application {
	t.Helper()
	h := command.NewCreateApplicationHandler(f, &testutils.SeqIDGenerator{Prefix: "app"}, nil)
	app, err := h.Handle(context.Background(), command.CreateApplicationCommand{
		Actor:        uniActor,
		Name:         "Spring Batch",
		AcademicYear: "2025/2026",
		LetterRef:    "letters/official.pdf",
	})
	require.NoError(t, err)
	return app
}

func addCandidate(t *testing.T, f *testutils.FakeUoWFactory, appID, studentID string) {
	t.Helper()
	h := command.NewAddCandidateHandler(f, &testutils.SeqIDGenerator{Prefix: "cand-" + studentID}, nil)
	_, err := h.Handle(context.Background(), command.AddCandidateCommand{
		Actor:         uniActor,
		ApplicationID: appID,
		FullName:      "Student " + studentID,
		StudentID:     studentID,
		FieldOfStudy:  "Computer Science",
	})
	require.NoError(t, err)
}

func TestCreateApplication(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	app := createApplication(t, f)

	assert.Equal(t, application.StatusPending, app.Status)
	assert.Equal(t, "uni-1", app.UniversityID)
	assert.True(t, f.LastUnit().Committed)

	// Only universities may create applications.
	h := command.NewCreateApplicationHandler(f, &testutils.SeqIDGenerator{}, nil)
	_, err := h.Handle(context.Background(), command.CreateApplicationCommand{
		Actor:        adminActor,
		Name:         "Admin Batch",
		AcademicYear: "2025/2026",
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestSubmitApplication(t *testing.T) {
	t.Run("without candidates fails and rolls back", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		app := createApplication(t, f)

		notifier := &testutils.RecordingNotifier{}
		h := command.NewSubmitApplicationHandler(f, notifier, nil)
		_, err := h.Handle(context.Background(), command.SubmitApplicationCommand{
			Actor:         uniActor,
			ApplicationID: app.ID,
		})
		assert.ErrorIs(t, err, shared.ErrPreconditionFailed)
		assert.False(t, f.LastUnit().Committed)
		assert.True(t, f.LastUnit().RolledBack)
		assert.Empty(t, notifier.Sent)

		stored, err := f.ApplicationRepo.GetByID(context.Background(), app.ID)
		require.NoError(t, err)
		assert.Equal(t, application.StatusPending, stored.Status)
	})

	t.Run("with a candidate moves to under review and notifies", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		app := createApplication(t, f)
		addCandidate(t, f, app.ID, "STU-001")

		events := &testutils.RecordingPublisher{}
		notifier := &testutils.RecordingNotifier{}
		h := command.NewSubmitApplicationHandler(f, notifier, events)

		submitted, err := h.Handle(context.Background(), command.SubmitApplicationCommand{
			Actor:         uniActor,
			ApplicationID: app.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, application.StatusUnderReview, submitted.Status)
		assert.Equal(t, []shared.EventType{shared.EventApplicationSubmitted}, events.Types())

		sent := notifier.ByEvent(string(shared.EventApplicationSubmitted))
		require.Len(t, sent, 1)
		assert.Equal(t, "uni-1", sent[0].Recipient)
	})

	t.Run("foreign university is forbidden", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		app := createApplication(t, f)
		addCandidate(t, f, app.ID, "STU-001")

		h := command.NewSubmitApplicationHandler(f, nil, nil)
		_, err := h.Handle(context.Background(), command.SubmitApplicationCommand{
			Actor:         otherUni,
			ApplicationID: app.ID,
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestReviewApplication(t *testing.T) {
	submit := func(t *testing.T, f *testutils.FakeUoWFactory) *application.Application {
		app := createApplication(t, f)
		addCandidate(t, f, app.ID, "STU-001")
		h := command.NewSubmitApplicationHandler(f, nil, nil)
		submitted, err := h.Handle(context.Background(), command.SubmitApplicationCommand{
			Actor:         uniActor,
			ApplicationID: app.ID,
		})
		require.NoError(t, err)
		return submitted
	}

	t.Run("approve stamps the reviewer", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		app := submit(t, f)

		notifier := &testutils.RecordingNotifier{}
		h := command.NewReviewApplicationHandler(f, notifier, nil)
		reviewed, err := h.Handle(context.Background(), command.ReviewApplicationCommand{
			Actor:         adminActor,
			ApplicationID: app.ID,
			Decision:      application.DecisionApprove,
		})
		require.NoError(t, err)
		assert.Equal(t, application.StatusApproved, reviewed.Status)
		assert.Equal(t, "admin-1", reviewed.ReviewedBy)
		require.NotNil(t, reviewed.ReviewedAt)
		require.Len(t, notifier.Sent, 1)
	})

	t.Run("second decision observes the first", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		app := submit(t, f)

		h := command.NewReviewApplicationHandler(f, nil, nil)
		_, err := h.Handle(context.Background(), command.ReviewApplicationCommand{
			Actor:         adminActor,
			ApplicationID: app.ID,
			Decision:      application.DecisionApprove,
		})
		require.NoError(t, err)

		_, err = h.Handle(context.Background(), command.ReviewApplicationCommand{
			Actor:           adminActor,
			ApplicationID:   app.ID,
			Decision:        application.DecisionReject,
			RejectionReason: "changed my mind",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("university cannot review", func(t *testing.T) {
		f := testutils.NewFakeUoWFactory()
		app := submit(t, f)

		h := command.NewReviewApplicationHandler(f, nil, nil)
		_, err := h.Handle(context.Background(), command.ReviewApplicationCommand{
			Actor:         uniActor,
			ApplicationID: app.ID,
			Decision:      application.DecisionApprove,
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestArchiveApplication(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	app := createApplication(t, f)
	addCandidate(t, f, app.ID, "STU-001")

	submitH := command.NewSubmitApplicationHandler(f, nil, nil)
	_, err := submitH.Handle(context.Background(), command.SubmitApplicationCommand{Actor: uniActor, ApplicationID: app.ID})
	require.NoError(t, err)

	archiveH := command.NewArchiveApplicationHandler(f, nil)

	// Undecided applications cannot be archived.
	_, err = archiveH.Handle(context.Background(), command.ArchiveApplicationCommand{Actor: adminActor, ApplicationID: app.ID})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	reviewH := command.NewReviewApplicationHandler(f, nil, nil)
	_, err = reviewH.Handle(context.Background(), command.ReviewApplicationCommand{
		Actor: adminActor, ApplicationID: app.ID, Decision: application.DecisionApprove,
	})
	require.NoError(t, err)

	archived, err := archiveH.Handle(context.Background(), command.ArchiveApplicationCommand{Actor: adminActor, ApplicationID: app.ID})
	require.NoError(t, err)
	assert.Equal(t, application.StatusArchived, archived.Status)
}

func TestUpdateApplication(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	app := createApplication(t, f)

	h := command.NewUpdateApplicationHandler(f)
	updated, err := h.Handle(context.Background(), command.UpdateApplicationCommand{
		Actor:         uniActor,
		ApplicationID: app.ID,
		Name:          "Autumn Batch",
		AcademicYear:  "2026/2027",
		LetterRef:     "letters/v2.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "Autumn Batch", updated.Name)

	_, err = h.Handle(context.Background(), command.UpdateApplicationCommand{
		Actor:         otherUni,
		ApplicationID: app.ID,
		Name:          "Hijacked",
		AcademicYear:  "2026/2027",
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}
