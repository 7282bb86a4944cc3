package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

func newPendingApplication(t *testing.T) *Application {
	t.Helper()
	app, err := NewApplication(NewApplicationParams{
		ID:           "app-1",
		UniversityID: "uni-1",
		Name:         "Spring Batch",
		AcademicYear: "2025/2026",
		LetterRef:    "letters/official-1.pdf",
	})
	require.NoError(t, err)
	return app
}

func TestAcademicYear_IsValid(t *testing.T) {
	assert.True(t, AcademicYear("2025/2026").IsValid())
	assert.False(t, AcademicYear("2025/2027").IsValid())
	assert.False(t, AcademicYear("2025-2026").IsValid())
	assert.False(t, AcademicYear("25/26").IsValid())
	assert.False(t, AcademicYear("").IsValid())
}

func TestNewApplication_Validation(t *testing.T) {
	_, err := NewApplication(NewApplicationParams{
		ID:           "app-1",
		UniversityID: "uni-1",
		Name:         "",
		AcademicYear: "2025/2026",
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = NewApplication(NewApplicationParams{
		ID:           "app-1",
		UniversityID: "uni-1",
		Name:         "Batch",
		AcademicYear: "2025/2028",
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	app := newPendingApplication(t)
	assert.Equal(t, StatusPending, app.Status)
	assert.Empty(t, app.ReviewedBy)
	assert.Nil(t, app.ReviewedAt)
}

func TestApplication_Submit(t *testing.T) {
	t.Run("without candidates fails precondition", func(t *testing.T) {
		app := newPendingApplication(t)
		err := app.Submit(0)
		assert.ErrorIs(t, err, shared.ErrPreconditionFailed)
		assert.Equal(t, StatusPending, app.Status)
	})

	t.Run("without letter fails precondition", func(t *testing.T) {
		app := newPendingApplication(t)
		app.LetterRef = ""
		err := app.Submit(3)
		assert.ErrorIs(t, err, shared.ErrPreconditionFailed)
	})

	t.Run("moves to under review", func(t *testing.T) {
		app := newPendingApplication(t)
		require.NoError(t, app.Submit(3))
		assert.Equal(t, StatusUnderReview, app.Status)
	})

	t.Run("only from pending", func(t *testing.T) {
		app := newPendingApplication(t)
		require.NoError(t, app.Submit(1))
		err := app.Submit(1)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestApplication_Review(t *testing.T) {
	t.Run("approve stamps reviewer", func(t *testing.T) {
		app := newPendingApplication(t)
		require.NoError(t, app.Submit(2))

		require.NoError(t, app.Review("admin-7", DecisionApprove, ""))
		assert.Equal(t, StatusApproved, app.Status)
		assert.Equal(t, "admin-7", app.ReviewedBy)
		require.NotNil(t, app.ReviewedAt)
		assert.Empty(t, app.RejectionReason)
	})

	t.Run("reject requires reason", func(t *testing.T) {
		app := newPendingApplication(t)
		require.NoError(t, app.Submit(2))

		err := app.Review("admin-7", DecisionReject, "  ")
		assert.ErrorIs(t, err, shared.ErrValidation)

		require.NoError(t, app.Review("admin-7", DecisionReject, "incomplete paperwork"))
		assert.Equal(t, StatusRejected, app.Status)
		assert.Equal(t, "incomplete paperwork", app.RejectionReason)
	})

	t.Run("second review loses", func(t *testing.T) {
		app := newPendingApplication(t)
		require.NoError(t, app.Submit(2))
		require.NoError(t, app.Review("admin-7", DecisionApprove, ""))

		err := app.Review("admin-8", DecisionReject, "changed my mind")
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Equal(t, "admin-7", app.ReviewedBy)
	})

	t.Run("unknown decision", func(t *testing.T) {
		app := newPendingApplication(t)
		require.NoError(t, app.Submit(2))
		err := app.Review("admin-7", Decision("MAYBE"), "")
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestApplication_Archive(t *testing.T) {
	app := newPendingApplication(t)
	err := app.Archive()
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	require.NoError(t, app.Submit(1))
	require.NoError(t, app.Review("admin-1", DecisionApprove, ""))
	require.NoError(t, app.Archive())
	assert.Equal(t, StatusArchived, app.Status)
	assert.True(t, app.Status.IsTerminal())
}

func TestApplication_UpdateDetails(t *testing.T) {
	app := newPendingApplication(t)
	require.NoError(t, app.UpdateDetails("Autumn Batch", "2026/2027", "letters/updated.pdf"))
	assert.Equal(t, "Autumn Batch", app.Name)
	assert.Equal(t, AcademicYear("2026/2027"), app.AcademicYear)

	require.NoError(t, app.Submit(1))
	err := app.UpdateDetails("Too Late", "2026/2027", "")
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}
