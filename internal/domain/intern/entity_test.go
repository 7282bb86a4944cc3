package intern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

func newActiveIntern(t *testing.T) *Intern {
	t.Helper()
	i, err := NewIntern(NewInternParams{
		ID:          "intern-1",
		InternID:    GenerateInternID(2026, "a1b2c3"),
		CandidateID: "cand-1",
		StartDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return i
}

func TestGenerateInternID(t *testing.T) {
	assert.Equal(t, "INT-2026-A1B2C3", GenerateInternID(2026, "a1b2c3"))
}

func TestNewIntern_Defaults(t *testing.T) {
	i := newActiveIntern(t)
	assert.Equal(t, StatusActive, i.Status)
	assert.True(t, i.IsActive)
	assert.False(t, i.IsSuspended)
	assert.True(t, i.CanSubmitWork())
}

func TestIntern_SuspendUnsuspend(t *testing.T) {
	i := newActiveIntern(t)

	err := i.Suspend("  ")
	assert.ErrorIs(t, err, shared.ErrValidation)

	require.NoError(t, i.Suspend("missed two weeks without notice"))
	assert.True(t, i.IsSuspended)
	assert.Equal(t, StatusActive, i.Status)
	assert.False(t, i.CanSubmitWork())

	err = i.Suspend("again")
	assert.ErrorIs(t, err, shared.ErrConflict)

	require.NoError(t, i.Unsuspend())
	assert.False(t, i.IsSuspended)
	assert.Empty(t, i.SuspensionReason)

	err = i.Unsuspend()
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestIntern_Complete(t *testing.T) {
	t.Run("evaluation out of range", func(t *testing.T) {
		i := newActiveIntern(t)
		assert.ErrorIs(t, i.Complete(4.5, ""), shared.ErrValidation)
		assert.ErrorIs(t, i.Complete(-0.1, ""), shared.ErrValidation)
	})

	t.Run("completes while suspended and clears the flag", func(t *testing.T) {
		i := newActiveIntern(t)
		require.NoError(t, i.Suspend("pending investigation"))

		require.NoError(t, i.Complete(3.5, "strong finish"))
		assert.Equal(t, StatusCompleted, i.Status)
		assert.False(t, i.IsSuspended)
		assert.Empty(t, i.SuspensionReason)
		assert.False(t, i.IsActive)
		require.NotNil(t, i.FinalEvaluation)
		assert.InDelta(t, 3.5, *i.FinalEvaluation, 0.001)
		require.NotNil(t, i.EndDate)
	})

	t.Run("terminal status rejects further transitions", func(t *testing.T) {
		i := newActiveIntern(t)
		require.NoError(t, i.Complete(4.0, ""))

		assert.ErrorIs(t, i.Complete(3.0, ""), shared.ErrInvalidState)
		assert.ErrorIs(t, i.Terminate("late"), shared.ErrInvalidState)
		assert.ErrorIs(t, i.Suspend("late"), shared.ErrInvalidState)
	})
}

func TestIntern_Terminate(t *testing.T) {
	i := newActiveIntern(t)

	err := i.Terminate(" ")
	assert.ErrorIs(t, err, shared.ErrValidation)

	require.NoError(t, i.Terminate("violation of conduct rules"))
	assert.Equal(t, StatusTerminated, i.Status)
	assert.Equal(t, "violation of conduct rules", i.TerminationReason)
	require.NotNil(t, i.EndDate)

	err = i.AssignSupervisor("sup-1")
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	err = i.UpdateProfile([]string{"go"}, "")
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestIntern_IssueCertificate(t *testing.T) {
	i := newActiveIntern(t)

	// Only for completed interns.
	err := i.IssueCertificate("certs/2026/intern-1.pdf")
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	require.NoError(t, i.Complete(3.8, ""))
	require.NoError(t, i.IssueCertificate("certs/2026/intern-1.pdf"))
	assert.True(t, i.CertificateIssued)

	// Same reference is idempotent.
	require.NoError(t, i.IssueCertificate("certs/2026/intern-1.pdf"))

	// A different reference is a conflict.
	err = i.IssueCertificate("certs/2026/other.pdf")
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.Equal(t, "certs/2026/intern-1.pdf", i.CertificateRef)
}

func TestIntern_UpdateProfile_DeduplicatesSkills(t *testing.T) {
	i := newActiveIntern(t)
	require.NoError(t, i.UpdateProfile([]string{"go", " go ", "sql", "", "go"}, "quick learner"))
	assert.Equal(t, []string{"go", "sql"}, i.Skills)
	assert.Equal(t, "quick learner", i.InterviewNotes)
}

func TestIntern_LinkAccount(t *testing.T) {
	i := newActiveIntern(t)
	require.NoError(t, i.LinkAccount("acc-1"))

	// Linking the same account again is fine; a different one conflicts.
	require.NoError(t, i.LinkAccount("acc-1"))
	assert.ErrorIs(t, i.LinkAccount("acc-2"), shared.ErrConflict)
}
