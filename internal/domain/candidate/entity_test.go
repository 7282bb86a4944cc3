package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

func newPendingCandidate(t *testing.T) *Candidate {
	t.Helper()
	c, err := NewCandidate(NewCandidateParams{
		ID:            "cand-1",
		ApplicationID: "app-1",
		FullName:      "Aset Nurlanov",
		StudentID:     "STU-2025-001",
		FieldOfStudy:  "Computer Science",
		AcademicYear:  "2025/2026",
		Email:         "aset@example.edu",
		CVRef:         "docs/cv-1.pdf",
		TranscriptRef: "docs/tr-1.pdf",
	})
	require.NoError(t, err)
	return c
}

func TestNewCandidate_Validation(t *testing.T) {
	_, err := NewCandidate(NewCandidateParams{
		ID:            "cand-1",
		ApplicationID: "app-1",
		FullName:      "Aset",
		StudentID:     "",
		FieldOfStudy:  "CS",
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = NewCandidate(NewCandidateParams{
		ID:            "cand-1",
		ApplicationID: "app-1",
		FullName:      "Aset",
		StudentID:     "STU-1",
		FieldOfStudy:  " ",
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	c := newPendingCandidate(t)
	assert.Equal(t, StatusPendingReview, c.Status)
	assert.False(t, c.Deleted)
}

func TestCandidate_Review(t *testing.T) {
	t.Run("accept lands in awaiting arrival", func(t *testing.T) {
		c := newPendingCandidate(t)
		require.NoError(t, c.Review(DecisionAccept, ""))
		assert.Equal(t, StatusAwaitingArrival, c.Status)
	})

	t.Run("reject requires reason", func(t *testing.T) {
		c := newPendingCandidate(t)
		err := c.Review(DecisionReject, "")
		assert.ErrorIs(t, err, shared.ErrValidation)

		require.NoError(t, c.Review(DecisionReject, "grades below threshold"))
		assert.Equal(t, StatusRejected, c.Status)
		assert.Equal(t, "grades below threshold", c.RejectionReason)
		assert.True(t, c.Status.IsTerminal())
	})

	t.Run("second review loses", func(t *testing.T) {
		c := newPendingCandidate(t)
		require.NoError(t, c.Review(DecisionAccept, ""))
		err := c.Review(DecisionReject, "too late")
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestCandidate_Arrival(t *testing.T) {
	c := newPendingCandidate(t)

	// Cannot arrive before acceptance.
	err := c.MarkArrived()
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	require.NoError(t, c.Review(DecisionAccept, ""))
	require.NoError(t, c.MarkArrived())
	assert.Equal(t, StatusArrived, c.Status)

	// Repeated arrival loses.
	err = c.MarkArrived()
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	require.NoError(t, c.MarkAccountCreated())
	assert.Equal(t, StatusAccountCreated, c.Status)
	assert.True(t, c.Status.IsTerminal())
}

func TestCandidate_SoftDelete(t *testing.T) {
	c := newPendingCandidate(t)
	require.NoError(t, c.SoftDelete())
	assert.True(t, c.Deleted)
	assert.Empty(t, c.CVRef)
	assert.Empty(t, c.TranscriptRef)

	err := c.SoftDelete()
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	err = c.UpdateDetails("New Name", "CS", "", "", "", "")
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}
