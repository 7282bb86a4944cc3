package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

func newPendingSubmission(t *testing.T) *Submission {
	t.Helper()
	s, err := NewSubmission(NewSubmissionParams{
		ID:       "sub-1",
		InternID: "intern-1",
		Title:    "Week 3 report",
		FileRef:  "files/report-3.pdf",
	})
	require.NoError(t, err)
	return s
}

func TestNewSubmission_Validation(t *testing.T) {
	_, err := NewSubmission(NewSubmissionParams{ID: "sub-1", InternID: "intern-1", Title: " ", FileRef: "f"})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = NewSubmission(NewSubmissionParams{ID: "sub-1", InternID: "intern-1", Title: "ok", FileRef: ""})
	assert.ErrorIs(t, err, shared.ErrValidation)

	s := newPendingSubmission(t)
	assert.Equal(t, StatusPending, s.Status)
	assert.False(t, s.Status.IsDecided())
}

func TestSubmission_Review(t *testing.T) {
	t.Run("approval needs no feedback", func(t *testing.T) {
		s := newPendingSubmission(t)
		require.NoError(t, s.Review("sup-1", DecisionApprove, ""))
		assert.Equal(t, StatusApproved, s.Status)
		assert.Equal(t, "sup-1", s.ReviewedBy)
		require.NotNil(t, s.ReviewedAt)
	})

	t.Run("non-approving decisions require feedback", func(t *testing.T) {
		for _, d := range []Decision{DecisionReject, DecisionNeedsRevision} {
			s := newPendingSubmission(t)
			err := s.Review("sup-1", d, "  ")
			assert.ErrorIs(t, err, shared.ErrValidation)

			require.NoError(t, s.Review("sup-1", d, "missing benchmarks"))
			assert.Equal(t, Status(d), s.Status)
			assert.Equal(t, "missing benchmarks", s.Feedback)
		}
	})

	t.Run("second review loses", func(t *testing.T) {
		s := newPendingSubmission(t)
		require.NoError(t, s.Review("sup-1", DecisionApprove, ""))

		err := s.Review("sup-2", DecisionReject, "overruled")
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Equal(t, StatusApproved, s.Status)
		assert.Equal(t, "sup-1", s.ReviewedBy)
	})

	t.Run("unknown decision", func(t *testing.T) {
		s := newPendingSubmission(t)
		err := s.Review("sup-1", Decision("SHRUG"), "")
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}
