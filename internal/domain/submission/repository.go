package submission

import (
	"context"
)

// Repository defines the persistence contract for submissions.
type Repository interface {
	// Create persists a new submission.
	Create(ctx context.Context, s *Submission) error

	// GetByID returns a submission by ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Submission, error)

	// Transition writes the submission only if its persisted status still
	// equals from; a lost race surfaces as shared.ErrInvalidState.
	Transition(ctx context.Context, s *Submission, from Status) error

	// ListByIntern returns an intern's submissions, newest first.
	ListByIntern(ctx context.Context, internID string) ([]*Submission, error)

	// CountPendingByIntern counts undecided submissions for an intern.
	CountPendingByIntern(ctx context.Context, internID string) (int, error)
}
