package candidate

import (
	"context"
)

// Repository defines the persistence contract for candidates.
type Repository interface {
	// Create persists a new candidate.
	// Returns ErrStudentIDTaken when the student identifier is already in
	// use anywhere in the system.
	Create(ctx context.Context, c *Candidate) error

	// GetByID returns a candidate by internal ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Candidate, error)

	// GetByStudentID returns a candidate by the human-readable student
	// identifier, or ErrNotFound.
	GetByStudentID(ctx context.Context, studentID string) (*Candidate, error)

	// Update writes mutable fields without a status change. The global
	// StudentID uniqueness check also applies here.
	Update(ctx context.Context, c *Candidate) error

	// Transition writes the candidate only if its persisted status still
	// equals from; a lost race surfaces as shared.ErrInvalidState.
	Transition(ctx context.Context, c *Candidate, from Status) error

	// ListByApplication returns the application's non-deleted candidates.
	ListByApplication(ctx context.Context, applicationID string) ([]*Candidate, error)

	// CountByApplication counts non-deleted candidates in an application.
	CountByApplication(ctx context.Context, applicationID string) (int, error)

	// ExistsByStudentID checks global student-identifier uniqueness,
	// ignoring the candidate identified by excludeID (for updates).
	ExistsByStudentID(ctx context.Context, studentID, excludeID string) (bool, error)
}
