package intern

import (
	"context"
)

// Repository defines the persistence contract for interns.
type Repository interface {
	// Create persists a new intern.
	// Returns ErrAlreadyPromoted when the candidate already has an intern
	// (unique candidate back-reference).
	Create(ctx context.Context, i *Intern) error

	// GetByID returns an intern by internal ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Intern, error)

	// GetByCandidateID returns the intern promoted from the given
	// candidate, or ErrNotFound.
	GetByCandidateID(ctx context.Context, candidateID string) (*Intern, error)

	// Update writes mutable fields without a status change.
	Update(ctx context.Context, i *Intern) error

	// Transition writes the intern only if its persisted status still
	// equals from; a lost race surfaces as shared.ErrInvalidState.
	Transition(ctx context.Context, i *Intern, from Status) error

	// ListByStatus returns interns with the given status.
	ListByStatus(ctx context.Context, status Status, opts ListOptions) ([]*Intern, error)

	// ListBySupervisor returns interns assigned to a supervisor.
	ListBySupervisor(ctx context.Context, supervisorID string, opts ListOptions) ([]*Intern, error)
}

// ListOptions contains pagination parameters for intern listings.
type ListOptions struct {
	Offset int
	Limit  int
}

// DefaultListOptions returns the default listing parameters.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 50}
}
