package application

import (
	"context"
)

// Repository defines the persistence contract for applications.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// Create persists a new application.
	// Returns ErrAlreadyExists on an ID collision.
	Create(ctx context.Context, app *Application) error

	// GetByID returns an application by ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Application, error)

	// Update writes the application's mutable fields without a status
	// change. Returns ErrNotFound if the row is missing.
	Update(ctx context.Context, app *Application) error

	// Transition writes the application only if its persisted status still
	// equals from. A lost race (zero rows updated for an existing row)
	// surfaces as shared.ErrInvalidState so the caller can tell
	// "someone else already decided this" from a missing entity.
	Transition(ctx context.Context, app *Application, from Status) error

	// ListByUniversity returns a university's applications.
	ListByUniversity(ctx context.Context, universityID string, opts ListOptions) ([]*Application, error)

	// ListByStatus returns applications with the given status.
	ListByStatus(ctx context.Context, status Status, opts ListOptions) ([]*Application, error)
}

// ListOptions contains pagination and ordering parameters.
type ListOptions struct {
	Offset   int
	Limit    int
	SortBy   string
	SortDesc bool
}

// DefaultListOptions returns the default listing parameters.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 50, SortBy: "created_at", SortDesc: true}
}
