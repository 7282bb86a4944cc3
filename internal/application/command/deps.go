// Package command contains write operations (CQRS - Commands). Each
// lifecycle transition is one handler: it opens a unit of work, loads the
// entity, authorizes the actor, applies the domain transition, and writes the
// new state with a status-qualified update so concurrent transitions cannot
// both succeed. Notifications are dispatched only after the commit and never
// fail the operation.
package command

import (
	"context"

	"github.com/intern-hub/intern-placement-hub/internal/domain/application"
	"github.com/intern-hub/intern-placement-hub/internal/domain/candidate"
	"github.com/intern-hub/intern-placement-hub/internal/domain/intern"
	"github.com/intern-hub/intern-placement-hub/internal/domain/submission"
)

// UnitOfWork scopes all repositories to one database transaction. Every
// command handler performs its reads and writes through a single unit so a
// transition is atomic, including cross-entity cascades.
type UnitOfWork interface {
	// Applications returns the application repository bound to this unit.
	Applications() application.Repository

	// Candidates returns the candidate repository bound to this unit.
	Candidates() candidate.Repository

	// Interns returns the intern repository bound to this unit.
	Interns() intern.Repository

	// Submissions returns the submission repository bound to this unit.
	Submissions() submission.Repository

	// Commit commits the transaction.
	Commit(ctx context.Context) error

	// Rollback rolls the transaction back. Calling Rollback after a
	// successful Commit is a no-op, so handlers defer it unconditionally.
	Rollback(ctx context.Context) error
}

// UnitOfWorkFactory begins new units of work.
type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// Notifier is the outbound notification dispatcher boundary. Dispatch is
// best-effort and fire-and-forget: implementations log failures, and
// handlers invoke Send only after the transaction has committed.
type Notifier interface {
	Send(ctx context.Context, eventName, recipient string, payload map[string]any) error
}

// IssuedAccount is the result of creating a login account.
type IssuedAccount struct {
	// AccountID - identifier of the created account.
	AccountID string

	// TemporaryCredential - one-time plaintext credential. It rides once
	// in the account-created notification and is never persisted.
	TemporaryCredential string
}

// AccountIssuer creates login-capable accounts during intern promotion.
// A failure here aborts the whole promotion.
type AccountIssuer interface {
	CreateAccount(ctx context.Context, email, role string) (*IssuedAccount, error)
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	GenerateID() string
}
