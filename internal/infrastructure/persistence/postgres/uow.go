package postgres

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/intern-hub/intern-placement-hub/internal/application/command"
	"github.com/intern-hub/intern-placement-hub/internal/domain/application"
	"github.com/intern-hub/intern-placement-hub/internal/domain/candidate"
	"github.com/intern-hub/intern-placement-hub/internal/domain/intern"
	"github.com/intern-hub/intern-placement-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// UNIT OF WORK
// One pgx transaction, all repositories bound to it. Handlers defer Rollback
// unconditionally; after a successful Commit it is a no-op.
// ══════════════════════════════════════════════════════════════════════════════

// UnitOfWork implements command.UnitOfWork on a pgx transaction.
type UnitOfWork struct {
	tx pgx.Tx

	mu   sync.Mutex
	done bool

	applications *ApplicationRepository
	candidates   *CandidateRepository
	interns      *InternRepository
	submissions  *SubmissionRepository
}

// UnitOfWorkFactory implements command.UnitOfWorkFactory.
type UnitOfWorkFactory struct {
	conn *Connection
}

// NewUnitOfWorkFactory creates the factory.
func NewUnitOfWorkFactory(conn *Connection) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{conn: conn}
}

// Begin opens a transaction and binds all repositories to it.
func (f *UnitOfWorkFactory) Begin(ctx context.Context) (command.UnitOfWork, error) {
	tx, err := f.conn.BeginTx(ctx, DefaultTxOptions())
	if err != nil {
		return nil, err
	}

	return &UnitOfWork{
		tx:           tx,
		applications: NewApplicationRepository(tx),
		candidates:   NewCandidateRepository(tx),
		interns:      NewInternRepository(tx),
		submissions:  NewSubmissionRepository(tx),
	}, nil
}

// Applications returns the application repository bound to this transaction.
func (u *UnitOfWork) Applications() application.Repository { return u.applications }

// Candidates returns the candidate repository bound to this transaction.
func (u *UnitOfWork) Candidates() candidate.Repository { return u.candidates }

// Interns returns the intern repository bound to this transaction.
func (u *UnitOfWork) Interns() intern.Repository { return u.interns }

// Submissions returns the submission repository bound to this transaction.
func (u *UnitOfWork) Submissions() submission.Repository { return u.submissions }

// Commit commits the transaction.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.done {
		return ErrTransactionFailed
	}
	u.done = true
	return u.tx.Commit(ctx)
}

// Rollback rolls the transaction back. After Commit it is a no-op.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Rollback(ctx)
}
