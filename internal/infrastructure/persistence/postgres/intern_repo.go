package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/intern-hub/intern-placement-hub/internal/domain/intern"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// INTERN REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// InternRepository implements intern.Repository for PostgreSQL.
type InternRepository struct {
	q Querier
}

// NewInternRepository creates a new InternRepository.
func NewInternRepository(q Querier) *InternRepository {
	return &InternRepository{q: q}
}

const internColumns = `id, intern_id, candidate_id, account_id, supervisor_id, department_id,
	start_date, end_date, status, is_active, is_suspended, suspension_reason, skills,
	interview_notes, final_evaluation, certificate_ref, certificate_issued,
	completion_notes, termination_reason, created_at, updated_at`

// Create creates a new intern. The unique candidate back-reference turns a
// duplicate promotion into ErrAlreadyPromoted.
func (r *InternRepository) Create(ctx context.Context, i *intern.Intern) error {
	query := `
		INSERT INTO interns (` + internColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.q.Exec(ctx, query,
		i.ID,
		i.InternID,
		i.CandidateID,
		i.AccountID,
		i.SupervisorID,
		i.DepartmentID,
		i.StartDate,
		i.EndDate,
		string(i.Status),
		i.IsActive,
		i.IsSuspended,
		i.SuspensionReason,
		i.Skills,
		i.InterviewNotes,
		i.FinalEvaluation,
		i.CertificateRef,
		i.CertificateIssued,
		i.CompletionNotes,
		i.TerminationReason,
		i.CreatedAt,
		i.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return intern.ErrAlreadyPromoted
		}
		return fmt.Errorf("failed to create intern: %w", err)
	}

	return nil
}

// GetByID returns an intern by internal ID.
func (r *InternRepository) GetByID(ctx context.Context, id string) (*intern.Intern, error) {
	query := `SELECT ` + internColumns + ` FROM interns WHERE id = $1`
	return r.scanIntern(r.q.QueryRow(ctx, query, id))
}

// GetByCandidateID returns the intern promoted from the given candidate.
func (r *InternRepository) GetByCandidateID(ctx context.Context, candidateID string) (*intern.Intern, error) {
	query := `SELECT ` + internColumns + ` FROM interns WHERE candidate_id = $1`
	return r.scanIntern(r.q.QueryRow(ctx, query, candidateID))
}

// Update writes the mutable fields without touching the status.
func (r *InternRepository) Update(ctx context.Context, i *intern.Intern) error {
	query := `
		UPDATE interns SET
			account_id = $1,
			supervisor_id = $2,
			department_id = $3,
			is_suspended = $4,
			suspension_reason = $5,
			skills = $6,
			interview_notes = $7,
			certificate_ref = $8,
			certificate_issued = $9,
			updated_at = $10
		WHERE id = $11
	`

	result, err := r.q.Exec(ctx, query,
		i.AccountID,
		i.SupervisorID,
		i.DepartmentID,
		i.IsSuspended,
		i.SuspensionReason,
		i.Skills,
		i.InterviewNotes,
		i.CertificateRef,
		i.CertificateIssued,
		i.UpdatedAt,
		i.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update intern: %w", err)
	}
	if result.RowsAffected() == 0 {
		return intern.ErrNotFound
	}

	return nil
}

// Transition writes the full record only if the persisted status still equals
// from.
func (r *InternRepository) Transition(ctx context.Context, i *intern.Intern, from intern.Status) error {
	query := `
		UPDATE interns SET
			status = $1,
			is_active = $2,
			is_suspended = $3,
			suspension_reason = $4,
			end_date = $5,
			final_evaluation = $6,
			completion_notes = $7,
			termination_reason = $8,
			updated_at = $9
		WHERE id = $10 AND status = $11
	`

	result, err := r.q.Exec(ctx, query,
		string(i.Status),
		i.IsActive,
		i.IsSuspended,
		i.SuspensionReason,
		i.EndDate,
		i.FinalEvaluation,
		i.CompletionNotes,
		i.TerminationReason,
		i.UpdatedAt,
		i.ID,
		string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to transition intern: %w", err)
	}
	if result.RowsAffected() == 0 {
		var current string
		if err := r.q.QueryRow(ctx, `SELECT status FROM interns WHERE id = $1`, i.ID).Scan(&current); err != nil {
			if IsNoRows(err) {
				return intern.ErrNotFound
			}
			return fmt.Errorf("failed to check intern status: %w", err)
		}
		return shared.NewDomainError("intern", "Transition", shared.ErrInvalidState,
			"intern was concurrently transitioned (current: "+current+")")
	}

	return nil
}

// ListByStatus returns interns with the given status, newest first.
func (r *InternRepository) ListByStatus(ctx context.Context, status intern.Status, opts intern.ListOptions) ([]*intern.Intern, error) {
	query := `SELECT ` + internColumns + `
		FROM interns
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, string(status), opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list interns by status: %w", err)
	}
	defer rows.Close()

	return r.collectInterns(rows)
}

// ListBySupervisor returns interns assigned to a supervisor.
func (r *InternRepository) ListBySupervisor(ctx context.Context, supervisorID string, opts intern.ListOptions) ([]*intern.Intern, error) {
	query := `SELECT ` + internColumns + `
		FROM interns
		WHERE supervisor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, supervisorID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list interns by supervisor: %w", err)
	}
	defer rows.Close()

	return r.collectInterns(rows)
}

func (r *InternRepository) scanIntern(row pgx.Row) (*intern.Intern, error) {
	var (
		i  intern.Intern
		st string
	)
	err := row.Scan(
		&i.ID,
		&i.InternID,
		&i.CandidateID,
		&i.AccountID,
		&i.SupervisorID,
		&i.DepartmentID,
		&i.StartDate,
		&i.EndDate,
		&st,
		&i.IsActive,
		&i.IsSuspended,
		&i.SuspensionReason,
		&i.Skills,
		&i.InterviewNotes,
		&i.FinalEvaluation,
		&i.CertificateRef,
		&i.CertificateIssued,
		&i.CompletionNotes,
		&i.TerminationReason,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, intern.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan intern: %w", err)
	}

	i.Status = intern.Status(st)
	return &i, nil
}

func (r *InternRepository) collectInterns(rows pgx.Rows) ([]*intern.Intern, error) {
	var out []*intern.Intern
	for rows.Next() {
		i, err := r.scanIntern(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}
