package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/intern-hub/intern-placement-hub/internal/domain/application"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// APPLICATION REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ApplicationRepository implements application.Repository for PostgreSQL.
type ApplicationRepository struct {
	q Querier
}

// NewApplicationRepository creates a new ApplicationRepository bound to a
// pool or an open transaction.
func NewApplicationRepository(q Querier) *ApplicationRepository {
	return &ApplicationRepository{q: q}
}

const applicationColumns = `id, university_id, name, academic_year, letter_ref, status,
	rejection_reason, reviewed_by, reviewed_at, created_at, updated_at`

// Create creates a new application.
func (r *ApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.Exec(ctx, query,
		app.ID,
		app.UniversityID,
		app.Name,
		app.AcademicYear.String(),
		app.LetterRef,
		string(app.Status),
		app.RejectionReason,
		app.ReviewedBy,
		app.ReviewedAt,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return application.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// GetByID returns an application by ID.
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return r.scanApplication(r.q.QueryRow(ctx, query, id))
}

// Update writes the mutable fields without touching the status.
func (r *ApplicationRepository) Update(ctx context.Context, app *application.Application) error {
	query := `
		UPDATE applications SET
			name = $1,
			academic_year = $2,
			letter_ref = $3,
			updated_at = $4
		WHERE id = $5
	`

	result, err := r.q.Exec(ctx, query,
		app.Name,
		app.AcademicYear.String(),
		app.LetterRef,
		app.UpdatedAt,
		app.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return application.ErrNotFound
	}

	return nil
}

// Transition writes the full record only if the persisted status still equals
// from. Zero rows on an existing record means someone else transitioned it
// first.
func (r *ApplicationRepository) Transition(ctx context.Context, app *application.Application, from application.Status) error {
	query := `
		UPDATE applications SET
			name = $1,
			academic_year = $2,
			letter_ref = $3,
			status = $4,
			rejection_reason = $5,
			reviewed_by = $6,
			reviewed_at = $7,
			updated_at = $8
		WHERE id = $9 AND status = $10
	`

	result, err := r.q.Exec(ctx, query,
		app.Name,
		app.AcademicYear.String(),
		app.LetterRef,
		string(app.Status),
		app.RejectionReason,
		app.ReviewedBy,
		app.ReviewedAt,
		app.UpdatedAt,
		app.ID,
		string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to transition application: %w", err)
	}
	if result.RowsAffected() == 0 {
		var current string
		if err := r.q.QueryRow(ctx, `SELECT status FROM applications WHERE id = $1`, app.ID).Scan(&current); err != nil {
			if IsNoRows(err) {
				return application.ErrNotFound
			}
			return fmt.Errorf("failed to check application status: %w", err)
		}
		return shared.NewDomainError("application", "Transition", shared.ErrInvalidState,
			"application was concurrently transitioned (current: "+current+")")
	}

	return nil
}

// ListByUniversity returns a university's applications.
func (r *ApplicationRepository) ListByUniversity(ctx context.Context, universityID string, opts application.ListOptions) ([]*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE university_id = $1 ` +
		orderClause(opts) + ` LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, universityID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by university: %w", err)
	}
	defer rows.Close()

	return r.collectApplications(rows)
}

// ListByStatus returns applications with the given status.
func (r *ApplicationRepository) ListByStatus(ctx context.Context, status application.Status, opts application.ListOptions) ([]*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE status = $1 ` +
		orderClause(opts) + ` LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, string(status), opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by status: %w", err)
	}
	defer rows.Close()

	return r.collectApplications(rows)
}

// orderClause builds the ORDER BY clause from a whitelist of sortable
// columns; anything else falls back to creation time.
func orderClause(opts application.ListOptions) string {
	col := "created_at"
	switch opts.SortBy {
	case "name", "academic_year", "status", "updated_at", "created_at":
		col = opts.SortBy
	}
	dir := "ASC"
	if opts.SortDesc {
		dir = "DESC"
	}
	return "ORDER BY " + col + " " + dir
}

func (r *ApplicationRepository) scanApplication(row pgx.Row) (*application.Application, error) {
	var (
		app  application.Application
		year string
		st   string
	)
	err := row.Scan(
		&app.ID,
		&app.UniversityID,
		&app.Name,
		&year,
		&app.LetterRef,
		&st,
		&app.RejectionReason,
		&app.ReviewedBy,
		&app.ReviewedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, application.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan application: %w", err)
	}

	app.AcademicYear = application.AcademicYear(year)
	app.Status = application.Status(st)
	return &app, nil
}

func (r *ApplicationRepository) collectApplications(rows pgx.Rows) ([]*application.Application, error) {
	var out []*application.Application
	for rows.Next() {
		app, err := r.scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}
