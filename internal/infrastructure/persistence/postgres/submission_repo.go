package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMISSION REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// SubmissionRepository implements submission.Repository for PostgreSQL.
type SubmissionRepository struct {
	q Querier
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(q Querier) *SubmissionRepository {
	return &SubmissionRepository{q: q}
}

const submissionColumns = `id, intern_id, title, description, file_ref, status,
	feedback, reviewed_by, reviewed_at, created_at, updated_at`

// Create creates a new submission.
func (r *SubmissionRepository) Create(ctx context.Context, s *submission.Submission) error {
	query := `
		INSERT INTO submissions (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.Exec(ctx, query,
		s.ID,
		s.InternID,
		s.Title,
		s.Description,
		s.FileRef,
		string(s.Status),
		s.Feedback,
		s.ReviewedBy,
		s.ReviewedAt,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

// GetByID returns a submission by ID.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*submission.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	return r.scanSubmission(r.q.QueryRow(ctx, query, id))
}

// Transition writes the review outcome only if the record is still in its
// pre-decision status; the losing reviewer gets InvalidState.
func (r *SubmissionRepository) Transition(ctx context.Context, s *submission.Submission, from submission.Status) error {
	query := `
		UPDATE submissions SET
			status = $1,
			feedback = $2,
			reviewed_by = $3,
			reviewed_at = $4,
			updated_at = $5
		WHERE id = $6 AND status = $7
	`

	result, err := r.q.Exec(ctx, query,
		string(s.Status),
		s.Feedback,
		s.ReviewedBy,
		s.ReviewedAt,
		s.UpdatedAt,
		s.ID,
		string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to transition submission: %w", err)
	}
	if result.RowsAffected() == 0 {
		var current string
		if err := r.q.QueryRow(ctx, `SELECT status FROM submissions WHERE id = $1`, s.ID).Scan(&current); err != nil {
			if IsNoRows(err) {
				return submission.ErrNotFound
			}
			return fmt.Errorf("failed to check submission status: %w", err)
		}
		return shared.NewDomainError("submission", "Transition", shared.ErrInvalidState,
			"submission was concurrently reviewed (current: "+current+")")
	}

	return nil
}

// ListByIntern returns an intern's submissions, newest first.
func (r *SubmissionRepository) ListByIntern(ctx context.Context, internID string) ([]*submission.Submission, error) {
	query := `SELECT ` + submissionColumns + `
		FROM submissions
		WHERE intern_id = $1
		ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, internID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var out []*submission.Submission
	for rows.Next() {
		s, err := r.scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountPendingByIntern counts undecided submissions for an intern.
func (r *SubmissionRepository) CountPendingByIntern(ctx context.Context, internID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM submissions WHERE intern_id = $1 AND status = $2`,
		internID, string(submission.StatusPending),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending submissions: %w", err)
	}
	return count, nil
}

func (r *SubmissionRepository) scanSubmission(row pgx.Row) (*submission.Submission, error) {
	var (
		s  submission.Submission
		st string
	)
	err := row.Scan(
		&s.ID,
		&s.InternID,
		&s.Title,
		&s.Description,
		&s.FileRef,
		&st,
		&s.Feedback,
		&s.ReviewedBy,
		&s.ReviewedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, submission.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan submission: %w", err)
	}

	s.Status = submission.Status(st)
	return &s, nil
}
