package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/intern-hub/intern-placement-hub/internal/domain/candidate"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CANDIDATE REPOSITORY IMPLEMENTATION
// The unique index on student_id is the system-wide uniqueness guarantee;
// the handler-level existence check only provides the friendly error.
// ══════════════════════════════════════════════════════════════════════════════

// CandidateRepository implements candidate.Repository for PostgreSQL.
type CandidateRepository struct {
	q Querier
}

// NewCandidateRepository creates a new CandidateRepository.
func NewCandidateRepository(q Querier) *CandidateRepository {
	return &CandidateRepository{q: q}
}

const candidateColumns = `id, application_id, full_name, student_id, field_of_study,
	academic_year, email, phone, status, rejection_reason, cv_ref, transcript_ref,
	deleted, created_at, updated_at`

// Create creates a new candidate.
func (r *CandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	query := `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.q.Exec(ctx, query,
		c.ID,
		c.ApplicationID,
		c.FullName,
		c.StudentID,
		c.FieldOfStudy,
		c.AcademicYear,
		c.Email,
		c.Phone,
		string(c.Status),
		c.RejectionReason,
		c.CVRef,
		c.TranscriptRef,
		c.Deleted,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return candidate.ErrStudentIDTaken
		}
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

// GetByID returns a candidate by internal ID.
func (r *CandidateRepository) GetByID(ctx context.Context, id string) (*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return r.scanCandidate(r.q.QueryRow(ctx, query, id))
}

// GetByStudentID returns a candidate by the human-readable student identifier.
func (r *CandidateRepository) GetByStudentID(ctx context.Context, studentID string) (*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE student_id = $1`
	return r.scanCandidate(r.q.QueryRow(ctx, query, studentID))
}

// Update writes the mutable fields without touching the status.
func (r *CandidateRepository) Update(ctx context.Context, c *candidate.Candidate) error {
	query := `
		UPDATE candidates SET
			full_name = $1,
			student_id = $2,
			field_of_study = $3,
			academic_year = $4,
			email = $5,
			phone = $6,
			cv_ref = $7,
			transcript_ref = $8,
			deleted = $9,
			updated_at = $10
		WHERE id = $11
	`

	result, err := r.q.Exec(ctx, query,
		c.FullName,
		c.StudentID,
		c.FieldOfStudy,
		c.AcademicYear,
		c.Email,
		c.Phone,
		c.CVRef,
		c.TranscriptRef,
		c.Deleted,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return candidate.ErrStudentIDTaken
		}
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return candidate.ErrNotFound
	}

	return nil
}

// Transition writes the record only if the persisted status still equals from.
func (r *CandidateRepository) Transition(ctx context.Context, c *candidate.Candidate, from candidate.Status) error {
	query := `
		UPDATE candidates SET
			status = $1,
			rejection_reason = $2,
			updated_at = $3
		WHERE id = $4 AND status = $5
	`

	result, err := r.q.Exec(ctx, query,
		string(c.Status),
		c.RejectionReason,
		c.UpdatedAt,
		c.ID,
		string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to transition candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		var current string
		if err := r.q.QueryRow(ctx, `SELECT status FROM candidates WHERE id = $1`, c.ID).Scan(&current); err != nil {
			if IsNoRows(err) {
				return candidate.ErrNotFound
			}
			return fmt.Errorf("failed to check candidate status: %w", err)
		}
		return shared.NewDomainError("candidate", "Transition", shared.ErrInvalidState,
			"candidate was concurrently transitioned (current: "+current+")")
	}

	return nil
}

// ListByApplication returns the application's non-deleted candidates.
func (r *CandidateRepository) ListByApplication(ctx context.Context, applicationID string) ([]*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + `
		FROM candidates
		WHERE application_id = $1 AND NOT deleted
		ORDER BY created_at`

	rows, err := r.q.Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var out []*candidate.Candidate
	for rows.Next() {
		c, err := r.scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountByApplication counts non-deleted candidates in an application.
func (r *CandidateRepository) CountByApplication(ctx context.Context, applicationID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM candidates WHERE application_id = $1 AND NOT deleted`,
		applicationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return count, nil
}

// ExistsByStudentID checks global student-identifier uniqueness.
func (r *CandidateRepository) ExistsByStudentID(ctx context.Context, studentID, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM candidates WHERE student_id = $1 AND id <> $2)`,
		studentID, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check student id: %w", err)
	}
	return exists, nil
}

func (r *CandidateRepository) scanCandidate(row pgx.Row) (*candidate.Candidate, error) {
	var (
		c  candidate.Candidate
		st string
	)
	err := row.Scan(
		&c.ID,
		&c.ApplicationID,
		&c.FullName,
		&c.StudentID,
		&c.FieldOfStudy,
		&c.AcademicYear,
		&c.Email,
		&c.Phone,
		&st,
		&c.RejectionReason,
		&c.CVRef,
		&c.TranscriptRef,
		&c.Deleted,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, candidate.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan candidate: %w", err)
	}

	c.Status = candidate.Status(st)
	return &c, nil
}
