package query

import (
	"context"
	"time"

	"github.com/intern-hub/intern-placement-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMISSION VIEWS
// ══════════════════════════════════════════════════════════════════════════════

// SubmissionDTO is the read model of a submission.
type SubmissionDTO struct {
	ID          string     `json:"id"`
	InternID    string     `json:"intern_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	FileRef     string     `json:"file_ref"`
	Status      string     `json:"status"`
	Feedback    string     `json:"feedback,omitempty"`
	ReviewedBy  string     `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// InternSubmissionsDTO is an intern's submission history with the count of
// still-undecided records.
type InternSubmissionsDTO struct {
	InternID     string          `json:"intern_id"`
	PendingCount int             `json:"pending_count"`
	Submissions  []SubmissionDTO `json:"submissions"`
}

// NewSubmissionDTO maps the entity to its read model.
func NewSubmissionDTO(s *submission.Submission) SubmissionDTO {
	return SubmissionDTO{
		ID:          s.ID,
		InternID:    s.InternID,
		Title:       s.Title,
		Description: s.Description,
		FileRef:     s.FileRef,
		Status:      string(s.Status),
		Feedback:    s.Feedback,
		ReviewedBy:  s.ReviewedBy,
		ReviewedAt:  s.ReviewedAt,
		CreatedAt:   s.CreatedAt,
	}
}

// ListSubmissionsQuery lists an intern's submissions, newest first.
type ListSubmissionsQuery struct {
	InternID string
}

// ListSubmissionsHandler handles ListSubmissionsQuery.
type ListSubmissionsHandler struct {
	submissions submission.Repository
}

// NewListSubmissionsHandler creates the handler.
func NewListSubmissionsHandler(submissions submission.Repository) *ListSubmissionsHandler {
	return &ListSubmissionsHandler{submissions: submissions}
}

// Handle lists the submissions.
func (h *ListSubmissionsHandler) Handle(ctx context.Context, q ListSubmissionsQuery) (*InternSubmissionsDTO, error) {
	list, err := h.submissions.ListByIntern(ctx, q.InternID)
	if err != nil {
		return nil, err
	}
	pending, err := h.submissions.CountPendingByIntern(ctx, q.InternID)
	if err != nil {
		return nil, err
	}

	out := &InternSubmissionsDTO{
		InternID:     q.InternID,
		PendingCount: pending,
		Submissions:  make([]SubmissionDTO, 0, len(list)),
	}
	for _, s := range list {
		out.Submissions = append(out.Submissions, NewSubmissionDTO(s))
	}
	return out, nil
}
