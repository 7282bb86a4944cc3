// Package submission contains the domain model for a work artifact an
// intern submits for supervisor review. Review is single-shot: once a
// decision is recorded the record never changes status again.
package submission

import (
	"strings"
	"time"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// Status is the submission review status.
type Status string

const (
	// StatusPending - awaiting review; initial.
	StatusPending Status = "PENDING"
	// StatusApproved - approved; terminal.
	StatusApproved Status = "APPROVED"
	// StatusRejected - rejected with feedback; terminal.
	StatusRejected Status = "REJECTED"
	// StatusNeedsRevision - returned with feedback; terminal for this
	// record, the intern is expected to create a new submission.
	StatusNeedsRevision Status = "NEEDS_REVISION"
)

// IsValid checks that the status is part of the enumeration.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusNeedsRevision:
		return true
	default:
		return false
	}
}

// IsDecided reports whether a review decision has been recorded.
func (s Status) IsDecided() bool { return s != StatusPending }

// Decision is a reviewer decision; the decision values double as the
// resulting statuses.
type Decision string

const (
	DecisionApprove       Decision = "APPROVED"
	DecisionReject        Decision = "REJECTED"
	DecisionNeedsRevision Decision = "NEEDS_REVISION"
)

// IsValid checks that the decision is known.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionApprove, DecisionReject, DecisionNeedsRevision:
		return true
	default:
		return false
	}
}

// RequiresFeedback reports whether the decision must carry feedback.
// Any non-approving decision does.
func (d Decision) RequiresFeedback() bool { return d != DecisionApprove }

// Submission is one work artifact tied to exactly one intern.
// Invariant: Feedback is non-empty whenever Status is REJECTED or
// NEEDS_REVISION.
type Submission struct {
	// ID - internal unique identifier (UUID string).
	ID string

	// InternID - the submitting intern.
	InternID string

	// Title - short artifact title.
	Title string

	// Description - optional longer description.
	Description string

	// FileRef - opaque reference to the uploaded artifact.
	FileRef string

	// Status - current review status.
	Status Status

	// Feedback - reviewer feedback; required for non-approving decisions.
	Feedback string

	// ReviewedBy - reviewer identity, present only after a decision.
	ReviewedBy string

	// ReviewedAt - decision timestamp, present only after a decision.
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain errors.
var (
	ErrNotFound = shared.NewDomainError("submission", "Find", shared.ErrNotFound, "submission not found")
)

// NewSubmissionParams contains parameters for creating a submission.
type NewSubmissionParams struct {
	ID          string
	InternID    string
	Title       string
	Description string
	FileRef     string
}

// NewSubmission creates a submission in PENDING with full validation.
// Whether the intern may submit at all (active, not suspended) is checked by
// the command layer against the intern aggregate.
func NewSubmission(p NewSubmissionParams) (*Submission, error) {
	if p.ID == "" {
		return nil, shared.NewDomainError("submission", "Create", shared.ErrValidation, "id is required")
	}
	if p.InternID == "" {
		return nil, shared.NewDomainError("submission", "Create", shared.ErrValidation, "intern id is required")
	}
	title := strings.TrimSpace(p.Title)
	if title == "" || len(title) > 200 {
		return nil, shared.NewDomainError("submission", "Create", shared.ErrValidation, "title must be 1-200 chars")
	}
	if strings.TrimSpace(p.FileRef) == "" {
		return nil, shared.NewDomainError("submission", "Create", shared.ErrValidation, "file reference is required")
	}

	now := time.Now().UTC()
	return &Submission{
		ID:          p.ID,
		InternID:    p.InternID,
		Title:       title,
		Description: strings.TrimSpace(p.Description),
		FileRef:     strings.TrimSpace(p.FileRef),
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Review records the single-shot reviewer decision from PENDING. Reviewing a
// decided submission fails with InvalidState so a second reviewer can never
// silently overwrite the first decision.
func (s *Submission) Review(reviewerID string, decision Decision, feedback string) error {
	if s.Status != StatusPending {
		return shared.NewDomainError("submission", "Review", shared.ErrInvalidState,
			"submission has already been decided (current: "+string(s.Status)+")")
	}
	if !decision.IsValid() {
		return shared.NewDomainError("submission", "Review", shared.ErrValidation,
			"decision must be APPROVED, REJECTED, or NEEDS_REVISION")
	}
	if decision.RequiresFeedback() && strings.TrimSpace(feedback) == "" {
		return shared.NewDomainError("submission", "Review", shared.ErrValidation,
			"feedback is required for a non-approving decision")
	}

	now := time.Now().UTC()
	s.Status = Status(decision)
	s.Feedback = feedback
	s.ReviewedBy = reviewerID
	s.ReviewedAt = &now
	s.UpdatedAt = now
	return nil
}
