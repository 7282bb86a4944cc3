package command

import (
	"context"
	"fmt"

	"github.com/intern-hub/intern-placement-hub/internal/domain/candidate"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REVIEW CANDIDATE
// Candidates are reviewed one by one, independently of the parent batch
// decision: a candidate stays reviewable whatever the application status.
// An acceptance lands directly in AWAITING_ARRIVAL; a rejection is terminal
// for the candidate and never touches siblings.
// ══════════════════════════════════════════════════════════════════════════════

// ReviewCandidateCommand records the admin decision on one candidate.
type ReviewCandidateCommand struct {
	Actor           shared.Actor
	CandidateID     string
	Decision        candidate.Decision
	RejectionReason string
}

// ReviewCandidateHandler handles ReviewCandidateCommand.
type ReviewCandidateHandler struct {
	uowFactory UnitOfWorkFactory
	notifier   Notifier
	events     shared.EventPublisher
}

// NewReviewCandidateHandler creates the handler.
func NewReviewCandidateHandler(uowFactory UnitOfWorkFactory, notifier Notifier, events shared.EventPublisher) *ReviewCandidateHandler {
	return &ReviewCandidateHandler{uowFactory: uowFactory, notifier: notifier, events: events}
}

// Handle records the decision.
func (h *ReviewCandidateHandler) Handle(ctx context.Context, cmd ReviewCandidateCommand) (*candidate.Candidate, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindCandidate, "Review", ""); err != nil {
		return nil, err
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("review_candidate: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	c, err := uow.Candidates().GetByID(ctx, cmd.CandidateID)
	if err != nil {
		return nil, err
	}
	if c.Deleted {
		return nil, candidate.ErrNotFound
	}

	// Loaded only for the notification recipient; the parent status never
	// gates a candidate review.
	app, err := uow.Applications().GetByID(ctx, c.ApplicationID)
	if err != nil {
		return nil, err
	}

	from := c.Status
	if err := c.Review(cmd.Decision, cmd.RejectionReason); err != nil {
		return nil, err
	}

	if err := uow.Candidates().Transition(ctx, c, from); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("review_candidate: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventCandidateReviewed, c.ID, map[string]any{
			"application_id":   c.ApplicationID,
			"status":           string(c.Status),
			"rejection_reason": c.RejectionReason,
		}))
	}
	if h.notifier != nil {
		_ = h.notifier.Send(ctx, string(shared.EventCandidateReviewed), app.UniversityID, map[string]any{
			"candidate_id":     c.ID,
			"student_id":       c.StudentID,
			"status":           string(c.Status),
			"rejection_reason": c.RejectionReason,
		})
	}

	return c, nil
}
