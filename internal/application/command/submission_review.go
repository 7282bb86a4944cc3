package command

import (
	"context"
	"fmt"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// REVIEW SUBMISSION
// Single-shot review from PENDING. A supervisor may only review work of
// interns assigned to them; admins review anything. Non-approving decisions
// require feedback. A NEEDS_REVISION outcome closes this record; the intern
// follows up with a fresh submission.
// ══════════════════════════════════════════════════════════════════════════════

// ReviewSubmissionCommand records the reviewer decision.
type ReviewSubmissionCommand struct {
	Actor        shared.Actor
	SubmissionID string
	Decision     submission.Decision
	Feedback     string
}

// ReviewSubmissionHandler handles ReviewSubmissionCommand.
type ReviewSubmissionHandler struct {
	uowFactory UnitOfWorkFactory
	notifier   Notifier
	events     shared.EventPublisher
}

// NewReviewSubmissionHandler creates the handler.
func NewReviewSubmissionHandler(uowFactory UnitOfWorkFactory, notifier Notifier, events shared.EventPublisher) *ReviewSubmissionHandler {
	return &ReviewSubmissionHandler{uowFactory: uowFactory, notifier: notifier, events: events}
}

// Handle records the decision. A concurrent second review loses the race in
// Transition and gets InvalidState, so the first decision always stands.
func (h *ReviewSubmissionHandler) Handle(ctx context.Context, cmd ReviewSubmissionCommand) (*submission.Submission, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindSubmission, "Review", ""); err != nil {
		return nil, err
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("review_submission: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	sub, err := uow.Submissions().GetByID(ctx, cmd.SubmissionID)
	if err != nil {
		return nil, err
	}

	in, err := uow.Interns().GetByID(ctx, sub.InternID)
	if err != nil {
		return nil, err
	}
	if cmd.Actor.Role == shared.RoleSupervisor && in.SupervisorID != cmd.Actor.ID {
		return nil, shared.NewDomainError("submission", "Review", shared.ErrForbidden,
			"supervisors can only review work of interns assigned to them")
	}

	from := sub.Status
	if err := sub.Review(cmd.Actor.ID, cmd.Decision, cmd.Feedback); err != nil {
		return nil, err
	}

	if err := uow.Submissions().Transition(ctx, sub, from); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("review_submission: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventSubmissionReviewed, sub.ID, map[string]any{
			"intern_id":   sub.InternID,
			"status":      string(sub.Status),
			"reviewed_by": sub.ReviewedBy,
		}))
	}
	if h.notifier != nil {
		_ = h.notifier.Send(ctx, string(shared.EventSubmissionReviewed), in.AccountID, map[string]any{
			"submission_id": sub.ID,
			"title":         sub.Title,
			"status":        string(sub.Status),
			"feedback":      sub.Feedback,
		})
	}

	return sub, nil
}
