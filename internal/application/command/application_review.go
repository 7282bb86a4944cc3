package command

import (
	"context"
	"fmt"

	"github.com/intern-hub/intern-placement-hub/internal/domain/application"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REVIEW APPLICATION
// UNDER_REVIEW → APPROVED|REJECTED. Admin-only; a rejection carries a
// verbatim reason and the reviewer identity is stamped on the record.
// The decision does not cascade to candidates: they are reviewed one by one
// once the batch is approved.
// ══════════════════════════════════════════════════════════════════════════════

// ReviewApplicationCommand records the admin decision on a batch.
type ReviewApplicationCommand struct {
	Actor           shared.Actor
	ApplicationID   string
	Decision        application.Decision
	RejectionReason string
}

// ReviewApplicationHandler handles ReviewApplicationCommand.
type ReviewApplicationHandler struct {
	uowFactory UnitOfWorkFactory
	notifier   Notifier
	events     shared.EventPublisher
}

// NewReviewApplicationHandler creates the handler.
func NewReviewApplicationHandler(uowFactory UnitOfWorkFactory, notifier Notifier, events shared.EventPublisher) *ReviewApplicationHandler {
	return &ReviewApplicationHandler{uowFactory: uowFactory, notifier: notifier, events: events}
}

// Handle records the decision. A concurrent decision loses the race inside
// Transition and surfaces as InvalidState, never as a silent overwrite.
func (h *ReviewApplicationHandler) Handle(ctx context.Context, cmd ReviewApplicationCommand) (*application.Application, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindApplication, "Review", ""); err != nil {
		return nil, err
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("review_application: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	app, err := uow.Applications().GetByID(ctx, cmd.ApplicationID)
	if err != nil {
		return nil, err
	}

	from := app.Status
	if err := app.Review(cmd.Actor.ID, cmd.Decision, cmd.RejectionReason); err != nil {
		return nil, err
	}

	if err := uow.Applications().Transition(ctx, app, from); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("review_application: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventApplicationReviewed, app.ID, map[string]any{
			"status":           string(app.Status),
			"reviewed_by":      app.ReviewedBy,
			"rejection_reason": app.RejectionReason,
		}))
	}
	if h.notifier != nil {
		_ = h.notifier.Send(ctx, string(shared.EventApplicationReviewed), app.UniversityID, map[string]any{
			"application_id":   app.ID,
			"status":           string(app.Status),
			"rejection_reason": app.RejectionReason,
		})
	}

	return app, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ARCHIVE APPLICATION
// APPROVED|REJECTED → ARCHIVED. Administrative shelving only; candidates and
// interns spawned from the batch are untouched.
// ══════════════════════════════════════════════════════════════════════════════

// ArchiveApplicationCommand asks to archive a decided batch.
type ArchiveApplicationCommand struct {
	Actor         shared.Actor
	ApplicationID string
}

// ArchiveApplicationHandler handles ArchiveApplicationCommand.
type ArchiveApplicationHandler struct {
	uowFactory UnitOfWorkFactory
	events     shared.EventPublisher
}

// NewArchiveApplicationHandler creates the handler.
func NewArchiveApplicationHandler(uowFactory UnitOfWorkFactory, events shared.EventPublisher) *ArchiveApplicationHandler {
	return &ArchiveApplicationHandler{uowFactory: uowFactory, events: events}
}

// Handle archives the application.
func (h *ArchiveApplicationHandler) Handle(ctx context.Context, cmd ArchiveApplicationCommand) (*application.Application, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindApplication, "Archive", ""); err != nil {
		return nil, err
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive_application: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	app, err := uow.Applications().GetByID(ctx, cmd.ApplicationID)
	if err != nil {
		return nil, err
	}

	from := app.Status
	if err := app.Archive(); err != nil {
		return nil, err
	}

	if err := uow.Applications().Transition(ctx, app, from); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("archive_application: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventApplicationArchived, app.ID, nil))
	}

	return app, nil
}
