package command

import (
	"context"
	"fmt"

	"github.com/intern-hub/intern-placement-hub/internal/domain/application"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT APPLICATION
// PENDING → UNDER_REVIEW. The batch must hold at least one non-deleted
// candidate and carry the official letter reference; each violated
// precondition fails with its own message.
// ══════════════════════════════════════════════════════════════════════════════

// SubmitApplicationCommand asks to hand a batch over for admin review.
type SubmitApplicationCommand struct {
	Actor         shared.Actor
	ApplicationID string
}

// SubmitApplicationHandler handles SubmitApplicationCommand.
type SubmitApplicationHandler struct {
	uowFactory UnitOfWorkFactory
	notifier   Notifier
	events     shared.EventPublisher
}

// NewSubmitApplicationHandler creates the handler.
func NewSubmitApplicationHandler(uowFactory UnitOfWorkFactory, notifier Notifier, events shared.EventPublisher) *SubmitApplicationHandler {
	return &SubmitApplicationHandler{uowFactory: uowFactory, notifier: notifier, events: events}
}

// Handle submits the application for review.
func (h *SubmitApplicationHandler) Handle(ctx context.Context, cmd SubmitApplicationCommand) (*application.Application, error) {
	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("submit_application: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	app, err := uow.Applications().GetByID(ctx, cmd.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := shared.Authorize(cmd.Actor, shared.KindApplication, "Submit", app.UniversityID); err != nil {
		return nil, err
	}

	count, err := uow.Candidates().CountByApplication(ctx, app.ID)
	if err != nil {
		return nil, fmt.Errorf("submit_application: count candidates: %w", err)
	}

	from := app.Status
	if err := app.Submit(count); err != nil {
		return nil, err
	}

	if err := uow.Applications().Transition(ctx, app, from); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("submit_application: commit: %w", err)
	}

	// Post-commit side effects, best-effort.
	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventApplicationSubmitted, app.ID, map[string]any{
			"university_id":   app.UniversityID,
			"academic_year":   app.AcademicYear.String(),
			"candidate_count": count,
		}))
	}
	if h.notifier != nil {
		_ = h.notifier.Send(ctx, string(shared.EventApplicationSubmitted), app.UniversityID, map[string]any{
			"application_id": app.ID,
			"name":           app.Name,
		})
	}

	return app, nil
}
