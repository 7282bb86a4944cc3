package command

import (
	"context"
	"fmt"

	"github.com/intern-hub/intern-placement-hub/internal/domain/intern"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUSPEND / UNSUSPEND INTERN
// Suspension is a flag on an ACTIVE intern, not a lifecycle status. A
// suspended intern cannot create new submissions; pending submissions stay
// reviewable.
// ══════════════════════════════════════════════════════════════════════════════

// SuspendInternCommand suspends an intern with a mandatory reason.
type SuspendInternCommand struct {
	Actor    shared.Actor
	InternID string
	Reason   string
}

// SuspendInternHandler handles SuspendInternCommand.
type SuspendInternHandler struct {
	uowFactory UnitOfWorkFactory
	events     shared.EventPublisher
}

// NewSuspendInternHandler creates the handler.
func NewSuspendInternHandler(uowFactory UnitOfWorkFactory, events shared.EventPublisher) *SuspendInternHandler {
	return &SuspendInternHandler{uowFactory: uowFactory, events: events}
}

// Handle suspends the intern.
func (h *SuspendInternHandler) Handle(ctx context.Context, cmd SuspendInternCommand) (*intern.Intern, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindIntern, "Suspend", ""); err != nil {
		return nil, err
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("suspend_intern: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	in, err := uow.Interns().GetByID(ctx, cmd.InternID)
	if err != nil {
		return nil, err
	}

	if err := in.Suspend(cmd.Reason); err != nil {
		return nil, err
	}

	// Suspension does not change the status, so a plain update suffices.
	if err := uow.Interns().Update(ctx, in); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("suspend_intern: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventInternSuspended, in.ID, map[string]any{
			"reason": in.SuspensionReason,
		}))
	}

	return in, nil
}

// UnsuspendInternCommand lifts a suspension.
type UnsuspendInternCommand struct {
	Actor    shared.Actor
	InternID string
}

// UnsuspendInternHandler handles UnsuspendInternCommand.
type UnsuspendInternHandler struct {
	uowFactory UnitOfWorkFactory
	events     shared.EventPublisher
}

// NewUnsuspendInternHandler creates the handler.
func NewUnsuspendInternHandler(uowFactory UnitOfWorkFactory, events shared.EventPublisher) *UnsuspendInternHandler {
	return &UnsuspendInternHandler{uowFactory: uowFactory, events: events}
}

// Handle lifts the suspension.
func (h *UnsuspendInternHandler) Handle(ctx context.Context, cmd UnsuspendInternCommand) (*intern.Intern, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindIntern, "Unsuspend", ""); err != nil {
		return nil, err
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("unsuspend_intern: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	in, err := uow.Interns().GetByID(ctx, cmd.InternID)
	if err != nil {
		return nil, err
	}

	if err := in.Unsuspend(); err != nil {
		return nil, err
	}

	if err := uow.Interns().Update(ctx, in); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("unsuspend_intern: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventInternUnsuspended, in.ID, nil))
	}

	return in, nil
}
