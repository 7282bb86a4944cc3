package command

import (
	"context"
	"fmt"

	"github.com/intern-hub/intern-placement-hub/internal/domain/intern"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// INTERN ASSIGNMENT & PROFILE
// Supervisor and department assignment are overwrites, not history; profile
// updates replace the skills set. None of these change the lifecycle status.
// ══════════════════════════════════════════════════════════════════════════════

// AssignInternCommand assigns a supervisor and/or a department. Empty fields
// are left untouched.
type AssignInternCommand struct {
	Actor        shared.Actor
	InternID     string
	SupervisorID string
	DepartmentID string
}

// AssignInternHandler handles AssignInternCommand.
type AssignInternHandler struct {
	uowFactory UnitOfWorkFactory
	events     shared.EventPublisher
}

// NewAssignInternHandler creates the handler.
func NewAssignInternHandler(uowFactory UnitOfWorkFactory, events shared.EventPublisher) *AssignInternHandler {
	return &AssignInternHandler{uowFactory: uowFactory, events: events}
}

// Handle applies the assignment.
func (h *AssignInternHandler) Handle(ctx context.Context, cmd AssignInternCommand) (*intern.Intern, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindIntern, "Assign", ""); err != nil {
		return nil, err
	}
	if cmd.SupervisorID == "" && cmd.DepartmentID == "" {
		return nil, shared.NewDomainError("intern", "Assign", shared.ErrValidation,
			"a supervisor or a department is required")
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("assign_intern: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	in, err := uow.Interns().GetByID(ctx, cmd.InternID)
	if err != nil {
		return nil, err
	}

	if cmd.SupervisorID != "" {
		if err := in.AssignSupervisor(cmd.SupervisorID); err != nil {
			return nil, err
		}
	}
	if cmd.DepartmentID != "" {
		if err := in.AssignDepartment(cmd.DepartmentID); err != nil {
			return nil, err
		}
	}

	if err := uow.Interns().Update(ctx, in); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("assign_intern: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventInternAssigned, in.ID, map[string]any{
			"supervisor_id": in.SupervisorID,
			"department_id": in.DepartmentID,
		}))
	}

	return in, nil
}

// UpdateInternProfileCommand replaces the skills set and interview notes.
type UpdateInternProfileCommand struct {
	Actor          shared.Actor
	InternID       string
	Skills         []string
	InterviewNotes string
}

// UpdateInternProfileHandler handles UpdateInternProfileCommand.
type UpdateInternProfileHandler struct {
	uowFactory UnitOfWorkFactory
	events     shared.EventPublisher
}

// NewUpdateInternProfileHandler creates the handler.
func NewUpdateInternProfileHandler(uowFactory UnitOfWorkFactory, events shared.EventPublisher) *UpdateInternProfileHandler {
	return &UpdateInternProfileHandler{uowFactory: uowFactory, events: events}
}

// Handle applies the profile update.
func (h *UpdateInternProfileHandler) Handle(ctx context.Context, cmd UpdateInternProfileCommand) (*intern.Intern, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindIntern, "UpdateProfile", ""); err != nil {
		return nil, err
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("update_intern_profile: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	in, err := uow.Interns().GetByID(ctx, cmd.InternID)
	if err != nil {
		return nil, err
	}

	if err := in.UpdateProfile(cmd.Skills, cmd.InterviewNotes); err != nil {
		return nil, err
	}

	if err := uow.Interns().Update(ctx, in); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("update_intern_profile: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventInternProfileUpdated, in.ID, map[string]any{
			"skills": in.Skills,
		}))
	}

	return in, nil
}
