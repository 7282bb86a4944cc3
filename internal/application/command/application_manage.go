package command

import (
	"context"
	"fmt"

	"github.com/intern-hub/intern-placement-hub/internal/domain/application"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE APPLICATION
// A university opens a new batch for one academic year. Batches start in
// PENDING and stay editable until submission.
// ══════════════════════════════════════════════════════════════════════════════

// CreateApplicationCommand contains the data to create an application batch.
type CreateApplicationCommand struct {
	Actor        shared.Actor
	Name         string
	AcademicYear string
	LetterRef    string
}

// CreateApplicationHandler handles CreateApplicationCommand.
type CreateApplicationHandler struct {
	uowFactory UnitOfWorkFactory
	idGen      IDGenerator
	events     shared.EventPublisher
}

// NewCreateApplicationHandler creates the handler.
func NewCreateApplicationHandler(uowFactory UnitOfWorkFactory, idGen IDGenerator, events shared.EventPublisher) *CreateApplicationHandler {
	return &CreateApplicationHandler{uowFactory: uowFactory, idGen: idGen, events: events}
}

// Handle creates the application batch.
func (h *CreateApplicationHandler) Handle(ctx context.Context, cmd CreateApplicationCommand) (*application.Application, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindApplication, "Create", cmd.Actor.UniversityID); err != nil {
		return nil, err
	}

	app, err := application.NewApplication(application.NewApplicationParams{
		ID:           h.idGen.GenerateID(),
		UniversityID: cmd.Actor.UniversityID,
		Name:         cmd.Name,
		AcademicYear: application.AcademicYear(cmd.AcademicYear),
		LetterRef:    cmd.LetterRef,
	})
	if err != nil {
		return nil, err
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("create_application: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	if err := uow.Applications().Create(ctx, app); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("create_application: commit: %w", err)
	}

	return app, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE APPLICATION DETAILS
// Editing name / academic year / letter is legal only while PENDING.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateApplicationCommand contains the editable application fields.
type UpdateApplicationCommand struct {
	Actor         shared.Actor
	ApplicationID string
	Name          string
	AcademicYear  string
	LetterRef     string
}

// UpdateApplicationHandler handles UpdateApplicationCommand.
type UpdateApplicationHandler struct {
	uowFactory UnitOfWorkFactory
}

// NewUpdateApplicationHandler creates the handler.
func NewUpdateApplicationHandler(uowFactory UnitOfWorkFactory) *UpdateApplicationHandler {
	return &UpdateApplicationHandler{uowFactory: uowFactory}
}

// Handle applies the edit.
func (h *UpdateApplicationHandler) Handle(ctx context.Context, cmd UpdateApplicationCommand) (*application.Application, error) {
	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("update_application: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	app, err := uow.Applications().GetByID(ctx, cmd.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := shared.Authorize(cmd.Actor, shared.KindApplication, "Edit", app.UniversityID); err != nil {
		return nil, err
	}

	if err := app.UpdateDetails(cmd.Name, application.AcademicYear(cmd.AcademicYear), cmd.LetterRef); err != nil {
		return nil, err
	}

	if err := uow.Applications().Update(ctx, app); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("update_application: commit: %w", err)
	}

	return app, nil
}
