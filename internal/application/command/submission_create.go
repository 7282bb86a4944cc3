package command

import (
	"context"
	"fmt"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE SUBMISSION
// An active, non-suspended intern hands in a work artifact. Suspension and
// terminal statuses forbid new submissions outright, not a silent drop.
// ══════════════════════════════════════════════════════════════════════════════

// CreateSubmissionCommand contains the data for a new submission.
type CreateSubmissionCommand struct {
	Actor       shared.Actor
	InternID    string
	Title       string
	Description string
	FileRef     string
}

// CreateSubmissionHandler handles CreateSubmissionCommand.
type CreateSubmissionHandler struct {
	uowFactory UnitOfWorkFactory
	idGen      IDGenerator
	events     shared.EventPublisher
}

// NewCreateSubmissionHandler creates the handler.
func NewCreateSubmissionHandler(uowFactory UnitOfWorkFactory, idGen IDGenerator, events shared.EventPublisher) *CreateSubmissionHandler {
	return &CreateSubmissionHandler{uowFactory: uowFactory, idGen: idGen, events: events}
}

// Handle creates the submission.
func (h *CreateSubmissionHandler) Handle(ctx context.Context, cmd CreateSubmissionCommand) (*submission.Submission, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindSubmission, "Create", ""); err != nil {
		return nil, err
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("create_submission: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	in, err := uow.Interns().GetByID(ctx, cmd.InternID)
	if err != nil {
		return nil, err
	}

	// Interns submit only their own work.
	if cmd.Actor.ID != in.ID && cmd.Actor.ID != in.AccountID {
		return nil, shared.NewDomainError("submission", "Create", shared.ErrForbidden,
			"interns can only submit their own work")
	}
	if !in.CanSubmitWork() {
		if in.IsSuspended {
			return nil, shared.NewDomainError("submission", "Create", shared.ErrForbidden,
				"a suspended intern cannot submit work")
		}
		return nil, shared.NewDomainError("submission", "Create", shared.ErrForbidden,
			"only ACTIVE interns can submit work (current: "+string(in.Status)+")")
	}

	sub, err := submission.NewSubmission(submission.NewSubmissionParams{
		ID:          h.idGen.GenerateID(),
		InternID:    in.ID,
		Title:       cmd.Title,
		Description: cmd.Description,
		FileRef:     cmd.FileRef,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Submissions().Create(ctx, sub); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("create_submission: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventSubmissionCreated, sub.ID, map[string]any{
			"intern_id": sub.InternID,
			"title":     sub.Title,
		}))
	}

	return sub, nil
}
