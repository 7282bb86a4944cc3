package command

import (
	"context"
	"fmt"

	"github.com/intern-hub/intern-placement-hub/internal/domain/application"
	"github.com/intern-hub/intern-placement-hub/internal/domain/candidate"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CANDIDATE ROSTER MANAGEMENT
// Universities add, edit, and remove candidates while the parent application
// is still PENDING. Once the batch is submitted the roster freezes.
// ══════════════════════════════════════════════════════════════════════════════

// loadPendingParent loads the parent application and verifies both ownership
// and that the batch is still editable.
func loadPendingParent(ctx context.Context, uow UnitOfWork, actor shared.Actor, applicationID, op string) error {
	app, err := uow.Applications().GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if err := shared.Authorize(actor, shared.KindCandidate, op, app.UniversityID); err != nil {
		return err
	}
	if app.Status != application.StatusPending {
		return candidate.ErrParentNotPending
	}
	return nil
}

// AddCandidateCommand contains the data to add a candidate to a batch.
type AddCandidateCommand struct {
	Actor         shared.Actor
	ApplicationID string
	FullName      string
	StudentID     string
	FieldOfStudy  string
	AcademicYear  string
	Email         string
	Phone         string
	CVRef         string
	TranscriptRef string
}

// AddCandidateHandler handles AddCandidateCommand.
type AddCandidateHandler struct {
	uowFactory UnitOfWorkFactory
	idGen      IDGenerator
	events     shared.EventPublisher
}

// NewAddCandidateHandler creates the handler.
func NewAddCandidateHandler(uowFactory UnitOfWorkFactory, idGen IDGenerator, events shared.EventPublisher) *AddCandidateHandler {
	return &AddCandidateHandler{uowFactory: uowFactory, idGen: idGen, events: events}
}

// Handle adds the candidate. The student identifier must be unique across the
// whole system; the check here gives a clean error and the unique index in
// the store closes the race.
func (h *AddCandidateHandler) Handle(ctx context.Context, cmd AddCandidateCommand) (*candidate.Candidate, error) {
	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("add_candidate: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	if err := loadPendingParent(ctx, uow, cmd.Actor, cmd.ApplicationID, "Add"); err != nil {
		return nil, err
	}

	taken, err := uow.Candidates().ExistsByStudentID(ctx, cmd.StudentID, "")
	if err != nil {
		return nil, fmt.Errorf("add_candidate: check student id: %w", err)
	}
	if taken {
		return nil, candidate.ErrStudentIDTaken
	}

	c, err := candidate.NewCandidate(candidate.NewCandidateParams{
		ID:            h.idGen.GenerateID(),
		ApplicationID: cmd.ApplicationID,
		FullName:      cmd.FullName,
		StudentID:     cmd.StudentID,
		FieldOfStudy:  cmd.FieldOfStudy,
		AcademicYear:  cmd.AcademicYear,
		Email:         cmd.Email,
		Phone:         cmd.Phone,
		CVRef:         cmd.CVRef,
		TranscriptRef: cmd.TranscriptRef,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Candidates().Create(ctx, c); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("add_candidate: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventCandidateAdded, c.ID, map[string]any{
			"application_id": c.ApplicationID,
			"cv_ref":         c.CVRef,
			"transcript_ref": c.TranscriptRef,
		}))
	}

	return c, nil
}

// UpdateCandidateCommand contains the editable candidate fields.
type UpdateCandidateCommand struct {
	Actor         shared.Actor
	CandidateID   string
	FullName      string
	FieldOfStudy  string
	Email         string
	Phone         string
	CVRef         string
	TranscriptRef string
}

// UpdateCandidateHandler handles UpdateCandidateCommand.
type UpdateCandidateHandler struct {
	uowFactory UnitOfWorkFactory
	events     shared.EventPublisher
}

// NewUpdateCandidateHandler creates the handler.
func NewUpdateCandidateHandler(uowFactory UnitOfWorkFactory, events shared.EventPublisher) *UpdateCandidateHandler {
	return &UpdateCandidateHandler{uowFactory: uowFactory, events: events}
}

// Handle applies the edit while the parent batch is still PENDING.
func (h *UpdateCandidateHandler) Handle(ctx context.Context, cmd UpdateCandidateCommand) (*candidate.Candidate, error) {
	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("update_candidate: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	c, err := uow.Candidates().GetByID(ctx, cmd.CandidateID)
	if err != nil {
		return nil, err
	}
	if err := loadPendingParent(ctx, uow, cmd.Actor, c.ApplicationID, "Edit"); err != nil {
		return nil, err
	}

	if err := c.UpdateDetails(cmd.FullName, cmd.FieldOfStudy, cmd.Email, cmd.Phone, cmd.CVRef, cmd.TranscriptRef); err != nil {
		return nil, err
	}

	if err := uow.Candidates().Update(ctx, c); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("update_candidate: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventCandidateUpdated, c.ID, map[string]any{
			"application_id": c.ApplicationID,
			"cv_ref":         c.CVRef,
			"transcript_ref": c.TranscriptRef,
		}))
	}

	return c, nil
}

// RemoveCandidateCommand asks to soft-delete a candidate from a batch.
type RemoveCandidateCommand struct {
	Actor       shared.Actor
	CandidateID string
}

// RemoveCandidateHandler handles RemoveCandidateCommand.
type RemoveCandidateHandler struct {
	uowFactory UnitOfWorkFactory
	events     shared.EventPublisher
}

// NewRemoveCandidateHandler creates the handler.
func NewRemoveCandidateHandler(uowFactory UnitOfWorkFactory, events shared.EventPublisher) *RemoveCandidateHandler {
	return &RemoveCandidateHandler{uowFactory: uowFactory, events: events}
}

// Handle soft-deletes the candidate. Removal clears the document references;
// the stored file bytes are the document service's problem, not ours.
func (h *RemoveCandidateHandler) Handle(ctx context.Context, cmd RemoveCandidateCommand) error {
	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return fmt.Errorf("remove_candidate: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	c, err := uow.Candidates().GetByID(ctx, cmd.CandidateID)
	if err != nil {
		return err
	}
	if err := loadPendingParent(ctx, uow, cmd.Actor, c.ApplicationID, "Remove"); err != nil {
		return err
	}

	if err := c.SoftDelete(); err != nil {
		return err
	}

	if err := uow.Candidates().Update(ctx, c); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("remove_candidate: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventCandidateRemoved, c.ID, map[string]any{
			"application_id": c.ApplicationID,
		}))
	}

	return nil
}
