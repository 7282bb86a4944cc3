package command

import (
	"context"
	"fmt"

	"github.com/intern-hub/intern-placement-hub/internal/domain/intern"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE / TERMINATE INTERN
// The two terminal transitions. Completion works on a suspended intern as
// well and forces the suspension flag off; termination carries a mandatory
// reason. Both stamp the end date.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteInternCommand closes an internship successfully.
type CompleteInternCommand struct {
	Actor           shared.Actor
	InternID        string
	FinalEvaluation float64
	CompletionNotes string
}

// CompleteInternHandler handles CompleteInternCommand.
type CompleteInternHandler struct {
	uowFactory UnitOfWorkFactory
	notifier   Notifier
	events     shared.EventPublisher
}

// NewCompleteInternHandler creates the handler.
func NewCompleteInternHandler(uowFactory UnitOfWorkFactory, notifier Notifier, events shared.EventPublisher) *CompleteInternHandler {
	return &CompleteInternHandler{uowFactory: uowFactory, notifier: notifier, events: events}
}

// Handle completes the internship.
func (h *CompleteInternHandler) Handle(ctx context.Context, cmd CompleteInternCommand) (*intern.Intern, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindIntern, "Complete", ""); err != nil {
		return nil, err
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("complete_intern: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	in, err := uow.Interns().GetByID(ctx, cmd.InternID)
	if err != nil {
		return nil, err
	}

	from := in.Status
	if err := in.Complete(cmd.FinalEvaluation, cmd.CompletionNotes); err != nil {
		return nil, err
	}

	if err := uow.Interns().Transition(ctx, in, from); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("complete_intern: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventInternCompleted, in.ID, map[string]any{
			"final_evaluation": cmd.FinalEvaluation,
		}))
	}
	if h.notifier != nil {
		_ = h.notifier.Send(ctx, string(shared.EventInternCompleted), in.AccountID, map[string]any{
			"intern_id":        in.InternID,
			"final_evaluation": cmd.FinalEvaluation,
		})
	}

	return in, nil
}

// TerminateInternCommand removes an intern from the program.
type TerminateInternCommand struct {
	Actor    shared.Actor
	InternID string
	Reason   string
}

// TerminateInternHandler handles TerminateInternCommand.
type TerminateInternHandler struct {
	uowFactory UnitOfWorkFactory
	events     shared.EventPublisher
}

// NewTerminateInternHandler creates the handler.
func NewTerminateInternHandler(uowFactory UnitOfWorkFactory, events shared.EventPublisher) *TerminateInternHandler {
	return &TerminateInternHandler{uowFactory: uowFactory, events: events}
}

// Handle terminates the internship.
func (h *TerminateInternHandler) Handle(ctx context.Context, cmd TerminateInternCommand) (*intern.Intern, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindIntern, "Terminate", ""); err != nil {
		return nil, err
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("terminate_intern: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	in, err := uow.Interns().GetByID(ctx, cmd.InternID)
	if err != nil {
		return nil, err
	}

	from := in.Status
	if err := in.Terminate(cmd.Reason); err != nil {
		return nil, err
	}

	if err := uow.Interns().Transition(ctx, in, from); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("terminate_intern: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventInternTerminated, in.ID, map[string]any{
			"reason": in.TerminationReason,
		}))
	}

	return in, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ISSUE CERTIFICATE
// Only for COMPLETED interns. Re-issuing the same reference is idempotent;
// a different reference on an issued certificate is a conflict.
// ══════════════════════════════════════════════════════════════════════════════

// IssueCertificateCommand records the certificate reference.
type IssueCertificateCommand struct {
	Actor          shared.Actor
	InternID       string
	CertificateRef string
}

// IssueCertificateHandler handles IssueCertificateCommand.
type IssueCertificateHandler struct {
	uowFactory UnitOfWorkFactory
	notifier   Notifier
	events     shared.EventPublisher
}

// NewIssueCertificateHandler creates the handler.
func NewIssueCertificateHandler(uowFactory UnitOfWorkFactory, notifier Notifier, events shared.EventPublisher) *IssueCertificateHandler {
	return &IssueCertificateHandler{uowFactory: uowFactory, notifier: notifier, events: events}
}

// Handle records the certificate.
func (h *IssueCertificateHandler) Handle(ctx context.Context, cmd IssueCertificateCommand) (*intern.Intern, error) {
	if err := shared.Authorize(cmd.Actor, shared.KindIntern, "IssueCertificate", ""); err != nil {
		return nil, err
	}

	uow, err := h.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("issue_certificate: begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	in, err := uow.Interns().GetByID(ctx, cmd.InternID)
	if err != nil {
		return nil, err
	}

	alreadyIssued := in.CertificateIssued
	if err := in.IssueCertificate(cmd.CertificateRef); err != nil {
		return nil, err
	}
	if alreadyIssued {
		// Idempotent re-issue, nothing to write or announce.
		return in, nil
	}

	if err := uow.Interns().Update(ctx, in); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("issue_certificate: commit: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventInternCertificateIssued, in.ID, map[string]any{
			"certificate_ref": in.CertificateRef,
		}))
	}
	if h.notifier != nil {
		_ = h.notifier.Send(ctx, string(shared.EventInternCertificateIssued), in.AccountID, map[string]any{
			"intern_id":       in.InternID,
			"certificate_ref": in.CertificateRef,
		})
	}

	return in, nil
}
