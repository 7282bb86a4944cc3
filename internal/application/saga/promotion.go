// Package saga contains multi-aggregate business processes. Each saga runs
// its persistence steps inside one unit of work so a half-finished flow can
// never be observed; only side effects that tolerate loss (notifications,
// events) run after the commit.
package saga

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/intern-hub/intern-placement-hub/internal/application/command"
	"github.com/intern-hub/intern-placement-hub/internal/domain/candidate"
	"github.com/intern-hub/intern-placement-hub/internal/domain/intern"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROMOTION SAGA
// An accepted candidate physically arrives and becomes an intern.
// Flow: Authorize → Mark Arrived → Create Intern → Issue Account →
// Commit → Notify.
// Every persistence step shares one transaction: a candidate must never be
// stored as ARRIVED without its intern, and an account-issuance failure rolls
// the whole arrival back.
// ══════════════════════════════════════════════════════════════════════════════

// PromotionInput identifies the arriving candidate.
type PromotionInput struct {
	// Actor - the admin recording the arrival.
	Actor shared.Actor

	// CandidateID - the internal candidate identifier.
	CandidateID string

	// StartDate - internship start; zero means "now".
	StartDate time.Time

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate checks the input.
func (i PromotionInput) Validate() error {
	if i.CandidateID == "" {
		return shared.NewDomainError("candidate", "MarkArrived", shared.ErrValidation,
			"candidate id is required")
	}
	return nil
}

// PromotionResult contains the outcome of a successful promotion.
type PromotionResult struct {
	// Candidate - the candidate in its post-promotion status.
	Candidate *candidate.Candidate

	// Intern - the newly created intern.
	Intern *intern.Intern

	// AccountCreated reports whether a login account was issued. Candidates
	// without an email end the flow in ARRIVED instead of ACCOUNT_CREATED.
	AccountCreated bool

	// PromotedAt - timestamp of the successful promotion.
	PromotedAt time.Time
}

// PromotionStep names a step of the promotion process.
type PromotionStep string

const (
	StepAuthorize     PromotionStep = "authorize"
	StepMarkArrived   PromotionStep = "mark_arrived"
	StepCreateIntern  PromotionStep = "create_intern"
	StepIssueAccount  PromotionStep = "issue_account"
	StepCommit        PromotionStep = "commit"
	StepNotify        PromotionStep = "notify"
	StepPromotionDone PromotionStep = "done"
)

// PromotionSaga orchestrates arrival, intern creation, and account issuance.
type PromotionSaga struct {
	uowFactory command.UnitOfWorkFactory
	accounts   command.AccountIssuer
	notifier   command.Notifier
	events     shared.EventPublisher
	idGen      command.IDGenerator
}

// NewPromotionSaga creates the saga with all dependencies.
func NewPromotionSaga(
	uowFactory command.UnitOfWorkFactory,
	accounts command.AccountIssuer,
	notifier command.Notifier,
	events shared.EventPublisher,
	idGen command.IDGenerator,
) *PromotionSaga {
	return &PromotionSaga{
		uowFactory: uowFactory,
		accounts:   accounts,
		notifier:   notifier,
		events:     events,
		idGen:      idGen,
	}
}

// Execute runs the complete promotion.
func (s *PromotionSaga) Execute(ctx context.Context, input PromotionInput) (*PromotionResult, error) {
	if err := input.Validate(); err != nil {
		return nil, s.fail(StepAuthorize, err)
	}
	if err := shared.Authorize(input.Actor, shared.KindCandidate, "MarkArrived", ""); err != nil {
		return nil, err
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, s.fail(StepMarkArrived, fmt.Errorf("begin unit of work: %w", err))
	}
	defer func() { _ = uow.Rollback(ctx) }()

	// Step 1: mark the candidate as arrived. A repeated arrival loses here
	// with InvalidState, either in the domain check or in the
	// status-qualified write.
	cand, err := uow.Candidates().GetByID(ctx, input.CandidateID)
	if err != nil {
		return nil, err
	}
	from := cand.Status
	if err := cand.MarkArrived(); err != nil {
		return nil, err
	}
	if err := uow.Candidates().Transition(ctx, cand, from); err != nil {
		return nil, err
	}

	// Step 2: create the intern. The unique candidate back-reference in the
	// store closes the duplicate-promotion race for good.
	newIntern, err := s.createIntern(cand, input.StartDate)
	if err != nil {
		return nil, s.fail(StepCreateIntern, err)
	}
	if err := uow.Interns().Create(ctx, newIntern); err != nil {
		return nil, err
	}

	// Step 3: issue the login account while the transaction is still open.
	// No account without an intern, no ACCOUNT_CREATED candidate without an
	// account; an issuer failure aborts the whole promotion.
	var issued *command.IssuedAccount
	if cand.Email != "" {
		issued, err = s.accounts.CreateAccount(ctx, cand.Email, string(shared.RoleIntern))
		if err != nil {
			return nil, s.fail(StepIssueAccount, fmt.Errorf("issue account: %w", err))
		}
		if err := newIntern.LinkAccount(issued.AccountID); err != nil {
			return nil, err
		}
		if err := uow.Interns().Update(ctx, newIntern); err != nil {
			return nil, err
		}

		arrived := cand.Status
		if err := cand.MarkAccountCreated(); err != nil {
			return nil, err
		}
		if err := uow.Candidates().Transition(ctx, cand, arrived); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, s.fail(StepCommit, fmt.Errorf("commit: %w", err))
	}

	// Step 4: post-commit side effects. Losing a notification never undoes
	// a promotion.
	s.publishEvents(input, cand, newIntern, issued)
	s.notify(ctx, cand, newIntern, issued)

	return &PromotionResult{
		Candidate:      cand,
		Intern:         newIntern,
		AccountCreated: issued != nil,
		PromotedAt:     time.Now().UTC(),
	}, nil
}

// createIntern builds the intern entity with a generated human-readable ID.
func (s *PromotionSaga) createIntern(cand *candidate.Candidate, startDate time.Time) (*intern.Intern, error) {
	id := s.idGen.GenerateID()
	suffix := strings.ReplaceAll(id, "-", "")
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}

	start := startDate
	if start.IsZero() {
		start = time.Now().UTC()
	}

	return intern.NewIntern(intern.NewInternParams{
		ID:          id,
		InternID:    intern.GenerateInternID(start.Year(), suffix),
		CandidateID: cand.ID,
		StartDate:   start,
	})
}

// publishEvents emits the domain events for the completed promotion.
func (s *PromotionSaga) publishEvents(input PromotionInput, cand *candidate.Candidate, in *intern.Intern, issued *command.IssuedAccount) {
	if s.events == nil {
		return
	}

	emit := func(t shared.EventType, aggregateID string, data map[string]any) {
		e := shared.NewBaseEvent(t, aggregateID, data)
		if input.CorrelationID != "" {
			e = e.WithCorrelationID(input.CorrelationID)
		}
		_ = s.events.Publish(e)
	}

	emit(shared.EventCandidateArrived, cand.ID, map[string]any{
		"application_id": cand.ApplicationID,
	})
	emit(shared.EventInternPromoted, in.ID, map[string]any{
		"candidate_id": cand.ID,
		"intern_id":    in.InternID,
		"start_date":   in.StartDate,
	})
	if issued != nil {
		emit(shared.EventInternAccountCreated, in.ID, map[string]any{
			"account_id": issued.AccountID,
		})
	}
}

// notify dispatches the arrival notifications. The temporary credential rides
// once in the account-created notification and is never persisted.
func (s *PromotionSaga) notify(ctx context.Context, cand *candidate.Candidate, in *intern.Intern, issued *command.IssuedAccount) {
	if s.notifier == nil {
		return
	}

	_ = s.notifier.Send(ctx, string(shared.EventInternPromoted), cand.Email, map[string]any{
		"intern_id": in.InternID,
		"full_name": cand.FullName,
	})
	if issued != nil {
		_ = s.notifier.Send(ctx, string(shared.EventInternAccountCreated), cand.Email, map[string]any{
			"account_id":           issued.AccountID,
			"temporary_credential": issued.TemporaryCredential,
		})
	}
}

// fail wraps an error with saga context.
func (s *PromotionSaga) fail(step PromotionStep, err error) error {
	return &PromotionError{Step: step, Cause: err}
}

// PromotionError is an error with the step it happened at.
type PromotionError struct {
	Step  PromotionStep
	Cause error
}

// Error implements the error interface.
func (e *PromotionError) Error() string {
	return fmt.Sprintf("promotion failed at step '%s': %v", e.Step, e.Cause)
}

// Unwrap returns the underlying error.
func (e *PromotionError) Unwrap() error { return e.Cause }
