// Package intern contains the domain model for an intern: the operational
// identity created once a candidate is accepted and has arrived. Linked 1:1
// to its source candidate, distinct entity.
package intern

import (
	"fmt"
	"strings"
	"time"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// Evaluation bounds for the final evaluation score.
const (
	MinEvaluation = 0.0
	MaxEvaluation = 4.0
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Status is the intern lifecycle status. Suspension is a flag, not a status:
// a suspended intern is still ACTIVE.
type Status string

const (
	// StatusActive - working; initial, set at promotion.
	StatusActive Status = "ACTIVE"
	// StatusCompleted - finished the internship; terminal.
	StatusCompleted Status = "COMPLETED"
	// StatusTerminated - removed from the program; terminal.
	StatusTerminated Status = "TERMINATED"
)

// IsValid checks that the status is part of the enumeration.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusTerminated:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is defined.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusTerminated
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: INTERN
// ══════════════════════════════════════════════════════════════════════════════

// Intern is the operational identity of an arrived candidate.
//
// Invariants:
//   - FinalEvaluation, if present, lies in [0.00, 4.00].
//   - CertificateIssued implies a non-empty CertificateRef.
//   - IsSuspended implies Status == ACTIVE.
type Intern struct {
	// ID - internal unique identifier (UUID string).
	ID string

	// InternID - the generated human-readable intern identifier.
	InternID string

	// CandidateID - the source candidate; unique (at most one intern per
	// candidate, enforced by the repository).
	CandidateID string

	// AccountID - linked login account, empty until issued.
	AccountID string

	// SupervisorID - assigned supervisor user, optional; overwritten on
	// reassignment.
	SupervisorID string

	// DepartmentID - assigned department, optional.
	DepartmentID string

	// StartDate - internship start (promotion time).
	StartDate time.Time

	// EndDate - set on completion or termination.
	EndDate *time.Time

	// Status - current lifecycle status.
	Status Status

	// IsActive - true exactly while Status is ACTIVE.
	IsActive bool

	// IsSuspended - suspension flag; never true in a terminal status.
	IsSuspended bool

	// SuspensionReason - present only while suspended.
	SuspensionReason string

	// Skills - free-form skill tags.
	Skills []string

	// InterviewNotes - notes recorded during onboarding interviews.
	InterviewNotes string

	// FinalEvaluation - bounded [0.00, 4.00], nil until completion.
	FinalEvaluation *float64

	// CertificateRef - opaque reference to the issued certificate.
	CertificateRef string

	// CertificateIssued - true once a certificate reference is recorded.
	CertificateIssued bool

	// CompletionNotes - optional notes recorded on completion.
	CompletionNotes string

	// TerminationReason - present only when terminated.
	TerminationReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain errors.
var (
	ErrNotFound        = shared.NewDomainError("intern", "Find", shared.ErrNotFound, "intern not found")
	ErrAlreadyPromoted = shared.NewDomainError("intern", "Promote", shared.ErrConflict, "candidate already has an intern")
)

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// NewInternParams contains parameters for creating an intern at promotion.
type NewInternParams struct {
	ID          string
	InternID    string
	CandidateID string
	StartDate   time.Time
}

// NewIntern creates an intern in ACTIVE, non-suspended state.
func NewIntern(p NewInternParams) (*Intern, error) {
	if p.ID == "" {
		return nil, shared.NewDomainError("intern", "Promote", shared.ErrValidation, "id is required")
	}
	if p.InternID == "" {
		return nil, shared.NewDomainError("intern", "Promote", shared.ErrValidation, "intern identifier is required")
	}
	if p.CandidateID == "" {
		return nil, shared.NewDomainError("intern", "Promote", shared.ErrValidation, "candidate id is required")
	}

	start := p.StartDate
	if start.IsZero() {
		start = time.Now().UTC()
	}

	now := time.Now().UTC()
	return &Intern{
		ID:          p.ID,
		InternID:    p.InternID,
		CandidateID: p.CandidateID,
		StartDate:   start,
		Status:      StatusActive,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GenerateInternID builds the human-readable intern identifier from the year
// and a short unique suffix, e.g. "INT-2026-1A2B3C".
func GenerateInternID(year int, suffix string) string {
	return fmt.Sprintf("INT-%d-%s", year, strings.ToUpper(suffix))
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS
// ══════════════════════════════════════════════════════════════════════════════

// CanSubmitWork reports whether the intern may create new submissions.
// Suspension blocks new submissions without changing the status.
func (i *Intern) CanSubmitWork() bool {
	return i.Status == StatusActive && !i.IsSuspended
}

// AssignSupervisor assigns or reassigns the supervisor (overwrite, not
// additive). Legal any time the intern is not TERMINATED.
func (i *Intern) AssignSupervisor(supervisorID string) error {
	if i.Status == StatusTerminated {
		return shared.NewDomainError("intern", "Assign", shared.ErrInvalidState,
			"cannot assign a supervisor to a TERMINATED intern")
	}
	if strings.TrimSpace(supervisorID) == "" {
		return shared.NewDomainError("intern", "Assign", shared.ErrValidation, "supervisor id is required")
	}

	i.SupervisorID = supervisorID
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// AssignDepartment assigns or reassigns the department.
func (i *Intern) AssignDepartment(departmentID string) error {
	if i.Status == StatusTerminated {
		return shared.NewDomainError("intern", "Assign", shared.ErrInvalidState,
			"cannot assign a department to a TERMINATED intern")
	}
	if strings.TrimSpace(departmentID) == "" {
		return shared.NewDomainError("intern", "Assign", shared.ErrValidation, "department id is required")
	}

	i.DepartmentID = departmentID
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateProfile replaces the skills set and interview notes.
func (i *Intern) UpdateProfile(skills []string, interviewNotes string) error {
	if i.Status == StatusTerminated {
		return shared.NewDomainError("intern", "UpdateProfile", shared.ErrInvalidState,
			"cannot update the profile of a TERMINATED intern")
	}

	// Deduplicate while preserving order.
	seen := make(map[string]struct{}, len(skills))
	cleaned := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		cleaned = append(cleaned, s)
	}

	i.Skills = cleaned
	i.InterviewNotes = interviewNotes
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// LinkAccount records the issued login account.
func (i *Intern) LinkAccount(accountID string) error {
	if accountID == "" {
		return shared.NewDomainError("intern", "LinkAccount", shared.ErrValidation, "account id is required")
	}
	if i.AccountID != "" && i.AccountID != accountID {
		return shared.NewDomainError("intern", "LinkAccount", shared.ErrConflict, "intern already has a linked account")
	}

	i.AccountID = accountID
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// Suspend sets the suspension flag with a mandatory reason. Legal only while
// ACTIVE; the status itself does not change.
func (i *Intern) Suspend(reason string) error {
	if i.Status != StatusActive {
		return shared.NewDomainError("intern", "Suspend", shared.ErrInvalidState,
			"only ACTIVE interns can be suspended (current: "+string(i.Status)+")")
	}
	if i.IsSuspended {
		return shared.NewDomainError("intern", "Suspend", shared.ErrConflict, "intern is already suspended")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("intern", "Suspend", shared.ErrValidation, "suspension reason is required")
	}

	i.IsSuspended = true
	i.SuspensionReason = reason
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// Unsuspend clears the suspension flag.
func (i *Intern) Unsuspend() error {
	if i.Status != StatusActive {
		return shared.NewDomainError("intern", "Unsuspend", shared.ErrInvalidState,
			"only ACTIVE interns can be unsuspended (current: "+string(i.Status)+")")
	}
	if !i.IsSuspended {
		return shared.NewDomainError("intern", "Unsuspend", shared.ErrConflict, "intern is not suspended")
	}

	i.IsSuspended = false
	i.SuspensionReason = ""
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete transitions ACTIVE → COMPLETED, suspended or not. The evaluation
// must lie in [0.00, 4.00]; suspension is forced off since terminal statuses
// are incompatible with it.
func (i *Intern) Complete(finalEvaluation float64, completionNotes string) error {
	if i.Status != StatusActive {
		return shared.NewDomainError("intern", "Complete", shared.ErrInvalidState,
			"only ACTIVE interns can be completed (current: "+string(i.Status)+")")
	}
	if finalEvaluation < MinEvaluation || finalEvaluation > MaxEvaluation {
		return shared.NewDomainError("intern", "Complete", shared.ErrValidation,
			fmt.Sprintf("final evaluation must be between %.2f and %.2f", MinEvaluation, MaxEvaluation))
	}

	now := time.Now().UTC()
	i.Status = StatusCompleted
	i.IsActive = false
	i.IsSuspended = false
	i.SuspensionReason = ""
	i.FinalEvaluation = &finalEvaluation
	i.CompletionNotes = completionNotes
	i.EndDate = &now
	i.UpdatedAt = now
	return nil
}

// Terminate transitions ACTIVE → TERMINATED with a mandatory reason.
func (i *Intern) Terminate(reason string) error {
	if i.Status != StatusActive {
		return shared.NewDomainError("intern", "Terminate", shared.ErrInvalidState,
			"only ACTIVE interns can be terminated (current: "+string(i.Status)+")")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("intern", "Terminate", shared.ErrValidation, "termination reason is required")
	}

	now := time.Now().UTC()
	i.Status = StatusTerminated
	i.IsActive = false
	i.IsSuspended = false
	i.SuspensionReason = ""
	i.TerminationReason = reason
	i.EndDate = &now
	i.UpdatedAt = now
	return nil
}

// IssueCertificate records the certificate reference for a COMPLETED intern.
// Re-issuing with the same reference is idempotent; attempting to overwrite
// an issued certificate with a different reference is a conflict.
func (i *Intern) IssueCertificate(certificateRef string) error {
	if i.Status != StatusCompleted {
		return shared.NewDomainError("intern", "IssueCertificate", shared.ErrInvalidState,
			"certificates can only be issued for COMPLETED interns (current: "+string(i.Status)+")")
	}
	if strings.TrimSpace(certificateRef) == "" {
		return shared.NewDomainError("intern", "IssueCertificate", shared.ErrValidation,
			"certificate reference is required")
	}
	if i.CertificateIssued {
		if i.CertificateRef == certificateRef {
			return nil // idempotent re-issue
		}
		return shared.NewDomainError("intern", "IssueCertificate", shared.ErrConflict,
			"a different certificate has already been issued")
	}

	i.CertificateRef = certificateRef
	i.CertificateIssued = true
	i.UpdatedAt = time.Now().UTC()
	return nil
}
