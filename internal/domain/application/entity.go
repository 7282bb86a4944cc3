// Package application contains the domain model for a university's batch
// application: one named submission of candidate students for one academic
// year. The core business logic lives here with no external dependencies.
package application

import (
	"strconv"
	"strings"
	"time"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// AcademicYear represents an academic year in "YYYY/YYYY" format,
// e.g. "2025/2026". The second year must follow the first.
type AcademicYear string

// IsValid checks the format and that the years are consecutive.
func (y AcademicYear) IsValid() bool {
	s := string(y)
	parts := strings.Split(s, "/")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
		return false
	}
	first, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	second, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return second == first+1
}

// String returns the string representation.
func (y AcademicYear) String() string { return string(y) }

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Status is the application lifecycle status. The enumeration is closed and
// serialized case-sensitively.
type Status string

const (
	// StatusPending - created by the university, still editable.
	StatusPending Status = "PENDING"
	// StatusUnderReview - submitted; awaiting the admin decision.
	StatusUnderReview Status = "UNDER_REVIEW"
	// StatusApproved - approved by an admin.
	StatusApproved Status = "APPROVED"
	// StatusRejected - rejected by an admin, with a reason.
	StatusRejected Status = "REJECTED"
	// StatusArchived - soft-retired; terminal.
	StatusArchived Status = "ARCHIVED"
)

// IsValid checks that the status is part of the enumeration.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected, StatusArchived:
		return true
	default:
		return false
	}
}

// IsDecided reports whether an admin decision has been recorded.
func (s Status) IsDecided() bool {
	return s == StatusApproved || s == StatusRejected
}

// IsTerminal reports whether no further transition is defined.
func (s Status) IsTerminal() bool { return s == StatusArchived }

// Decision is an admin review decision.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// IsValid checks that the decision is known.
func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: APPLICATION
// ══════════════════════════════════════════════════════════════════════════════

// Application is one submission batch owned by exactly one university.
// Candidates reference their parent application by ID; the application holds
// no in-memory child collection (children are loaded by query).
type Application struct {
	// ID - internal unique identifier (UUID string).
	ID string

	// UniversityID - the owning university.
	UniversityID string

	// Name - display name of the batch.
	Name string

	// AcademicYear - the academic year the batch applies for.
	AcademicYear AcademicYear

	// LetterRef - opaque reference to the official letter document.
	// Required before submission; never parsed.
	LetterRef string

	// Status - current lifecycle status.
	Status Status

	// RejectionReason - set if and only if Status is REJECTED.
	RejectionReason string

	// ReviewedBy - admin identity, present only after a decision.
	ReviewedBy string

	// ReviewedAt - decision timestamp, present only after a decision.
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain errors.
var (
	ErrNotFound      = shared.NewDomainError("application", "Find", shared.ErrNotFound, "application not found")
	ErrAlreadyExists = shared.NewDomainError("application", "Create", shared.ErrConflict, "application already exists")
)

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// NewApplicationParams contains parameters for creating an application.
type NewApplicationParams struct {
	ID           string
	UniversityID string
	Name         string
	AcademicYear AcademicYear
	LetterRef    string
}

// NewApplication creates a new application in PENDING with full validation.
func NewApplication(p NewApplicationParams) (*Application, error) {
	if p.ID == "" {
		return nil, shared.NewDomainError("application", "Create", shared.ErrValidation, "id is required")
	}
	if p.UniversityID == "" {
		return nil, shared.NewDomainError("application", "Create", shared.ErrValidation, "university id is required")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("application", "Create", shared.ErrValidation, "name must be 1-200 chars")
	}
	if !p.AcademicYear.IsValid() {
		return nil, shared.NewDomainError("application", "Create", shared.ErrValidation,
			"academic year must be consecutive years in YYYY/YYYY format")
	}

	now := time.Now().UTC()
	return &Application{
		ID:           p.ID,
		UniversityID: p.UniversityID,
		Name:         name,
		AcademicYear: p.AcademicYear,
		LetterRef:    strings.TrimSpace(p.LetterRef),
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS
// ══════════════════════════════════════════════════════════════════════════════

// UpdateDetails edits the batch name, academic year, and letter reference.
// Legal only while PENDING.
func (a *Application) UpdateDetails(name string, year AcademicYear, letterRef string) error {
	if a.Status != StatusPending {
		return shared.NewDomainError("application", "Edit", shared.ErrInvalidState,
			"application can only be edited while PENDING (current: "+string(a.Status)+")")
	}

	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("application", "Edit", shared.ErrValidation, "name must be 1-200 chars")
	}
	if !year.IsValid() {
		return shared.NewDomainError("application", "Edit", shared.ErrValidation,
			"academic year must be consecutive years in YYYY/YYYY format")
	}

	a.Name = name
	a.AcademicYear = year
	a.LetterRef = strings.TrimSpace(letterRef)
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Submit transitions PENDING → UNDER_REVIEW. candidateCount is the number of
// non-deleted candidates attached to the batch; the caller loads it by query.
// Each violated precondition fails with its own message, never a silent no-op.
func (a *Application) Submit(candidateCount int) error {
	if a.Status != StatusPending {
		return shared.NewDomainError("application", "Submit", shared.ErrInvalidState,
			"application can only be submitted from PENDING (current: "+string(a.Status)+")")
	}
	if candidateCount < 1 {
		return shared.NewDomainError("application", "Submit", shared.ErrPreconditionFailed,
			"at least one student is required before submission")
	}
	if a.LetterRef == "" {
		return shared.NewDomainError("application", "Submit", shared.ErrPreconditionFailed,
			"official letter reference is required before submission")
	}

	a.Status = StatusUnderReview
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Review records the admin decision, UNDER_REVIEW → APPROVED|REJECTED.
// A rejection requires a non-empty reason, stored verbatim.
func (a *Application) Review(reviewerID string, decision Decision, rejectionReason string) error {
	if a.Status != StatusUnderReview {
		return shared.NewDomainError("application", "Review", shared.ErrInvalidState,
			"application can only be reviewed from UNDER_REVIEW (current: "+string(a.Status)+")")
	}
	if !decision.IsValid() {
		return shared.NewDomainError("application", "Review", shared.ErrValidation,
			"decision must be APPROVE or REJECT")
	}

	now := time.Now().UTC()
	switch decision {
	case DecisionApprove:
		a.Status = StatusApproved
		a.RejectionReason = ""
	case DecisionReject:
		if strings.TrimSpace(rejectionReason) == "" {
			return shared.NewDomainError("application", "Review", shared.ErrValidation,
				"rejection reason is required when rejecting")
		}
		a.Status = StatusRejected
		a.RejectionReason = rejectionReason
	}

	a.ReviewedBy = reviewerID
	a.ReviewedAt = &now
	a.UpdatedAt = now
	return nil
}

// Archive soft-retires a decided application, APPROVED|REJECTED → ARCHIVED.
// Purely administrative; has no effect on child candidates or interns.
func (a *Application) Archive() error {
	if !a.Status.IsDecided() {
		return shared.NewDomainError("application", "Archive", shared.ErrInvalidState,
			"only APPROVED or REJECTED applications can be archived (current: "+string(a.Status)+")")
	}

	a.Status = StatusArchived
	a.UpdatedAt = time.Now().UTC()
	return nil
}
