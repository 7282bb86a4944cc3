// Package candidate contains the domain model for a candidate student
// nested inside exactly one application batch. The parent link is a
// one-directional foreign key; the application never holds a child
// collection in memory.
package candidate

import (
	"strings"
	"time"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Status is the candidate review lifecycle status.
type Status string

const (
	// StatusPendingReview - awaiting the admin decision; initial.
	StatusPendingReview Status = "PENDING_REVIEW"
	// StatusAccepted - accepted by an admin. Acceptance and awaiting-arrival
	// are adjacent: a single review call lands in AWAITING_ARRIVAL.
	StatusAccepted Status = "ACCEPTED"
	// StatusRejected - rejected by an admin; terminal.
	StatusRejected Status = "REJECTED"
	// StatusAwaitingArrival - accepted, not yet physically arrived.
	StatusAwaitingArrival Status = "AWAITING_ARRIVAL"
	// StatusArrived - arrived; intern promotion has run.
	StatusArrived Status = "ARRIVED"
	// StatusAccountCreated - login account issued; terminal.
	StatusAccountCreated Status = "ACCOUNT_CREATED"
)

// IsValid checks that the status is part of the enumeration.
func (s Status) IsValid() bool {
	switch s {
	case StatusPendingReview, StatusAccepted, StatusRejected,
		StatusAwaitingArrival, StatusArrived, StatusAccountCreated:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is defined.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusAccountCreated
}

// Decision is an admin review decision for a candidate.
type Decision string

const (
	DecisionAccept Decision = "ACCEPT"
	DecisionReject Decision = "REJECT"
)

// IsValid checks that the decision is known.
func (d Decision) IsValid() bool {
	return d == DecisionAccept || d == DecisionReject
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: CANDIDATE
// ══════════════════════════════════════════════════════════════════════════════

// Candidate is a candidate student inside one application.
type Candidate struct {
	// ID - internal unique identifier (UUID string).
	ID string

	// ApplicationID - the parent application (one-directional FK).
	ApplicationID string

	// FullName - the candidate's name.
	FullName string

	// StudentID - the human-readable student identifier. Unique across the
	// whole system, not just within one application.
	StudentID string

	// FieldOfStudy - the candidate's field of study.
	FieldOfStudy string

	// AcademicYear - academic year of the candidacy.
	AcademicYear string

	// Email - optional contact email.
	Email string

	// Phone - optional contact phone.
	Phone string

	// Status - current review status.
	Status Status

	// RejectionReason - set if and only if Status is REJECTED.
	RejectionReason string

	// CVRef - opaque reference to the uploaded CV, empty if none.
	CVRef string

	// TranscriptRef - opaque reference to the transcript, empty if none.
	TranscriptRef string

	// Deleted - soft-delete marker. Deleted candidates are excluded from
	// listings and counts; their document references are cleared.
	Deleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain errors.
var (
	ErrNotFound         = shared.NewDomainError("candidate", "Find", shared.ErrNotFound, "candidate not found")
	ErrStudentIDTaken   = shared.NewDomainError("candidate", "Create", shared.ErrConflict, "student identifier already in use")
	ErrParentNotPending = shared.NewDomainError("candidate", "Mutate", shared.ErrInvalidState, "parent application is no longer PENDING")
)

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// NewCandidateParams contains parameters for creating a candidate.
type NewCandidateParams struct {
	ID            string
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

// NewCandidate creates a candidate in PENDING_REVIEW with full validation.
// Global StudentID uniqueness is a repository concern checked at persist time.
func NewCandidate(p NewCandidateParams) (*Candidate, error) {
	if p.ID == "" {
		return nil, shared.NewDomainError("candidate", "Create", shared.ErrValidation, "id is required")
	}
	if p.ApplicationID == "" {
		return nil, shared.NewDomainError("candidate", "Create", shared.ErrValidation, "application id is required")
	}
	name := strings.TrimSpace(p.FullName)
	if name == "" || len(name) > 150 {
		return nil, shared.NewDomainError("candidate", "Create", shared.ErrValidation, "full name must be 1-150 chars")
	}
	studentID := strings.TrimSpace(p.StudentID)
	if studentID == "" || len(studentID) > 50 {
		return nil, shared.NewDomainError("candidate", "Create", shared.ErrValidation, "student identifier must be 1-50 chars")
	}
	if strings.TrimSpace(p.FieldOfStudy) == "" {
		return nil, shared.NewDomainError("candidate", "Create", shared.ErrValidation, "field of study is required")
	}

	now := time.Now().UTC()
	return &Candidate{
		ID:            p.ID,
		ApplicationID: p.ApplicationID,
		FullName:      name,
		StudentID:     studentID,
		FieldOfStudy:  strings.TrimSpace(p.FieldOfStudy),
		AcademicYear:  strings.TrimSpace(p.AcademicYear),
		Email:         strings.TrimSpace(p.Email),
		Phone:         strings.TrimSpace(p.Phone),
		Status:        StatusPendingReview,
		CVRef:         p.CVRef,
		TranscriptRef: p.TranscriptRef,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS
// ══════════════════════════════════════════════════════════════════════════════

// UpdateDetails edits contact and document fields. The command layer only
// permits this while the parent application is PENDING.
func (c *Candidate) UpdateDetails(fullName, fieldOfStudy, email, phone, cvRef, transcriptRef string) error {
	if c.Deleted {
		return shared.NewDomainError("candidate", "Edit", shared.ErrInvalidState, "candidate is deleted")
	}

	name := strings.TrimSpace(fullName)
	if name == "" || len(name) > 150 {
		return shared.NewDomainError("candidate", "Edit", shared.ErrValidation, "full name must be 1-150 chars")
	}
	if strings.TrimSpace(fieldOfStudy) == "" {
		return shared.NewDomainError("candidate", "Edit", shared.ErrValidation, "field of study is required")
	}

	c.FullName = name
	c.FieldOfStudy = strings.TrimSpace(fieldOfStudy)
	c.Email = strings.TrimSpace(email)
	c.Phone = strings.TrimSpace(phone)
	c.CVRef = cvRef
	c.TranscriptRef = transcriptRef
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Review records the admin decision from PENDING_REVIEW. An acceptance lands
// directly in AWAITING_ARRIVAL; a rejection requires a non-empty reason.
func (c *Candidate) Review(decision Decision, rejectionReason string) error {
	if c.Status != StatusPendingReview {
		return shared.NewDomainError("candidate", "Review", shared.ErrInvalidState,
			"candidate can only be reviewed from PENDING_REVIEW (current: "+string(c.Status)+")")
	}
	if !decision.IsValid() {
		return shared.NewDomainError("candidate", "Review", shared.ErrValidation,
			"decision must be ACCEPT or REJECT")
	}

	switch decision {
	case DecisionAccept:
		c.Status = StatusAwaitingArrival
		c.RejectionReason = ""
	case DecisionReject:
		if strings.TrimSpace(rejectionReason) == "" {
			return shared.NewDomainError("candidate", "Review", shared.ErrValidation,
				"rejection reason is required when rejecting")
		}
		c.Status = StatusRejected
		c.RejectionReason = rejectionReason
	}

	c.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkArrived transitions AWAITING_ARRIVAL → ARRIVED. The command layer
// couples this with intern promotion in one atomic unit: a candidate must
// never persist as arrived without its intern.
func (c *Candidate) MarkArrived() error {
	if c.Status != StatusAwaitingArrival {
		return shared.NewDomainError("candidate", "MarkArrived", shared.ErrInvalidState,
			"candidate can only arrive from AWAITING_ARRIVAL (current: "+string(c.Status)+")")
	}

	c.Status = StatusArrived
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkAccountCreated transitions ARRIVED → ACCOUNT_CREATED once the login
// account exists.
func (c *Candidate) MarkAccountCreated() error {
	if c.Status != StatusArrived {
		return shared.NewDomainError("candidate", "MarkAccountCreated", shared.ErrInvalidState,
			"account can only be recorded from ARRIVED (current: "+string(c.Status)+")")
	}

	c.Status = StatusAccountCreated
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// SoftDelete marks the candidate removed and clears its document references
// (advisory removal only; file bytes are never touched from here).
func (c *Candidate) SoftDelete() error {
	if c.Deleted {
		return shared.NewDomainError("candidate", "Remove", shared.ErrInvalidState, "candidate is already deleted")
	}

	c.Deleted = true
	c.CVRef = ""
	c.TranscriptRef = ""
	c.UpdatedAt = time.Now().UTC()
	return nil
}
