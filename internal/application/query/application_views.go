// Package query contains read operations (CQRS - Queries). Queries bypass
// the unit of work and read through plain repositories; they never mutate
// state.
package query

import (
	"context"
	"time"

	"github.com/intern-hub/intern-placement-hub/internal/domain/application"
	"github.com/intern-hub/intern-placement-hub/internal/domain/candidate"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// APPLICATION VIEWS
// The application detail view joins the batch with its non-deleted
// candidates; the children live behind a one-directional FK, so the join
// happens here, not in the aggregate.
// ══════════════════════════════════════════════════════════════════════════════

// ApplicationDTO is the read model of an application batch.
type ApplicationDTO struct {
	ID              string     `json:"id"`
	UniversityID    string     `json:"university_id"`
	Name            string     `json:"name"`
	AcademicYear    string     `json:"academic_year"`
	LetterRef       string     `json:"letter_ref,omitempty"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ReviewedBy      string     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CandidateDTO is the read model of a candidate student.
type CandidateDTO struct {
	ID              string    `json:"id"`
	ApplicationID   string    `json:"application_id"`
	FullName        string    `json:"full_name"`
	StudentID       string    `json:"student_id"`
	FieldOfStudy    string    `json:"field_of_study"`
	AcademicYear    string    `json:"academic_year,omitempty"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CVRef           string    `json:"cv_ref,omitempty"`
	TranscriptRef   string    `json:"transcript_ref,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ApplicationDetailDTO is the application joined with its candidate roster.
type ApplicationDetailDTO struct {
	Application ApplicationDTO `json:"application"`
	Candidates  []CandidateDTO `json:"candidates"`
}

// NewApplicationDTO maps the entity to its read model.
func NewApplicationDTO(a *application.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:              a.ID,
		UniversityID:    a.UniversityID,
		Name:            a.Name,
		AcademicYear:    a.AcademicYear.String(),
		LetterRef:       a.LetterRef,
		Status:          string(a.Status),
		RejectionReason: a.RejectionReason,
		ReviewedBy:      a.ReviewedBy,
		ReviewedAt:      a.ReviewedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// NewCandidateDTO maps the entity to its read model.
func NewCandidateDTO(c *candidate.Candidate) CandidateDTO {
	return CandidateDTO{
		ID:              c.ID,
		ApplicationID:   c.ApplicationID,
		FullName:        c.FullName,
		StudentID:       c.StudentID,
		FieldOfStudy:    c.FieldOfStudy,
		AcademicYear:    c.AcademicYear,
		Email:           c.Email,
		Phone:           c.Phone,
		Status:          string(c.Status),
		RejectionReason: c.RejectionReason,
		CVRef:           c.CVRef,
		TranscriptRef:   c.TranscriptRef,
		CreatedAt:       c.CreatedAt,
	}
}

// GetApplicationQuery fetches one application with its roster.
type GetApplicationQuery struct {
	Actor         shared.Actor
	ApplicationID string
}

// GetApplicationHandler handles GetApplicationQuery.
type GetApplicationHandler struct {
	applications application.Repository
	candidates   candidate.Repository
}

// NewGetApplicationHandler creates the handler.
func NewGetApplicationHandler(applications application.Repository, candidates candidate.Repository) *GetApplicationHandler {
	return &GetApplicationHandler{applications: applications, candidates: candidates}
}

// Handle loads the detail view. Universities only see their own batches.
func (h *GetApplicationHandler) Handle(ctx context.Context, q GetApplicationQuery) (*ApplicationDetailDTO, error) {
	app, err := h.applications.GetByID(ctx, q.ApplicationID)
	if err != nil {
		return nil, err
	}
	if q.Actor.Role == shared.RoleUniversity && q.Actor.UniversityID != app.UniversityID {
		return nil, application.ErrNotFound
	}

	roster, err := h.candidates.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	detail := &ApplicationDetailDTO{
		Application: NewApplicationDTO(app),
		Candidates:  make([]CandidateDTO, 0, len(roster)),
	}
	for _, c := range roster {
		detail.Candidates = append(detail.Candidates, NewCandidateDTO(c))
	}
	return detail, nil
}

// ListApplicationsQuery lists batches for the actor's scope. Universities
// list their own; admins filter by status.
type ListApplicationsQuery struct {
	Actor  shared.Actor
	Status application.Status
	Opts   application.ListOptions
}

// ListApplicationsHandler handles ListApplicationsQuery.
type ListApplicationsHandler struct {
	applications application.Repository
}

// NewListApplicationsHandler creates the handler.
func NewListApplicationsHandler(applications application.Repository) *ListApplicationsHandler {
	return &ListApplicationsHandler{applications: applications}
}

// Handle lists the applications.
func (h *ListApplicationsHandler) Handle(ctx context.Context, q ListApplicationsQuery) ([]ApplicationDTO, error) {
	opts := q.Opts
	if opts.Limit <= 0 {
		opts = application.DefaultListOptions()
	}

	var (
		apps []*application.Application
		err  error
	)
	switch q.Actor.Role {
	case shared.RoleUniversity:
		apps, err = h.applications.ListByUniversity(ctx, q.Actor.UniversityID, opts)
	default:
		status := q.Status
		if status == "" {
			status = application.StatusUnderReview
		}
		apps, err = h.applications.ListByStatus(ctx, status, opts)
	}
	if err != nil {
		return nil, err
	}

	out := make([]ApplicationDTO, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplicationDTO(a))
	}
	return out, nil
}
