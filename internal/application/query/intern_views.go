package query

import (
	"context"
	"time"

	"github.com/intern-hub/intern-placement-hub/internal/domain/intern"
)

// ══════════════════════════════════════════════════════════════════════════════
// INTERN VIEWS
// The intern detail is the hottest read (dashboards poll it), so it goes
// through a read-through cache. Listings always hit the store.
// ══════════════════════════════════════════════════════════════════════════════

// InternDTO is the read model of an intern.
type InternDTO struct {
	ID                string     `json:"id"`
	InternID          string     `json:"intern_id"`
	CandidateID       string     `json:"candidate_id"`
	AccountID         string     `json:"account_id,omitempty"`
	SupervisorID      string     `json:"supervisor_id,omitempty"`
	DepartmentID      string     `json:"department_id,omitempty"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	Status            string     `json:"status"`
	IsActive          bool       `json:"is_active"`
	IsSuspended       bool       `json:"is_suspended"`
	SuspensionReason  string     `json:"suspension_reason,omitempty"`
	Skills            []string   `json:"skills,omitempty"`
	FinalEvaluation   *float64   `json:"final_evaluation,omitempty"`
	CertificateRef    string     `json:"certificate_ref,omitempty"`
	CertificateIssued bool       `json:"certificate_issued"`
}

// NewInternDTO maps the entity to its read model.
func NewInternDTO(i *intern.Intern) InternDTO {
	return InternDTO{
		ID:                i.ID,
		InternID:          i.InternID,
		CandidateID:       i.CandidateID,
		AccountID:         i.AccountID,
		SupervisorID:      i.SupervisorID,
		DepartmentID:      i.DepartmentID,
		StartDate:         i.StartDate,
		EndDate:           i.EndDate,
		Status:            string(i.Status),
		IsActive:          i.IsActive,
		IsSuspended:       i.IsSuspended,
		SuspensionReason:  i.SuspensionReason,
		Skills:            i.Skills,
		FinalEvaluation:   i.FinalEvaluation,
		CertificateRef:    i.CertificateRef,
		CertificateIssued: i.CertificateIssued,
	}
}

// InternCache is the read-through cache boundary for intern details. A cache
// miss or error falls back to the store; Set failures are swallowed.
type InternCache interface {
	Get(ctx context.Context, internID string) (*intern.Intern, bool)
	Set(ctx context.Context, i *intern.Intern)
	Invalidate(ctx context.Context, internID string)
}

// GetInternQuery fetches one intern by internal ID.
type GetInternQuery struct {
	InternID string
}

// GetInternHandler handles GetInternQuery.
type GetInternHandler struct {
	interns intern.Repository
	cache   InternCache
}

// NewGetInternHandler creates the handler. cache may be nil.
func NewGetInternHandler(interns intern.Repository, cache InternCache) *GetInternHandler {
	return &GetInternHandler{interns: interns, cache: cache}
}

// Handle loads the intern, cache first.
func (h *GetInternHandler) Handle(ctx context.Context, q GetInternQuery) (*InternDTO, error) {
	if h.cache != nil {
		if cached, ok := h.cache.Get(ctx, q.InternID); ok {
			dto := NewInternDTO(cached)
			return &dto, nil
		}
	}

	in, err := h.interns.GetByID(ctx, q.InternID)
	if err != nil {
		return nil, err
	}
	if h.cache != nil {
		h.cache.Set(ctx, in)
	}

	dto := NewInternDTO(in)
	return &dto, nil
}

// ListInternsQuery lists interns, either by status or by supervisor.
// SupervisorID wins when both are set.
type ListInternsQuery struct {
	Status       intern.Status
	SupervisorID string
	Opts         intern.ListOptions
}

// ListInternsHandler handles ListInternsQuery.
type ListInternsHandler struct {
	interns intern.Repository
}

// NewListInternsHandler creates the handler.
func NewListInternsHandler(interns intern.Repository) *ListInternsHandler {
	return &ListInternsHandler{interns: interns}
}

// Handle lists the interns.
func (h *ListInternsHandler) Handle(ctx context.Context, q ListInternsQuery) ([]InternDTO, error) {
	opts := q.Opts
	if opts.Limit <= 0 {
		opts = intern.DefaultListOptions()
	}

	var (
		list []*intern.Intern
		err  error
	)
	if q.SupervisorID != "" {
		list, err = h.interns.ListBySupervisor(ctx, q.SupervisorID, opts)
	} else {
		status := q.Status
		if status == "" {
			status = intern.StatusActive
		}
		list, err = h.interns.ListByStatus(ctx, status, opts)
	}
	if err != nil {
		return nil, err
	}

	out := make([]InternDTO, 0, len(list))
	for _, i := range list {
		out = append(out, NewInternDTO(i))
	}
	return out, nil
}
