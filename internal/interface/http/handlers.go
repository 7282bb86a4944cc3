package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/intern-hub/intern-placement-hub/internal/application/command"
	"github.com/intern-hub/intern-placement-hub/internal/application/query"
	"github.com/intern-hub/intern-placement-hub/internal/application/saga"
	"github.com/intern-hub/intern-placement-hub/internal/domain/application"
	"github.com/intern-hub/intern-placement-hub/internal/domain/candidate"
	"github.com/intern-hub/intern-placement-hub/internal/domain/intern"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACTOR EXTRACTION
// ══════════════════════════════════════════════════════════════════════════════

// Identity headers, stamped by the authenticating gateway in front of this
// service.
const (
	headerActorID      = "X-Actor-ID"
	headerActorRole    = "X-Actor-Role"
	headerUniversityID = "X-University-ID"
)

// actorFromRequest builds the acting identity from gateway headers.
func actorFromRequest(r *http.Request) (shared.Actor, error) {
	actor := shared.Actor{
		ID:           strings.TrimSpace(r.Header.Get(headerActorID)),
		Role:         shared.Role(strings.TrimSpace(strings.ToLower(r.Header.Get(headerActorRole)))),
		UniversityID: strings.TrimSpace(r.Header.Get(headerUniversityID)),
	}
	if actor.ID == "" || actor.Role == "" {
		return shared.Actor{}, errors.New("missing actor identity headers")
	}
	switch actor.Role {
	case shared.RoleUniversity, shared.RoleAdmin, shared.RoleSupervisor, shared.RoleIntern:
	default:
		return shared.Actor{}, errors.New("unknown actor role")
	}
	return actor, nil
}

// chiRequestID returns the request ID assigned by the middleware chain.
func chiRequestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// statusForError maps a domain error kind to an HTTP status.
func statusForError(err error) (int, string) {
	switch {
	case shared.IsValidation(err):
		return http.StatusBadRequest, "validation_error"
	case shared.IsForbidden(err):
		return http.StatusForbidden, "forbidden"
	case shared.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case shared.IsConflict(err):
		return http.StatusConflict, "conflict"
	case shared.IsInvalidState(err):
		return http.StatusUnprocessableEntity, "invalid_state"
	case shared.IsPreconditionFailed(err):
		return http.StatusUnprocessableEntity, "precondition_failed"
	default:
		return http.StatusInternalServerError, "internal_server_error"
	}
}

// writeDomainError renders a failed operation. Internal errors never leak
// their message to the client.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	status, code := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "An unexpected error occurred"
	}
	writeJSONError(w, status, code, message)
}

// ══════════════════════════════════════════════════════════════════════════════
// RESPONSE HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// JSONResponse is the standard response envelope.
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError carries a machine-readable code plus a human message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(JSONResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(JSONResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}

// decodeBody decodes the JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// withActor extracts the actor or writes a 401.
func (s *Server) withActor(w http.ResponseWriter, r *http.Request) (shared.Actor, bool) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", err.Error())
		return shared.Actor{}, false
	}
	return actor, true
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}

	results := s.deps.HealthChecker.Check(r.Context())
	checks := make(map[string]string, len(results))
	ready := true
	for name, err := range results {
		if err != nil {
			ready = false
			checks[name] = err.Error()
		} else {
			checks[name] = "ok"
		}
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{"ready": ready, "checks": checks})
}

// ══════════════════════════════════════════════════════════════════════════════
// APPLICATION ENDPOINTS
// ══════════════════════════════════════════════════════════════════════════════

type applicationRequest struct {
	Name         string `json:"name"`
	AcademicYear string `json:"academic_year"`
	LetterRef    string `json:"letter_ref"`
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req applicationRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	app, err := s.deps.CreateApplication.Handle(r.Context(), command.CreateApplicationCommand{
		Actor:        actor,
		Name:         req.Name,
		AcademicYear: req.AcademicYear,
		LetterRef:    req.LetterRef,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, query.NewApplicationDTO(app))
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req applicationRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	app, err := s.deps.UpdateApplication.Handle(r.Context(), command.UpdateApplicationCommand{
		Actor:         actor,
		ApplicationID: chi.URLParam(r, "applicationID"),
		Name:          req.Name,
		AcademicYear:  req.AcademicYear,
		LetterRef:     req.LetterRef,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewApplicationDTO(app))
}

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	app, err := s.deps.SubmitApplication.Handle(r.Context(), command.SubmitApplicationCommand{
		Actor:         actor,
		ApplicationID: chi.URLParam(r, "applicationID"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewApplicationDTO(app))
}

type reviewRequest struct {
	Decision        string `json:"decision"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

func (s *Server) handleReviewApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	app, err := s.deps.ReviewApplication.Handle(r.Context(), command.ReviewApplicationCommand{
		Actor:           actor,
		ApplicationID:   chi.URLParam(r, "applicationID"),
		Decision:        application.Decision(req.Decision),
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewApplicationDTO(app))
}

func (s *Server) handleArchiveApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	app, err := s.deps.ArchiveApplication.Handle(r.Context(), command.ArchiveApplicationCommand{
		Actor:         actor,
		ApplicationID: chi.URLParam(r, "applicationID"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewApplicationDTO(app))
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	detail, err := s.deps.GetApplication.Handle(r.Context(), query.GetApplicationQuery{
		Actor:         actor,
		ApplicationID: chi.URLParam(r, "applicationID"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	q := query.ListApplicationsQuery{
		Actor:  actor,
		Status: application.Status(r.URL.Query().Get("status")),
		Opts:   listOptionsFromQuery(r),
	}

	apps, err := s.deps.ListApplications.Handle(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// listOptionsFromQuery parses offset/limit/sort query parameters.
func listOptionsFromQuery(r *http.Request) application.ListOptions {
	opts := application.DefaultListOptions()
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		opts.Offset = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}
	if sort := r.URL.Query().Get("sort"); sort != "" {
		opts.SortBy = strings.TrimPrefix(sort, "-")
		opts.SortDesc = strings.HasPrefix(sort, "-")
	}
	return opts
}

// ══════════════════════════════════════════════════════════════════════════════
// CANDIDATE ENDPOINTS
// ══════════════════════════════════════════════════════════════════════════════

type candidateRequest struct {
	FullName      string `json:"full_name"`
	StudentID     string `json:"student_id,omitempty"`
	FieldOfStudy  string `json:"field_of_study"`
	AcademicYear  string `json:"academic_year,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	CVRef         string `json:"cv_ref,omitempty"`
	TranscriptRef string `json:"transcript_ref,omitempty"`
}

func (s *Server) handleAddCandidate(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req candidateRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	c, err := s.deps.AddCandidate.Handle(r.Context(), command.AddCandidateCommand{
		Actor:         actor,
		ApplicationID: chi.URLParam(r, "applicationID"),
		FullName:      req.FullName,
		StudentID:     req.StudentID,
		FieldOfStudy:  req.FieldOfStudy,
		AcademicYear:  req.AcademicYear,
		Email:         req.Email,
		Phone:         req.Phone,
		CVRef:         req.CVRef,
		TranscriptRef: req.TranscriptRef,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, query.NewCandidateDTO(c))
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req candidateRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	c, err := s.deps.UpdateCandidate.Handle(r.Context(), command.UpdateCandidateCommand{
		Actor:         actor,
		CandidateID:   chi.URLParam(r, "candidateID"),
		FullName:      req.FullName,
		FieldOfStudy:  req.FieldOfStudy,
		Email:         req.Email,
		Phone:         req.Phone,
		CVRef:         req.CVRef,
		TranscriptRef: req.TranscriptRef,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewCandidateDTO(c))
}

func (s *Server) handleRemoveCandidate(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	err := s.deps.RemoveCandidate.Handle(r.Context(), command.RemoveCandidateCommand{
		Actor:       actor,
		CandidateID: chi.URLParam(r, "candidateID"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReviewCandidate(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	c, err := s.deps.ReviewCandidate.Handle(r.Context(), command.ReviewCandidateCommand{
		Actor:           actor,
		CandidateID:     chi.URLParam(r, "candidateID"),
		Decision:        candidate.Decision(req.Decision),
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewCandidateDTO(c))
}

type arrivalRequest struct {
	StartDate string `json:"start_date,omitempty"`
}

// arrivalResponse reports the outcome of a candidate arrival.
type arrivalResponse struct {
	Candidate      query.CandidateDTO `json:"candidate"`
	Intern         query.InternDTO    `json:"intern"`
	AccountCreated bool               `json:"account_created"`
	PromotedAt     time.Time          `json:"promoted_at"`
}

func (s *Server) handleCandidateArrival(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req arrivalRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "bad_request", "start_date must be YYYY-MM-DD")
			return
		}
		startDate = parsed
	}

	result, err := s.deps.Promotion.Execute(r.Context(), saga.PromotionInput{
		Actor:         actor,
		CandidateID:   chi.URLParam(r, "candidateID"),
		StartDate:     startDate,
		CorrelationID: chiRequestID(r),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, arrivalResponse{
		Candidate:      query.NewCandidateDTO(result.Candidate),
		Intern:         query.NewInternDTO(result.Intern),
		AccountCreated: result.AccountCreated,
		PromotedAt:     result.PromotedAt,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// INTERN ENDPOINTS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleGetIntern(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.withActor(w, r); !ok {
		return
	}
	dto, err := s.deps.GetIntern.Handle(r.Context(), query.GetInternQuery{
		InternID: chi.URLParam(r, "internID"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleListInterns(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.withActor(w, r); !ok {
		return
	}
	appOpts := listOptionsFromQuery(r)
	q := query.ListInternsQuery{
		Status:       intern.Status(r.URL.Query().Get("status")),
		SupervisorID: r.URL.Query().Get("supervisor_id"),
		Opts: intern.ListOptions{
			Offset: appOpts.Offset,
			Limit:  appOpts.Limit,
		},
	}

	interns, err := s.deps.ListInterns.Handle(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interns)
}

type assignmentRequest struct {
	SupervisorID string `json:"supervisor_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
}

func (s *Server) handleAssignIntern(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req assignmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	in, err := s.deps.AssignIntern.Handle(r.Context(), command.AssignInternCommand{
		Actor:        actor,
		InternID:     chi.URLParam(r, "internID"),
		SupervisorID: req.SupervisorID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewInternDTO(in))
}

type profileRequest struct {
	Skills         []string `json:"skills,omitempty"`
	InterviewNotes string   `json:"interview_notes,omitempty"`
}

func (s *Server) handleUpdateInternProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req profileRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	in, err := s.deps.UpdateInternProfile.Handle(r.Context(), command.UpdateInternProfileCommand{
		Actor:          actor,
		InternID:       chi.URLParam(r, "internID"),
		Skills:         req.Skills,
		InterviewNotes: req.InterviewNotes,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewInternDTO(in))
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleSuspendIntern(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req reasonRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	in, err := s.deps.SuspendIntern.Handle(r.Context(), command.SuspendInternCommand{
		Actor:    actor,
		InternID: chi.URLParam(r, "internID"),
		Reason:   req.Reason,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewInternDTO(in))
}

func (s *Server) handleUnsuspendIntern(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	in, err := s.deps.UnsuspendIntern.Handle(r.Context(), command.UnsuspendInternCommand{
		Actor:    actor,
		InternID: chi.URLParam(r, "internID"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewInternDTO(in))
}

type completionRequest struct {
	FinalEvaluation float64 `json:"final_evaluation"`
	CompletionNotes string  `json:"completion_notes,omitempty"`
}

func (s *Server) handleCompleteIntern(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req completionRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	in, err := s.deps.CompleteIntern.Handle(r.Context(), command.CompleteInternCommand{
		Actor:           actor,
		InternID:        chi.URLParam(r, "internID"),
		FinalEvaluation: req.FinalEvaluation,
		CompletionNotes: req.CompletionNotes,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewInternDTO(in))
}

func (s *Server) handleTerminateIntern(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req reasonRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	in, err := s.deps.TerminateIntern.Handle(r.Context(), command.TerminateInternCommand{
		Actor:    actor,
		InternID: chi.URLParam(r, "internID"),
		Reason:   req.Reason,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewInternDTO(in))
}

type certificateRequest struct {
	CertificateRef string `json:"certificate_ref"`
}

func (s *Server) handleIssueCertificate(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req certificateRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	in, err := s.deps.IssueCertificate.Handle(r.Context(), command.IssueCertificateCommand{
		Actor:          actor,
		InternID:       chi.URLParam(r, "internID"),
		CertificateRef: req.CertificateRef,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewInternDTO(in))
}

// ══════════════════════════════════════════════════════════════════════════════
// SUBMISSION ENDPOINTS
// ══════════════════════════════════════════════════════════════════════════════

type submissionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FileRef     string `json:"file_ref,omitempty"`
}

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req submissionRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	sub, err := s.deps.CreateSubmission.Handle(r.Context(), command.CreateSubmissionCommand{
		Actor:       actor,
		InternID:    chi.URLParam(r, "internID"),
		Title:       req.Title,
		Description: req.Description,
		FileRef:     req.FileRef,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, query.NewSubmissionDTO(sub))
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.withActor(w, r); !ok {
		return
	}
	dto, err := s.deps.ListSubmissions.Handle(r.Context(), query.ListSubmissionsQuery{
		InternID: chi.URLParam(r, "internID"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

type submissionReviewRequest struct {
	Decision string `json:"decision"`
	Feedback string `json:"feedback,omitempty"`
}

func (s *Server) handleReviewSubmission(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.withActor(w, r)
	if !ok {
		return
	}
	var req submissionReviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	sub, err := s.deps.ReviewSubmission.Handle(r.Context(), command.ReviewSubmissionCommand{
		Actor:        actor,
		SubmissionID: chi.URLParam(r, "submissionID"),
		Decision:     submission.Decision(req.Decision),
		Feedback:     req.Feedback,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.NewSubmissionDTO(sub))
}
