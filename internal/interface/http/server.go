// Package http exposes the placement pipeline over a JSON REST API: the
// application/candidate intake endpoints for universities, the review and
// intern lifecycle endpoints for staff, and health probes.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/intern-hub/intern-placement-hub/internal/application/command"
	"github.com/intern-hub/intern-placement-hub/internal/application/query"
	"github.com/intern-hub/intern-placement-hub/internal/application/saga"
	"github.com/intern-hub/intern-placement-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SERVER CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains HTTP server configuration.
type Config struct {
	// Host - address to bind (default: "0.0.0.0").
	Host string

	// Port - port to listen on (default: 8080).
	Port int

	// ReadTimeout - maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout - maximum duration for writing the response.
	WriteTimeout time.Duration

	// IdleTimeout - maximum duration for idle connections.
	IdleTimeout time.Duration

	// MaxHeaderBytes - maximum size of request headers.
	MaxHeaderBytes int

	// RequestTimeout - per-request deadline applied by middleware.
	RequestTimeout time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
		RequestTimeout: 30 * time.Second,
	}
}

// Address returns the server address string.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// Dependencies contains all handlers the HTTP layer dispatches to.
type Dependencies struct {
	// Commands (CQRS write side)
	CreateApplication *command.CreateApplicationHandler
	UpdateApplication *command.UpdateApplicationHandler
	SubmitApplication *command.SubmitApplicationHandler
	ReviewApplication *command.ReviewApplicationHandler
	ArchiveApplication *command.ArchiveApplicationHandler

	AddCandidate    *command.AddCandidateHandler
	UpdateCandidate *command.UpdateCandidateHandler
	RemoveCandidate *command.RemoveCandidateHandler
	ReviewCandidate *command.ReviewCandidateHandler

	AssignIntern        *command.AssignInternHandler
	UpdateInternProfile *command.UpdateInternProfileHandler
	SuspendIntern       *command.SuspendInternHandler
	UnsuspendIntern     *command.UnsuspendInternHandler
	CompleteIntern      *command.CompleteInternHandler
	TerminateIntern     *command.TerminateInternHandler
	IssueCertificate    *command.IssueCertificateHandler

	CreateSubmission *command.CreateSubmissionHandler
	ReviewSubmission *command.ReviewSubmissionHandler

	// Sagas
	Promotion *saga.PromotionSaga

	// Queries (CQRS read side)
	GetApplication   *query.GetApplicationHandler
	ListApplications *query.ListApplicationsHandler
	GetIntern        *query.GetInternHandler
	ListInterns      *query.ListInternsHandler
	ListSubmissions  *query.ListSubmissionsHandler

	// HealthChecker reports readiness of downstream dependencies.
	HealthChecker HealthChecker

	Logger *logger.Logger
}

// HealthChecker probes the dependencies the service cannot run without.
type HealthChecker interface {
	Check(ctx context.Context) map[string]error
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER
// ══════════════════════════════════════════════════════════════════════════════

// Server is the HTTP server.
type Server struct {
	config     Config
	deps       Dependencies
	httpServer *http.Server
	router     chi.Router
	logger     *logger.Logger

	mu        sync.RWMutex
	running   bool
	startedAt time.Time
}

// NewServer creates the HTTP server with the given configuration and
// dependencies.
func NewServer(config Config, deps Dependencies) *Server {
	s := &Server{
		config: config,
		deps:   deps,
		logger: deps.Logger,
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:           config.Address(),
		Handler:        s.router,
		ReadTimeout:    config.ReadTimeout,
		WriteTimeout:   config.WriteTimeout,
		IdleTimeout:    config.IdleTimeout,
		MaxHeaderBytes: config.MaxHeaderBytes,
	}

	return s
}

// ══════════════════════════════════════════════════════════════════════════════
// ROUTING
// ══════════════════════════════════════════════════════════════════════════════

// buildRouter configures middleware and all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	if s.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
	}

	// Health & status
	r.Get("/health", s.handleHealth)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api/v1", func(r chi.Router) {
		// Applications
		r.Route("/applications", func(r chi.Router) {
			r.Post("/", s.handleCreateApplication)
			r.Get("/", s.handleListApplications)
			r.Route("/{applicationID}", func(r chi.Router) {
				r.Get("/", s.handleGetApplication)
				r.Put("/", s.handleUpdateApplication)
				r.Post("/submit", s.handleSubmitApplication)
				r.Post("/review", s.handleReviewApplication)
				r.Post("/archive", s.handleArchiveApplication)
				r.Post("/candidates", s.handleAddCandidate)
			})
		})

		// Candidates
		r.Route("/candidates/{candidateID}", func(r chi.Router) {
			r.Put("/", s.handleUpdateCandidate)
			r.Delete("/", s.handleRemoveCandidate)
			r.Post("/review", s.handleReviewCandidate)
			r.Post("/arrival", s.handleCandidateArrival)
		})

		// Interns
		r.Route("/interns", func(r chi.Router) {
			r.Get("/", s.handleListInterns)
			r.Route("/{internID}", func(r chi.Router) {
				r.Get("/", s.handleGetIntern)
				r.Post("/assignment", s.handleAssignIntern)
				r.Put("/profile", s.handleUpdateInternProfile)
				r.Post("/suspend", s.handleSuspendIntern)
				r.Post("/unsuspend", s.handleUnsuspendIntern)
				r.Post("/complete", s.handleCompleteIntern)
				r.Post("/terminate", s.handleTerminateIntern)
				r.Post("/certificate", s.handleIssueCertificate)
				r.Post("/submissions", s.handleCreateSubmission)
				r.Get("/submissions", s.handleListSubmissions)
			})
		})

		// Submissions
		r.Post("/submissions/{submissionID}/review", s.handleReviewSubmission)
	})

	return r
}

// ══════════════════════════════════════════════════════════════════════════════
// MIDDLEWARE
// ══════════════════════════════════════════════════════════════════════════════

// loggingMiddleware logs every HTTP request with its outcome.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// recoveryMiddleware recovers from handler panics and returns 500.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered",
					zap.Any("error", rec),
					zap.String("path", r.URL.Path),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
				writeJSONError(w, http.StatusInternalServerError, "internal_server_error", "An unexpected error occurred")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER LIFECYCLE
// ══════════════════════════════════════════════════════════════════════════════

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true
	s.startedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info("starting HTTP server", zap.String("address", s.config.Address()))

	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Router returns the configured router, for tests.
func (s *Server) Router() http.Handler { return s.router }

// Address returns the server address.
func (s *Server) Address() string { return s.config.Address() }
