// Package api provides the HTTP API server for the hiring blueprint.
// It exposes the questionnaire, the decision pipeline and progress storage.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hiring-blueprint/db/clickhouse"
	"hiring-blueprint/db/postgres"
	"hiring-blueprint/decision/assessment"
	"hiring-blueprint/decision/enrichment"
	"hiring-blueprint/decision/verticals"
	apperrors "hiring-blueprint/pkg/errors"
	"hiring-blueprint/pkg/platform"
)

// ProgressStore persists progress and assessments.
type ProgressStore interface {
	Ping(ctx context.Context) error
	SaveProgress(ctx context.Context, p postgres.Progress) (postgres.Progress, error)
	GetProgress(ctx context.Context, email string) (*postgres.Progress, error)
	SaveAssessment(ctx context.Context, a *postgres.Assessment) error
	GetAssessment(ctx context.Context, id uuid.UUID) (*postgres.Assessment, error)
}

// EventSink receives analytics events.
type EventSink interface {
	Ping(ctx context.Context) error
	InsertEvents(ctx context.Context, events []clickhouse.Event) error
	RouteDistribution(ctx context.Context, since time.Time) ([]clickhouse.RouteCount, error)
}

// Server is the HTTP API server
type Server struct {
	httpServer *http.Server
	engine     *assessment.Engine
	enricher   enrichment.Enricher
	store      ProgressStore
	events     EventSink
	config     *Config
	startTime  time.Time
}

// Config holds server configuration
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	EventTimeout   time.Duration
	MaxRequestSize int64
	CORSOrigins    []string
	APIKey         string
	Version        string
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		RequestTimeout: 45 * time.Second,
		EventTimeout:   2 * time.Second,
		MaxRequestSize: 1 << 20, // 1MB
		CORSOrigins:    []string{"*"},
		Version:        "dev",
	}
}

// NewServer creates a new API server
func NewServer(engine *assessment.Engine, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return &Server{
		engine:    engine,
		enricher:  enrichment.TemplateEnricher{},
		config:    config,
		startTime: time.Now(),
	}
}

// WithStore attaches progress storage.
func (s *Server) WithStore(store ProgressStore) *Server {
	s.store = store
	return s
}

// WithEvents attaches an analytics sink.
func (s *Server) WithEvents(events EventSink) *Server {
	s.events = events
	return s
}

// WithEnricher swaps the enrichment collaborator.
func (s *Server) WithEnricher(e enrichment.Enricher) *Server {
	if e != nil {
		s.enricher = e
	}
	return s
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if s.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
	}
	r.Use(s.corsMiddleware)
	r.Use(platform.APIKeyMiddleware(s.config.APIKey, "/health", "/health/ready", "/version"))

	r.Get("/health", s.handleHealth)
	r.Get("/health/ready", s.handleReady)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/questions", s.handleQuestions)
		r.Get("/verticals", s.handleVerticals)

		r.Post("/assess", s.handleAssess)
		r.Post("/route", s.handleRoute)
		r.Post("/estimate", s.handleEstimate)
		r.Post("/phases", s.handlePhases)
		r.Post("/optimize", s.handleOptimize)

		r.Get("/progress/{email}", s.handleGetProgress)
		r.Put("/progress/{email}", s.handlePutProgress)
		r.Get("/assessments/{id}", s.handleGetAssessment)

		r.Get("/analytics/routes", s.handleRouteDistribution)
	})

	return r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	log.Info().
		Int("port", s.config.Port).
		Str("version", s.config.Version).
		Bool("store", s.store != nil).
		Bool("analytics", s.events != nil).
		Msg("Starting hiring blueprint API server")
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown starts server with graceful shutdown handling
func (s *Server) StartWithGracefulShutdown() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		log.Info().Msg("Shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		allowed := false
		for _, o := range s.config.CORSOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// HEALTH ENDPOINTS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.config.Version,
		"uptime":  time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			s.jsonError(w, apperrors.NewStoreUnavailableError("progress", err))
			return
		}
	}
	if s.events != nil {
		if err := s.events.Ping(ctx); err != nil {
			s.jsonError(w, apperrors.NewStoreUnavailableError("analytics", err))
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"version": s.config.Version,
		"service": "hiring-blueprint",
	})
}

// =============================================================================
// CATALOG ENDPOINTS
// =============================================================================

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sections":  assessment.Sections(),
		"questions": assessment.Questions(),
	})
}

func (s *Server) handleVerticals(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, verticals.All())
}

// =============================================================================
// DECISION ENDPOINTS
// =============================================================================

// EvaluateRequest carries questionnaire responses keyed by question ID.
type EvaluateRequest struct {
	Responses assessment.Responses `json:"responses"`
	Enrich    bool                 `json:"enrich"`
	Save      bool                 `json:"save"`
}

// AssessResponse is the full assessment.
type AssessResponse struct {
	ID         *uuid.UUID         `json:"id,omitempty"`
	Report     *assessment.Report `json:"report"`
	Enrichment *enrichment.Result `json:"enrichment,omitempty"`
}

func (s *Server) decodeEvaluate(w http.ResponseWriter, r *http.Request) (EvaluateRequest, bool) {
	var req EvaluateRequest
	if err := s.decode(w, r, &req); err != nil {
		s.jsonError(w, err)
		return req, false
	}
	if req.Responses == nil {
		req.Responses = assessment.Responses{}
	}
	return req, true
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEvaluate(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	rep := s.engine.Evaluate(req.Responses)
	resp := AssessResponse{Report: rep}

	if req.Enrich {
		res := enrichment.Apply(ctx, s.enricher, enrichment.InputFromReport(rep, req.Responses))
		resp.Enrichment = &res
	}

	assessmentID := uuid.Nil
	if req.Save && s.store != nil {
		a, err := postgres.NewAssessment(req.Responses, rep)
		if err != nil {
			s.jsonError(w, err)
			return
		}
		if err := s.store.SaveAssessment(ctx, a); err != nil {
			log.Error().Err(err).Msg("Failed to save assessment")
			s.jsonError(w, err)
			return
		}
		assessmentID = a.ID
		resp.ID = &a.ID
	}

	s.emit(ctx, clickhouse.NewEvent(clickhouse.EventAssessed, assessmentID, req.Responses, rep))
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEvaluate(w, r)
	if !ok {
		return
	}
	rep := s.engine.Evaluate(req.Responses)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"result":              rep.Result,
		"route_decision":      rep.RouteDecision,
		"complexity_decision": rep.Complexity,
	})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEvaluate(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.engine.Estimate(req.Responses))
}

func (s *Server) handlePhases(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEvaluate(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.engine.Evaluate(req.Responses).Breakdown)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEvaluate(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.engine.Evaluate(req.Responses).Plan)
}

// =============================================================================
// PROGRESS ENDPOINTS
// =============================================================================

// ProgressRequest is the body of a progress save.
type ProgressRequest struct {
	CurrentStep int                  `json:"current_step"`
	Responses   assessment.Responses `json:"responses"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ProgressResponse is saved progress with its section summary.
type ProgressResponse struct {
	postgres.Progress
	Summary assessment.ProgressReport `json:"summary"`
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.jsonError(w, apperrors.NewStoreUnavailableError("progress", errors.New("not configured")))
		return false
	}
	return true
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	p, err := s.store.GetProgress(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		s.jsonError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ProgressResponse{Progress: *p, Summary: assessment.Progress(p.Responses)})
}

func (s *Server) handlePutProgress(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var req ProgressRequest
	if err := s.decode(w, r, &req); err != nil {
		s.jsonError(w, err)
		return
	}
	ctx := r.Context()
	saved, err := s.store.SaveProgress(ctx, postgres.Progress{
		Email:       chi.URLParam(r, "email"),
		CurrentStep: req.CurrentStep,
		Responses:   req.Responses,
		UpdatedAt:   req.UpdatedAt,
	})
	if err != nil {
		s.jsonError(w, err)
		return
	}

	s.emit(ctx, clickhouse.NewEvent(clickhouse.EventProgressSaved, uuid.Nil, saved.Responses, s.engine.Evaluate(saved.Responses)))
	s.jsonResponse(w, http.StatusOK, ProgressResponse{Progress: saved, Summary: assessment.Progress(saved.Responses)})
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.jsonError(w, apperrors.NewInvalidRequestError("invalid assessment id", err))
		return
	}
	a, err := s.store.GetAssessment(r.Context(), id)
	if err != nil {
		s.jsonError(w, err)
		return
	}
	if a == nil {
		s.jsonResponse(w, http.StatusNotFound, map[string]string{"error": "assessment not found"})
		return
	}
	s.jsonResponse(w, http.StatusOK, a)
}

// =============================================================================
// ANALYTICS ENDPOINTS
// =============================================================================

func (s *Server) handleRouteDistribution(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		s.jsonError(w, apperrors.NewStoreUnavailableError("analytics", errors.New("not configured")))
		return
	}
	window := 30 * 24 * time.Hour
	if v := r.URL.Query().Get("window"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			s.jsonError(w, apperrors.NewInvalidRequestError("window must be a positive duration", err))
			return
		}
		window = d
	}
	rows, err := s.events.RouteDistribution(r.Context(), time.Now().Add(-window))
	if err != nil {
		s.jsonError(w, apperrors.NewStoreUnavailableError("analytics", err))
		return
	}
	if rows == nil {
		rows = []clickhouse.RouteCount{}
	}
	s.jsonResponse(w, http.StatusOK, rows)
}

// =============================================================================
// HELPERS
// =============================================================================

// emit records analytics without affecting the response.
func (s *Server) emit(ctx context.Context, events ...clickhouse.Event) {
	if s.events == nil {
		return
	}
	timeout := s.config.EventTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := s.events.InsertEvents(ctx, events); err != nil {
		log.Warn().Err(err).Int("events", len(events)).Msg("Failed to record analytics events")
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewInvalidRequestError("invalid request body", err)
	}
	return nil
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) jsonError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	body := map[string]string{"error": err.Error()}
	if code := apperrors.Code(err); code != "" {
		body["code"] = code
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("Request failed")
	}
	s.jsonResponse(w, status, body)
}
