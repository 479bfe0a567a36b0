package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Simulator defines the operations the HTTP transport exposes.
type Simulator interface {
	Run(ctx context.Context, prog *definition.Program, hooks ...domain.LifecycleHooks) (*domain.RunRecord, error)
	Encode(rules []domain.Rule) (*turing.Encoding, error)
	Runs(ctx context.Context) ([]string, error)
	LoadRun(ctx context.Context, id string) (*domain.RunRecord, error)
	DeleteRun(ctx context.Context, id string) error
}

// Server serves simulation runs over HTTP.
type Server struct {
	Simulator Simulator

	logger       *slog.Logger
	gatherer     prometheus.Gatherer
	stepLimit    int
	maxBodyBytes int64
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer exposes the collectors of g on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithStepLimit caps the step budget of submitted programs. Programs without
// a budget, or with a larger one, run with limit steps.
func WithStepLimit(limit int) Option {
	return func(s *Server) {
		s.stepLimit = limit
	}
}

// WithMaxBodyBytes bounds the size of submitted documents.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// NewHandler creates a new HTTP handler for the simulator.
func NewHandler(sim Simulator, opts ...Option) http.Handler {
	server := &Server{
		Simulator:    sim,
		logger:       logging.NewNop(),
		stepLimit:    turing.DefaultMaxSteps,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Post("/encode", server.Encode)
	r.Route("/runs", func(r chi.Router) {
		r.Get("/", server.ListRuns)
		r.Post("/", server.CreateRun)
		r.Get("/{id}", server.GetRun)
		r.Delete("/{id}", server.DeleteRun)
	})
	if server.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateRun handles POST /runs. The body is a JSON definition document.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	prog, ok := s.compile(w, r)
	if !ok {
		return
	}
	if prog.MaxSteps == 0 || prog.MaxSteps > s.stepLimit {
		prog.MaxSteps = s.stepLimit
	}

	record, err := s.Simulator.Run(r.Context(), prog)
	if err != nil {
		if isClientError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Run error: %v", err), http.StatusInternalServerError)
		s.logger.Error("CreateRun failed", "error", err)
		return
	}

	w.Header().Set("Location", "/runs/"+record.ID)
	s.writeJSON(w, http.StatusCreated, record)
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Simulator.Runs(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ListRuns failed", "error", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"runs": ids})
}

// GetRun handles GET /runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := s.Simulator.LoadRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			http.Error(w, fmt.Sprintf("Run %s not found", id), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("GetRun failed", "error", err, "run_id", id)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

// DeleteRun handles DELETE /runs/{id}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Simulator.DeleteRun(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		s.logger.Error("DeleteRun failed", "error", err, "run_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Encode handles POST /encode. The body is a JSON definition document; only
// its rules are used.
func (s *Server) Encode(w http.ResponseWriter, r *http.Request) {
	prog, ok := s.compile(w, r)
	if !ok {
		return
	}

	enc, err := s.Simulator.Encode(prog.Rules)
	if err != nil {
		if isClientError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Encode error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Encode failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, enc)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) compile(w http.ResponseWriter, r *http.Request) (*definition.Program, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Invalid request body", "error", err)
		return nil, false
	}

	doc, err := definition.Parse(data, definition.FormatJSON)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	prog, err := doc.Compile()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return prog, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidMachine) ||
		errors.Is(err, domain.ErrInvalidRuleSet) ||
		errors.Is(err, domain.ErrInvalidDefinition)
}
