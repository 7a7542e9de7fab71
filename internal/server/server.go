// internal/server/server.go

// Package server exposes the debate analysis pipeline over HTTP: transcript
// analysis, single-message analysis, and persona debate endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/RNAdvani/kurukshetra/internal/analysis"
)

// Analyzer runs the scoring pipeline. Satisfied by *analysis.Orchestrator.
type Analyzer interface {
	AnalyzeDebate(ctx context.Context, topic, person1Text, person2Text string) (*analysis.DebateAnalysis, error)
	AnalyzeMessage(ctx context.Context, topic, message, priorContext string) (*analysis.MessageAnalysis, error)
}

// DebateResponder is one persona debate session.
type DebateResponder interface {
	Respond(ctx context.Context, argument string) (string, error)
	History() []string
}

// DebaterFactory opens a debate session for a named persona.
type DebaterFactory func(name string) (DebateResponder, error)

// ErrResp is the error body returned on any request failure.
type ErrResp struct {
	Error string `json:"error"`
}

// Server routes HTTP requests into the analysis and persona components.
// Debate sessions are cached per persona for the lifetime of the process.
type Server struct {
	cfg      *Config
	analyzer Analyzer
	factory  DebaterFactory

	mu       sync.Mutex
	debaters map[string]DebateResponder
}

// New builds a Server. factory may be nil, which disables the debate
// endpoint.
func New(cfg *Config, analyzer Analyzer, factory DebaterFactory) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if analyzer == nil {
		return nil, errors.New("analyzer is nil")
	}
	return &Server{
		cfg:      cfg,
		analyzer: analyzer,
		factory:  factory,
		debaters: map[string]DebateResponder{},
	}, nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /analyze-message", s.handleAnalyzeMessage)
	mux.HandleFunc("POST /debate", s.handleDebate)
	return mux
}

// ListenAndServe blocks serving HTTP on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("listening on %s", srv.Addr)
	return srv.ListenAndServe()
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps pipeline failures to HTTP statuses. Validation failures
// are the caller's fault; everything else is internal.
func statusFor(err error) int {
	if errors.Is(err, analysis.ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
