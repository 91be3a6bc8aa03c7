// Package server serves the ask endpoint the dashboard posts to.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"askdash/internal/dashboard"
	"askdash/internal/llm"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 1 << 20
)

// ErrEmptyQuestion is returned for a request with no question.
var ErrEmptyQuestion = errors.New("question is required")

type Options struct {
	AskPath         string
	GenerateTimeout time.Duration
}

type Server struct {
	registry *llm.Registry
	logger   *zap.Logger
	opts     Options
}

func New(registry *llm.Registry, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.AskPath == "" {
		opts.AskPath = "/api/ask"
	}
	if opts.GenerateTimeout <= 0 {
		opts.GenerateTimeout = 90 * time.Second
	}
	return &Server{registry: registry, logger: logger, opts: opts}
}

// Handler returns the routed mux wrapped in request-id and CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+s.opts.AskPath, s.handleAsk)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return withCORS(s.withRequestID(mux))
}

// Answer resolves a dashboard request to response text.
func (s *Server) Answer(ctx context.Context, req dashboard.Request) (string, error) {
	if strings.TrimSpace(req.Question) == "" {
		return "", ErrEmptyQuestion
	}
	routed := routeQuestion(req.Question, req.User)
	if routed.static != "" {
		return routed.static, nil
	}
	provider, err := s.registry.Resolve(req.LLMChoice)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.GenerateTimeout)
	defer cancel()
	return provider.Generate(ctx, routed.instruction)
}

type askReply struct {
	Response string `json:"response"`
}

type errorReply struct {
	Error string `json:"error"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req dashboard.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Rejecting malformed ask body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorReply{Error: "invalid JSON body"})
		return
	}

	started := time.Now()
	text, err := s.Answer(r.Context(), req)
	fields := []zap.Field{
		zap.String("kind", routeQuestion(req.Question, req.User).kind),
		zap.String("llm_choice", req.LLMChoice),
		zap.Duration("elapsed", time.Since(started)),
	}
	switch {
	case errors.Is(err, ErrEmptyQuestion), errors.Is(err, llm.ErrUnsupportedVendor):
		logger.Warn("Rejecting ask request", append(fields, zap.Error(err))...)
		writeJSON(w, http.StatusBadRequest, errorReply{Error: err.Error()})
	case err != nil:
		logger.Error("Ask generation failed", append(fields, zap.Error(err))...)
		writeJSON(w, http.StatusBadGateway, errorReply{Error: "generation failed"})
	default:
		logger.Info("Ask answered", append(fields, zap.Int("length", len(text)))...)
		writeJSON(w, http.StatusOK, askReply{Response: text})
	}
}

type providerHealth struct {
	Name string `json:"name"`
	OK   bool   `json:"ok"`
}

type healthReply struct {
	Status    string           `json:"status"`
	Providers []providerHealth `json:"providers"`
}

// handleHealth pings every registered provider concurrently.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	p := pool.NewWithResults[providerHealth]().WithMaxGoroutines(4)
	for _, provider := range s.registry.All() {
		provider := provider
		p.Go(func() providerHealth {
			return providerHealth{Name: provider.Name(), OK: provider.Ping(r.Context())}
		})
	}
	results := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	reply := healthReply{Status: "ok", Providers: results}
	status := http.StatusOK
	for _, res := range results {
		if !res.OK {
			reply.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}
	if reply.Providers == nil {
		reply.Providers = []providerHealth{}
	}
	writeJSON(w, status, reply)
}

type requestIDKey struct{}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return s.logger.With(zap.String("request_id", id))
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Run serves until ctx ends, then drains in-flight requests for up to
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Ask server listening",
			zap.String("addr", addr),
			zap.String("ask_path", s.opts.AskPath),
			zap.Strings("providers", s.registry.Names()),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down ask server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
