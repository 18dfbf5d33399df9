// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/examprep/internal/app"
	"github.com/okian/examprep/internal/domain/solver"
	"github.com/okian/examprep/internal/domain/types"
)

const defaultMaxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	TopicsDependencies
	SamplesDependencies
	SolveDependencies
}

// SolveRequest mirrors the OpenAPI schema for POST /solve.
type SolveRequest = service.SolveRequest

// Solution mirrors the response shape of POST /solve.
type Solution = solver.Solution

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler    *RootHandler
	healthHandler  *HealthHandler
	metricsHandler *MetricsHandler
	topicsHandler  *TopicsHandler
	samplesHandler *SamplesHandler
	solveHandler   *SolveHandler
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	maxBodyBytes int64
}

// WithMaxBodyBytes caps the size of request bodies accepted by POST /solve.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	cfg := serverConfig{maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		rootHandler:    NewRootHandler(),
		healthHandler:  NewHealthHandler(),
		metricsHandler: NewMetricsHandler(),
		topicsHandler:  NewTopicsHandler(deps),
		samplesHandler: NewSamplesHandler(deps),
		solveHandler:   NewSolveHandler(deps, cfg.maxBodyBytes),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", MetricsMiddleware(s.rootHandler.HandleRoot, "root"))
	mux.HandleFunc("GET /health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("GET /metrics", s.metricsHandler.HandleMetrics)
	mux.HandleFunc("GET /topics", MetricsMiddleware(s.topicsHandler.HandleGetTopics, "topics"))
	mux.HandleFunc("GET /samples/{topic}", MetricsMiddleware(s.samplesHandler.HandleGetSamples, "samples"))
	mux.HandleFunc("POST /solve", MetricsMiddleware(s.solveHandler.HandleSolve, "solve"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// encodeFailure is written verbatim when a response body cannot be encoded.
const encodeFailure = `{"code":"internal_error","message":"failed to encode response"}` + "\n"

// writeJSON encodes v before committing the status so that an encoding
// failure still yields a complete 500 response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := enc.Encode(v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailure))
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
		var ke *KindError
		if errors.As(err, &ke) {
			msg = ke.Message()
		}
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// topicsResponse is the body of GET /topics.
type topicsResponse struct {
	Topics []types.Topic `json:"topics"`
}

// samplesResponse is the body of GET /samples/{topic}.
type samplesResponse struct {
	Topic       types.Topic           `json:"topic"`
	Description string                `json:"description"`
	Samples     []types.SampleProblem `json:"samples"`
}
