package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/examprep/internal/domain/solver"
	"github.com/okian/examprep/pkg/logger"
)

// SolveDependencies defines the interface for solving problems.
type SolveDependencies interface {
	Solve(ctx context.Context, req SolveRequest) (Solution, error)
}

// SolveHandler handles solve requests.
type SolveHandler struct {
	deps         SolveDependencies
	maxBodyBytes int64
}

// NewSolveHandler creates a new solve handler.
func NewSolveHandler(deps SolveDependencies, maxBodyBytes int64) *SolveHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &SolveHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandleSolve handles POST /solve requests.
func (h *SolveHandler) HandleSolve(w http.ResponseWriter, r *http.Request) {
	const op = "api.solve"
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	sol, err := h.deps.Solve(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, solver.ErrUnknownTopic):
			writeError(w, http.StatusBadRequest, "unknown_topic", WrapKind(op, ErrBadRequest, err))
		case errors.Is(err, solver.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid_input", WrapKind(op, ErrBadRequest, err))
		default:
			logger.Get().Error(r.Context(), "solve failed",
				logger.String("topic", req.Topic),
				logger.Error(err),
			)
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, sol)
}
