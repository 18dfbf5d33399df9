package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/examprep/internal/domain/catalog"
	"github.com/okian/examprep/internal/domain/types"
)

// TopicsDependencies defines the interface for listing topics.
type TopicsDependencies interface {
	Topics(ctx context.Context) ([]types.Topic, error)
}

// TopicsHandler handles topic listing requests.
type TopicsHandler struct {
	deps TopicsDependencies
}

// NewTopicsHandler creates a new topics handler.
func NewTopicsHandler(deps TopicsDependencies) *TopicsHandler {
	return &TopicsHandler{deps: deps}
}

// HandleGetTopics handles GET /topics requests.
func (h *TopicsHandler) HandleGetTopics(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_topics"
	topics, err := h.deps.Topics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, topicsResponse{Topics: topics})
}

// SamplesDependencies defines the interface for reading topic samples.
type SamplesDependencies interface {
	Samples(ctx context.Context, name string) (types.Topic, types.TopicContent, error)
}

// SamplesHandler handles sample listing requests.
type SamplesHandler struct {
	deps SamplesDependencies
}

// NewSamplesHandler creates a new samples handler.
func NewSamplesHandler(deps SamplesDependencies) *SamplesHandler {
	return &SamplesHandler{deps: deps}
}

// HandleGetSamples handles GET /samples/{topic} requests.
func (h *SamplesHandler) HandleGetSamples(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_samples"
	name := r.PathValue("topic")
	topic, content, err := h.deps.Samples(r.Context(), name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, errors.New("topic not found")))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, samplesResponse{
		Topic:       topic,
		Description: content.Description,
		Samples:     content.Samples,
	})
}
