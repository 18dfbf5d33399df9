// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/examprep/internal/domain/catalog"
	"github.com/okian/examprep/internal/domain/solver"
	"github.com/okian/examprep/internal/domain/types"
	"github.com/okian/examprep/pkg/logger"
	"github.com/okian/examprep/pkg/metrics"
)

// Sentinel kinds for service errors.
var (
	ErrInvalidSample = errors.New("sample does not solve")
	ErrNotStarted    = errors.New("service not started")
)

const nanosecondsPerMillisecond = 1e6

// SolveRequest is a solve call as it arrives from an untyped transport.
type SolveRequest struct {
	Topic    string        `json:"topic"`
	SampleID string        `json:"sample_id,omitempty"`
	Data     types.Payload `json:"data,omitempty"`
}

// Service implements the API dependencies for the exam-prep API.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog *catalog.Catalog
	solver  solver.Solver

	// Configuration
	catalogPath    string
	fillFromSample bool

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog injects an already loaded catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithCatalogFile loads the catalog from a YAML file at Start.
func WithCatalogFile(path string) Option {
	return func(s *Service) {
		s.catalogPath = path
	}
}

// WithSolver replaces the default dispatcher.
func WithSolver(sv solver.Solver) Option {
	return func(s *Service) {
		if sv != nil {
			s.solver = sv
		}
	}
}

// WithSampleFill enables copying a sample's data into solve requests that
// name sample_id but carry no data.
func WithSampleFill(enabled bool) Option {
	return func(s *Service) {
		s.fillFromSample = enabled
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		solver: solver.NewDispatcher(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the catalog and checks that every sample solves.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting exam-prep service...")

	if s.catalog == nil {
		c, err := catalog.New(catalog.WithFile(s.catalogPath))
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		s.catalog = c
	}
	if err := s.verifySamples(ctx); err != nil {
		return err
	}

	topics := len(s.catalog.ListTopics())
	samples := s.catalog.SampleCount()
	metrics.UpdateCatalogSize(topics, samples)

	s.started = true
	s.logger.Info(ctx, "exam-prep service started",
		logger.Int("topics", topics),
		logger.Int("samples", samples),
		logger.String("catalog", catalogSource(s.catalogPath)),
		logger.Bool("fillFromSample", s.fillFromSample),
	)
	return nil
}

// verifySamples solves every sample; a sample that does not solve fails start-up.
func (s *Service) verifySamples(ctx context.Context) error {
	for _, topic := range s.catalog.ListTopics() {
		content, err := s.catalog.GetTopic(topic)
		if err != nil {
			return fmt.Errorf("load topic %s: %w", topic, err)
		}
		for _, sample := range content.Samples {
			if _, err := s.solver.Solve(ctx, topic, sample.Data); err != nil {
				return fmt.Errorf("%w: %s/%s: %w", ErrInvalidSample, topic, sample.ID, err)
			}
		}
	}
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "exam-prep service stopped")
}

func (s *Service) content() (*catalog.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.catalog, nil
}

// Topics lists the topic identifiers in catalog order.
func (s *Service) Topics(_ context.Context) ([]types.Topic, error) {
	c, err := s.content()
	if err != nil {
		return nil, err
	}
	return c.ListTopics(), nil
}

// Samples returns the description and samples for the named topic.
// Unknown names fail with catalog.ErrNotFound.
func (s *Service) Samples(_ context.Context, name string) (types.Topic, types.TopicContent, error) {
	c, err := s.content()
	if err != nil {
		return 0, types.TopicContent{}, err
	}
	return c.Lookup(name)
}

// Solve parses the request topic and computes the worked solution.
func (s *Service) Solve(ctx context.Context, req SolveRequest) (solver.Solution, error) {
	c, err := s.content()
	if err != nil {
		return solver.Solution{}, err
	}

	topic, err := types.ParseTopic(req.Topic)
	if err != nil {
		metrics.RecordSolve("unknown", metrics.OutcomeUnknownTopic)
		return solver.Solution{}, solver.UnknownTopic("unsupported topic: " + req.Topic)
	}

	data := req.Data
	if s.fillFromSample && len(data) == 0 && req.SampleID != "" {
		sample, err := c.Sample(topic, req.SampleID)
		if err != nil {
			metrics.RecordSolve(topic.String(), metrics.OutcomeInvalidInput)
			return solver.Solution{}, solver.InvalidInput("unknown sample_id: " + req.SampleID)
		}
		data = sample.Data
		s.logger.Debug(ctx, "filled solve data from sample",
			logger.String("topic", topic.String()),
			logger.String("sampleID", req.SampleID),
		)
	}

	start := time.Now()
	sol, err := s.solver.Solve(ctx, topic, data)
	latencyMs := float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond
	metrics.RecordSolveLatency(topic.String(), latencyMs)

	if err != nil {
		outcome := outcomeOf(err)
		metrics.RecordSolve(topic.String(), outcome)
		s.logger.Debug(ctx, "solve rejected",
			logger.String("topic", topic.String()),
			logger.String("outcome", outcome),
			logger.Error(err),
		)
		return solver.Solution{}, err
	}

	metrics.RecordSolve(topic.String(), metrics.OutcomeSolved)
	s.logger.Debug(ctx, "solved",
		logger.String("topic", topic.String()),
		logger.Int("steps", len(sol.Steps)),
		logger.Float64("latencyMs", latencyMs),
	)
	return sol, nil
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":        s.started,
		"fillFromSample": s.fillFromSample,
	}
	if s.started {
		stats["topics"] = len(s.catalog.ListTopics())
		stats["samples"] = s.catalog.SampleCount()
	}
	return stats
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, solver.ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, solver.ErrUnknownTopic):
		return metrics.OutcomeUnknownTopic
	default:
		return metrics.OutcomeError
	}
}

func catalogSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
