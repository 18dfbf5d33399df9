// Package catalog serves the read-only topic descriptions and sample problems.
//
// A Catalog is built once at start-up and never mutated afterwards, so it
// may be shared between goroutines without synchronisation. Every accessor
// returns deep copies.
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/okian/examprep/internal/domain/types"
	"gopkg.in/yaml.v3"
)

// document mirrors the YAML layout of catalog.yaml.
type document struct {
	Topics []topicDocument `yaml:"topics"`
}

type topicDocument struct {
	ID          string                `yaml:"id"`
	Description string                `yaml:"description"`
	Samples     []types.SampleProblem `yaml:"samples"`
}

// Catalog maps each topic to its description and ordered samples.
type Catalog struct {
	entries map[types.Topic]types.TopicContent
}

// New loads a catalog. Without options the built-in content is used.
func New(opts ...Option) (*Catalog, error) {
	cfg := &loadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	r := cfg.reader
	if r == nil {
		if cfg.path != "" {
			f, err := os.Open(cfg.path)
			if err != nil {
				return nil, fmt.Errorf("open catalog %s: %w", cfg.path, err)
			}
			defer func() { _ = f.Close() }()
			r = f
		} else {
			r = bytes.NewReader(defaultDocument)
		}
	}
	return decode(r)
}

// MustDefault returns the built-in catalog and panics if it is malformed.
func MustDefault() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

func decode(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidCatalog, err)
	}

	c := &Catalog{entries: make(map[types.Topic]types.TopicContent, len(doc.Topics))}
	for _, td := range doc.Topics {
		topic, err := types.ParseTopic(td.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		if _, dup := c.entries[topic]; dup {
			return nil, fmt.Errorf("%w: topic %s defined twice", ErrInvalidCatalog, topic)
		}
		if len(td.Samples) == 0 {
			return nil, fmt.Errorf("%w: topic %s has no samples", ErrInvalidCatalog, topic)
		}

		seen := make(map[string]struct{}, len(td.Samples))
		for _, s := range td.Samples {
			if s.ID == "" {
				return nil, fmt.Errorf("%w: topic %s has a sample without id", ErrInvalidCatalog, topic)
			}
			if _, dup := seen[s.ID]; dup {
				return nil, fmt.Errorf("%w: sample %s defined twice in topic %s", ErrInvalidCatalog, s.ID, topic)
			}
			seen[s.ID] = struct{}{}
		}

		c.entries[topic] = types.TopicContent{
			Description: td.Description,
			Samples:     cloneSamples(td.Samples),
		}
	}

	for _, topic := range types.Topics() {
		if _, ok := c.entries[topic]; !ok {
			return nil, fmt.Errorf("%w: topic %s missing", ErrInvalidCatalog, topic)
		}
	}
	return c, nil
}

// ListTopics returns every topic in the fixed enumeration order.
func (c *Catalog) ListTopics() []types.Topic {
	return types.Topics()
}

// GetTopic returns the description and samples for topic.
func (c *Catalog) GetTopic(topic types.Topic) (types.TopicContent, error) {
	content, ok := c.entries[topic]
	if !ok {
		return types.TopicContent{}, fmt.Errorf("%w: topic %s", ErrNotFound, topic)
	}
	return types.TopicContent{
		Description: content.Description,
		Samples:     cloneSamples(content.Samples),
	}, nil
}

// Lookup resolves a topic by identifier and returns its content.
func (c *Catalog) Lookup(name string) (types.Topic, types.TopicContent, error) {
	topic, err := types.ParseTopic(name)
	if err != nil {
		return 0, types.TopicContent{}, fmt.Errorf("%w: topic %q", ErrNotFound, name)
	}
	content, err := c.GetTopic(topic)
	if err != nil {
		return 0, types.TopicContent{}, err
	}
	return topic, content, nil
}

// Sample returns one sample of topic by id.
func (c *Catalog) Sample(topic types.Topic, id string) (types.SampleProblem, error) {
	content, ok := c.entries[topic]
	if !ok {
		return types.SampleProblem{}, fmt.Errorf("%w: topic %s", ErrNotFound, topic)
	}
	for _, s := range content.Samples {
		if s.ID == id {
			return cloneSample(s), nil
		}
	}
	return types.SampleProblem{}, fmt.Errorf("%w: sample %s in topic %s", ErrNotFound, id, topic)
}

// SampleCount returns the total number of samples across all topics.
func (c *Catalog) SampleCount() int {
	n := 0
	for _, content := range c.entries {
		n += len(content.Samples)
	}
	return n
}

func cloneSamples(in []types.SampleProblem) []types.SampleProblem {
	out := make([]types.SampleProblem, len(in))
	for i, s := range in {
		out[i] = cloneSample(s)
	}
	return out
}

func cloneSample(s types.SampleProblem) types.SampleProblem {
	if s.Data != nil {
		s.Data = clonePayload(s.Data)
	}
	return s
}

func clonePayload(p types.Payload) types.Payload {
	out := make(types.Payload, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return map[string]any(clonePayload(x))
	case types.Payload:
		return clonePayload(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
