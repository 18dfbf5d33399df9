// Package types contains common types used across the application
package types

import (
	"errors"
	"fmt"
)

// ErrUnknownTopic is returned when a topic identifier is outside the known set.
var ErrUnknownTopic = errors.New("unknown topic")

// Topic identifies one of the fixed exam topics.
type Topic int

// Known topics, in listing order.
const (
	Probability Topic = iota + 1
	CoordinateGeometry
	Calculus
	Matrices
)

var topicNames = map[Topic]string{
	Probability:        "probability",
	CoordinateGeometry: "coordinate-geometry",
	Calculus:           "calculus",
	Matrices:           "matrices",
}

// Topics returns every known topic in a stable order.
func Topics() []Topic {
	return []Topic{Probability, CoordinateGeometry, Calculus, Matrices}
}

// ParseTopic maps an identifier such as "calculus" to its Topic.
func ParseTopic(name string) (Topic, error) {
	for _, t := range Topics() {
		if topicNames[t] == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTopic, name)
}

// Valid reports whether t is one of the known topics.
func (t Topic) Valid() bool {
	_, ok := topicNames[t]
	return ok
}

func (t Topic) String() string {
	if name, ok := topicNames[t]; ok {
		return name
	}
	return fmt.Sprintf("topic(%d)", int(t))
}

// MarshalText renders the topic identifier.
func (t Topic) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTopic, int(t))
	}
	return []byte(topicNames[t]), nil
}

// UnmarshalText parses a topic identifier.
func (t *Topic) UnmarshalText(b []byte) error {
	parsed, err := ParseTopic(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Payload is the structured input for a problem. Its shape depends on the topic.
type Payload map[string]any

// SampleProblem is a canned practice question.
type SampleProblem struct {
	ID       string  `json:"id" yaml:"id"`
	Question string  `json:"question" yaml:"question"`
	Data     Payload `json:"data" yaml:"data"`
	Expected string  `json:"expected" yaml:"expected"`
}

// TopicContent is the description and samples published for a topic.
type TopicContent struct {
	Description string          `json:"description"`
	Samples     []SampleProblem `json:"samples"`
}
