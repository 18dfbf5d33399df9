// Package solver computes worked solutions for the fixed problem kinds.
package solver

import (
	"context"
	"fmt"

	"github.com/okian/examprep/internal/domain/types"
)

// Solution is a computed result together with its derivation steps.
type Solution struct {
	Topic  types.Topic `json:"topic"`
	Result any         `json:"result"`
	Steps  []string    `json:"steps"`
}

// Solver computes a solution for a topic and its payload.
type Solver interface {
	// Solve honors ctx only before computing; evaluation itself never blocks.
	Solve(ctx context.Context, topic types.Topic, data types.Payload) (Solution, error)
}

// Dispatcher implements Solver by routing to the per-topic evaluators.
type Dispatcher struct{}

// NewDispatcher creates a new dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Solve implements Solver.
func (d *Dispatcher) Solve(ctx context.Context, topic types.Topic, data types.Payload) (Solution, error) {
	if err := ctx.Err(); err != nil {
		return Solution{}, fmt.Errorf("context cancelled: %w", err)
	}
	return Solve(topic, data)
}

// Solve selects the evaluator for topic and runs it against data.
// A nil payload behaves like an empty one.
func Solve(topic types.Topic, data types.Payload) (Solution, error) {
	if data == nil {
		data = types.Payload{}
	}

	var (
		result any
		steps  []string
		err    error
	)
	switch topic {
	case types.Probability:
		result, steps, err = probability(data)
	case types.CoordinateGeometry:
		result, steps, err = distance(data)
	case types.Calculus:
		result, steps, err = derivative(data)
	case types.Matrices:
		result, steps, err = multiply(data)
	default:
		return Solution{}, UnknownTopic("unsupported topic: " + topic.String())
	}
	if err != nil {
		return Solution{}, err
	}
	return Solution{Topic: topic, Result: result, Steps: steps}, nil
}
