package solver

import (
	"fmt"

	"github.com/okian/examprep/internal/domain/types"
)

// probability computes P(red) for a bag of red and blue balls.
func probability(data types.Payload) (float64, []string, error) {
	red, err := count(data, "red")
	if err != nil {
		return 0, nil, err
	}
	blue, err := count(data, "blue")
	if err != nil {
		return 0, nil, err
	}
	if red < 0 || blue < 0 {
		return 0, nil, InvalidInput("red and blue must be non-negative")
	}

	total := red + blue
	if total == 0 {
		return 0, nil, InvalidInput("total must be > 0")
	}
	p := float64(red) / float64(total)

	steps := []string{
		"Identify total outcomes: total = red + blue",
		fmt.Sprintf("Compute total = %d + %d = %d", red, blue, total),
		"Probability of red = red / total",
		fmt.Sprintf("P(red) = %d/%d = %s", red, total, fixed3(p)),
	}
	return p, steps, nil
}
