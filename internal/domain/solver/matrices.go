package solver

import (
	"fmt"

	"github.com/okian/examprep/internal/domain/types"
)

// multiply computes C = A·B for two 2x2 matrices.
func multiply(data types.Payload) ([][]float64, []string, error) {
	a, okA := grid(data["A"])
	b, okB := grid(data["B"])
	if !okA || !okB {
		return nil, nil, InvalidInput("A and B must be 2x2")
	}

	c := make([][]float64, gridSize)
	steps := make([]string, 0, 1+gridSize*gridSize)
	steps = append(steps, "Compute C = A·B for 2x2 matrices")
	for i := range gridSize {
		c[i] = make([]float64, gridSize)
		for j := range gridSize {
			c[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j]
			if !finite(c[i][j]) {
				return nil, nil, errNotFinite()
			}
			steps = append(steps, fmt.Sprintf("c%d%d = %s*%s + %s*%s = %s",
				i+1, j+1,
				plain(a[i][0]), plain(b[0][j]),
				plain(a[i][1]), plain(b[1][j]),
				plain(c[i][j]),
			))
		}
	}
	return c, steps, nil
}
