package solver

import (
	"fmt"

	"github.com/okian/examprep/internal/domain/types"
)

// derivative differentiates f(x) = ax^2 + bx + c. The constant c does not
// contribute to the result and is not read.
func derivative(data types.Payload) (string, []string, error) {
	a, err := number(data, "a")
	if err != nil {
		return "", nil, err
	}
	b, err := number(data, "b")
	if err != nil {
		return "", nil, err
	}

	if !finite(2 * a) {
		return "", nil, errNotFinite()
	}

	result := fmt.Sprintf("f'(x) = %sx + %s", plain(2*a), plain(b))
	steps := []string{
		"Differentiate ax^2 -> 2ax",
		"Differentiate bx -> b",
		"Sum results",
		result,
	}
	return result, steps, nil
}
