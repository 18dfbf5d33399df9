package solver

import (
	"fmt"
	"math"

	"github.com/okian/examprep/internal/domain/types"
)

// distance computes the Euclidean distance between (x1,y1) and (x2,y2).
func distance(data types.Payload) (float64, []string, error) {
	var p [4]float64
	for i, key := range []string{"x1", "y1", "x2", "y2"} {
		v, err := number(data, key)
		if err != nil {
			return 0, nil, err
		}
		p[i] = v
	}
	x1, y1, x2, y2 := p[0], p[1], p[2], p[3]

	dx := x2 - x1
	dy := y2 - y1
	dx2, dy2 := dx*dx, dy*dy
	d := math.Hypot(dx, dy)
	if !finite(d) {
		return 0, nil, errNotFinite()
	}

	steps := []string{
		"Use distance formula: d = sqrt((x2-x1)^2 + (y2-y1)^2)",
		fmt.Sprintf("dx = %s - %s = %s", plain(x2), plain(x1), plain(dx)),
		fmt.Sprintf("dy = %s - %s = %s", plain(y2), plain(y1), plain(dy)),
		fmt.Sprintf("d = sqrt(%s + %s) = %s", fixed3(dx2), fixed3(dy2), fixed3(d)),
	}
	return d, steps, nil
}
