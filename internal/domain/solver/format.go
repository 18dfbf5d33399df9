package solver

import "strconv"

// plain renders v in its shortest exact decimal form, e.g. 4, 2.5, -3.
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fixed3 renders v rounded to three decimal places.
func fixed3(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
