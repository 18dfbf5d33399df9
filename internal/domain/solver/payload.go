package solver

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/okian/examprep/internal/domain/types"
)

// gridSize is the only supported matrix dimension.
const gridSize = 2

// maxCount bounds whole-number inputs so that the sum of two stays below 2^63.
const maxCount = 1 << 62

// number reads key from data as a float64. Absent keys and nulls read as 0.
func number(data types.Payload, key string) (float64, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return 0, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, InvalidInput(key + " must be a number")
	}
	return f, nil
}

// count reads key as a whole number, truncating toward zero. Values at or
// above 2^62 are rejected; large negative values read as -1.
func count(data types.Payload, key string) (int64, error) {
	f, err := number(data, key)
	if err != nil {
		return 0, err
	}
	switch {
	case f >= maxCount:
		return 0, InvalidInput(key + " must be at most 2^62")
	case f <= -maxCount:
		return -1, nil
	}
	return int64(math.Trunc(f)), nil
}

// finite reports whether every value is neither NaN nor infinite.
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// errNotFinite is returned when finite inputs overflow float64.
func errNotFinite() error {
	return InvalidInput("result is too large to represent")
}

// toFloat accepts JSON numbers, Go numeric kinds and numeric strings.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	case bool:
		return 0, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return 0, false
	}
}

// grid reads v as a strict 2x2 numeric grid. Any slice or array of slices
// or arrays is accepted as long as every dimension is exactly two.
func grid(v any) ([gridSize][gridSize]float64, bool) {
	var g [gridSize][gridSize]float64
	rows, ok := sequence(v)
	if !ok || rows.Len() != gridSize {
		return g, false
	}
	for i := range gridSize {
		row, ok := sequence(rows.Index(i).Interface())
		if !ok || row.Len() != gridSize {
			return g, false
		}
		for j := range gridSize {
			cell := row.Index(j)
			if !cell.CanInterface() {
				return g, false
			}
			f, ok := toFloat(cell.Interface())
			if !ok {
				return g, false
			}
			g[i][j] = f
		}
	}
	return g, true
}

func sequence(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return reflect.Value{}, false
	}
	return rv, true
}
