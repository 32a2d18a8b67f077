package input

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MaxYears bounds the prediction horizon.
const MaxYears = 50

// Number parses v and returns it when it lies within [min, max]. Any value
// that cannot be read as a finite number, or that falls outside the range,
// yields def unchanged.
func Number(v any, min, max, def float64) float64 {
	n, ok := toFloat(v)
	if !ok || math.IsNaN(n) || n < min || n > max {
		return def
	}
	return n
}

// Int is Number truncated toward zero.
func Int(v any, min, max, def int) int {
	return int(Number(v, float64(min), float64(max), float64(def)))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if hexPrefixed(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// hexPrefixed reports whether s is a Go hexadecimal float literal. Only
// decimal strings are accepted; underscores between digits already parse.
func hexPrefixed(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
