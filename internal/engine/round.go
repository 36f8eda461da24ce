package engine

import (
	"math"
	"strconv"
)

// Round4 rounds to 4 decimals. Every intermediate metric passes through this
// before any other formula reuses it.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Round2 rounds to 2 decimals; only the headline loss display uses it.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Fixed4 renders a value as a fixed 4-decimal string, e.g. "87.5000".
func Fixed4(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
