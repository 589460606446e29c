package math

import (
	"math"
	"strconv"
)

// FormatPrecision formats a float with the given number of decimals.
// Missing values are rendered as NaN.
func FormatPrecision(f float64, precision int) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', precision, 64)
}

// IsMissing reports if the value is a missing cell.
func IsMissing(f float64) bool {
	return math.IsNaN(f)
}
