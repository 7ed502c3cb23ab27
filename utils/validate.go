// utils/validate.go
package utils

import "math"

// ValidAmount checks that a money amount coming from user input is a real,
// non-negative number.
func ValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
