// Package dimension represents a cargo measurement in centimeters.
package dimension

import (
	"fmt"
	"math"
	"strconv"
)

// Dimension represents a strictly positive length in centimeters.
type Dimension struct {
	value float64
}

// Value returns the length in centimeters.
func (d Dimension) Value() float64 {
	return d.value
}

// String returns the value of the dimension.
func (d Dimension) String() string {
	return strconv.FormatFloat(d.value, 'f', -1, 64)
}

// Equal provides support for the go-cmp package and testing.
func (d Dimension) Equal(d2 Dimension) bool {
	return d.value == d2.value
}

// MarshalText provides support for logging and any marshal needs.
func (d Dimension) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// =============================================================================

// Parse returns a dimension if the value is a finite number greater than zero.
func Parse(value float64) (Dimension, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Dimension{}, fmt.Errorf("invalid dimension %v: not a number", value)
	}

	if value <= 0 {
		return Dimension{}, fmt.Errorf("invalid dimension %v: must be greater than zero", value)
	}

	return Dimension{value}, nil
}

// MustParse parses the value and returns a dimension. If an error occurs
// the function panics.
func MustParse(value float64) Dimension {
	d, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return d
}

// Volume returns the cubic centimeters enclosed by the three dimensions.
func Volume(height, width, depth Dimension) float64 {
	return height.value * width.value * depth.value
}
