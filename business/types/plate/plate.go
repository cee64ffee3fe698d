// Package plate represents a vehicle license plate.
package plate

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Plate represents a license plate in the system.
type Plate struct {
	value string
}

// String returns the value of the plate.
func (p Plate) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Plate) Equal(p2 Plate) bool {
	return p.value == p2.value
}

// MarshalText provides support for logging and any marshal needs.
func (p Plate) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// =============================================================================

// maxLength bounds the free-text plate value.
const maxLength = 64

// Parse parses the string value and returns a plate if the value complies
// with the rules for a license plate. Surrounding whitespace is dropped and
// any other non-blank text up to maxLength characters is accepted.
func Parse(value string) (Plate, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return Plate{}, errors.New("license plate is required")
	}

	if utf8.RuneCountInString(value) > maxLength {
		return Plate{}, fmt.Errorf("invalid license plate %q: longer than %d characters", value, maxLength)
	}

	return Plate{value}, nil
}

// MustParse parses the string value and returns a plate if the value
// complies with the rules for a plate. If an error occurs the function panics.
func MustParse(value string) Plate {
	p, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return p
}
