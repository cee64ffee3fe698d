// Package phone represents a phone number in the system.
package phone

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Phone represents a phone number in the system.
type Phone struct {
	value string
}

// String returns the value of the phone number.
func (p Phone) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Phone) Equal(p2 Phone) bool {
	return p.value == p2.value
}

// MarshalText provides support for logging and any marshal needs.
func (p Phone) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// =============================================================================

// maxLength bounds the free-text phone value.
const maxLength = 50

// Parse parses the string value and returns a phone number if the value complies
// with the rules for a phone number. Any non-blank text up to maxLength
// characters is accepted, so extensions and alternate numbers are kept.
func Parse(value string) (Phone, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return Phone{}, errors.New("phone is required")
	}

	if utf8.RuneCountInString(value) > maxLength {
		return Phone{}, fmt.Errorf("invalid phone %q: longer than %d characters", value, maxLength)
	}

	return Phone{value}, nil
}

// MustParse parses the string value and returns a phone number if the value
// complies with the rules for a phone number. If an error occurs the function panics.
func MustParse(value string) Phone {
	phone, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return phone
}
