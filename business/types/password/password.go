// Package password represents a clear text password before it is hashed.
package password

import (
	"errors"
)

// bcrypt ignores everything past 72 bytes.
const maxBytes = 72

// Password represents a password in the system.
type Password struct {
	value string
}

// String returns the value of the password.
func (p Password) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Password) Equal(p2 Password) bool {
	return p.value == p2.value
}

// MarshalText keeps the value out of logs.
func (p Password) MarshalText() ([]byte, error) {
	return []byte("[MASKED]"), nil
}

// =============================================================================

// Parse parses the string value and returns a password if the value complies
// with the rules for a password.
func Parse(value string) (Password, error) {
	if value == "" {
		return Password{}, errors.New("invalid password: empty")
	}

	if len(value) > maxBytes {
		return Password{}, errors.New("invalid password: longer than 72 bytes")
	}

	return Password{value}, nil
}

// MustParse parses the string value and returns a password if the value
// complies with the rules for a password. If an error occurs the function panics.
func MustParse(value string) Password {
	pass, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return pass
}
