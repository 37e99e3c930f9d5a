// Package validators contains validators found throughout the
// application that have been abstracted away from the main code
package validators

import (
	"errors"
	"strings"
)

// MaxEmailLen is the length captured emails are truncated to before
// being persisted.
const MaxEmailLen = 200

var (
	ErrEmailEmpty   = errors.New("no email address provided")
	ErrEmailInvalid = errors.New("invalid email address provided")
)

// EmailValidator applies the deliberately loose submission check:
// non-empty after trimming and containing an @. Anything stricter
// loses real submissions from odd-but-deliverable addresses.
func EmailValidator(e string) error {
	if strings.TrimSpace(e) == "" {
		return ErrEmailEmpty
	}

	if !strings.Contains(e, "@") {
		return ErrEmailInvalid
	}

	return nil
}
