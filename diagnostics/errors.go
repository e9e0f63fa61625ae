package diagnostics

import "errors"

var (
	// ErrEmpty is returned for inputs with no observations.
	ErrEmpty = errors.New("diagnostics: no observations")

	// ErrLengthMismatch is returned when paired inputs differ in length or
	// when an occasion or label is out of range.
	ErrLengthMismatch = errors.New("diagnostics: length mismatch")
)
