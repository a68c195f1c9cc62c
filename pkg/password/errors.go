package password

import (
	"errors"

	"github.com/edgeflare/passgen/pkg/util/rand"
)

var (
	ErrEmptyCharset      = errors.New("character set is empty")
	ErrDegenerateCharset = errors.New("need at least 2 distinct characters in set")
	ErrUnknownGroup      = errors.New("unknown symbol group")
	ErrNegativeLength    = errors.New("negative password length")
	ErrLengthTooLarge    = errors.New("password length too large")

	// Fatal errors. They indicate bad symbol data, a broken random generator
	// or a programming error and are never reported through an Exporter.
	ErrInvalidEncoding         = errors.New("invalid character encoding")
	ErrUnsupportedLengthMethod = errors.New("unsupported length method")
	ErrArithmetic              = rand.ErrArithmetic
)

// IsUserError reports whether err is a validation failure the user can fix by
// changing the request.
func IsUserError(err error) bool {
	for _, target := range []error{
		ErrEmptyCharset,
		ErrDegenerateCharset,
		ErrUnknownGroup,
		ErrNegativeLength,
		ErrLengthTooLarge,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// errorType returns a short label for metrics.
func errorType(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCharset):
		return "empty_charset"
	case errors.Is(err, ErrDegenerateCharset):
		return "degenerate_charset"
	case errors.Is(err, ErrUnknownGroup):
		return "unknown_group"
	case errors.Is(err, ErrNegativeLength):
		return "negative_length"
	case errors.Is(err, ErrLengthTooLarge):
		return "length_too_large"
	case errors.Is(err, ErrInvalidEncoding):
		return "invalid_encoding"
	case errors.Is(err, ErrUnsupportedLengthMethod):
		return "unsupported_length_method"
	case errors.Is(err, ErrArithmetic):
		return "arithmetic"
	default:
		return "internal"
	}
}
