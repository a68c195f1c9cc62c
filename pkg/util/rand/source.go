package rand

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	mrand "math/rand"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var (
	// ErrArithmetic reports a sample outside [0, n). It means the underlying
	// generator is broken and must not be recovered from.
	ErrArithmetic = errors.New("arithmetic exception")

	ErrInvalidBound = errors.New("upper bound must be at least 1")
)

// secureReadRetries bounds how often a failing secure read is retried.
const secureReadRetries = 3

// WeakSource returns floats uniformly distributed over [0, 1).
// It is fast and always available but not suitable for secrets on its own.
type WeakSource interface {
	Float64() float64
}

// SecureSource returns uniformly distributed 32-bit unsigned integers from a
// cryptographically secure generator.
type SecureSource interface {
	Uint32() (uint32, error)
}

type mathSource struct{}

// Float64 uses the math/rand/v2 top-level generator, which is safe for
// concurrent use.
func (mathSource) Float64() float64 { return mrand.Float64() }

// MathSource returns the default WeakSource.
func MathSource() WeakSource { return mathSource{} }

type readerSource struct {
	r io.Reader
}

func (s *readerSource) Uint32() (uint32, error) {
	var b [4]byte
	op := func() error {
		_, err := io.ReadFull(s.r, b[:])
		return err
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 5 * time.Millisecond
	if err := backoff.Retry(op, backoff.WithMaxRetries(bo, secureReadRetries)); err != nil {
		return 0, fmt.Errorf("failed to read secure random bytes: %w", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ProbeSecure checks once whether r can deliver random bytes. It returns nil
// when it cannot, in which case callers run in reduced security mode.
// A nil reader probes crypto/rand.
func ProbeSecure(r io.Reader) SecureSource {
	if r == nil {
		r = crand.Reader
	}
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return nil
	}
	return &readerSource{r: r}
}
