package rand

import (
	"fmt"
	"math"
)

// Source combines a weak and an optional secure generator into uniformly
// distributed indices.
//
// Each index is (weak + secure) mod n. The sum of two independent samples is
// at least as unpredictable as the better of the two, so a biased or
// predictable weak generator does not weaken the secure one. This is a
// defense in depth heuristic, not a proven construction. Uniformity comes
// from the secure sample, which is drawn with rejection sampling.
//
// Without a secure generator the secure sample is always 0 and the output is
// only as good as the weak generator. Secure reports which mode is active.
type Source struct {
	weak   WeakSource
	secure SecureSource
}

// NewSource returns a Source. A nil weak source defaults to MathSource; a nil
// secure source selects reduced security mode.
func NewSource(weak WeakSource, secure SecureSource) *Source {
	if weak == nil {
		weak = MathSource()
	}
	return &Source{weak: weak, secure: secure}
}

// Default returns a Source backed by math/rand/v2 and, if it answers the
// probe, crypto/rand.
func Default() *Source {
	return NewSource(MathSource(), ProbeSecure(nil))
}

// Secure reports whether a cryptographically secure generator contributes to
// every index.
func (s *Source) Secure() bool {
	return s.secure != nil
}

// Index returns a random integer in [0, n).
func (s *Source) Index(n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidBound, n)
	}
	x, err := s.weakIndex(n)
	if err != nil {
		return 0, err
	}
	y, err := s.secureIndex(n)
	if err != nil {
		return 0, err
	}
	return (x + y) % n, nil
}

func (s *Source) weakIndex(n int) (int, error) {
	f := math.Floor(s.weak.Float64() * float64(n))
	if math.IsNaN(f) || f < 0 || f >= float64(n) {
		return 0, fmt.Errorf("%w: weak sample %v outside [0, %d)", ErrArithmetic, f, n)
	}
	return int(f), nil
}

// secureIndex draws until the sample falls outside the biased tail of the
// uint32 range, which makes x mod n exactly uniform.
func (s *Source) secureIndex(n int) (int, error) {
	if s.secure == nil {
		return 0, nil
	}
	const span = uint64(1) << 32
	m := uint64(n)
	if m > span {
		return 0, fmt.Errorf("%w: bound %d exceeds 32-bit range", ErrArithmetic, n)
	}
	for {
		v, err := s.secure.Uint32()
		if err != nil {
			return 0, err
		}
		x := uint64(v)
		if x-x%m <= span-m {
			return int(x % m), nil
		}
	}
}
