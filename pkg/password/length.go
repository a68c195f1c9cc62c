package password

import (
	"fmt"
	"math"
)

// LengthMethod selects how the password length is determined.
type LengthMethod string

const (
	// MethodLength uses a fixed number of symbols.
	MethodLength LengthMethod = "length"
	// MethodEntropy uses the fewest symbols that reach a target entropy.
	MethodEntropy LengthMethod = "entropy"
)

// MaxLength is the largest password length that will be generated.
const MaxLength = 10000

// ResolveLength returns the password length for a charset of k symbols.
// For MethodLength it returns length unchanged; for MethodEntropy it returns
// the smallest L with L*log2(k) >= entropy, which is
// ceil(entropy * ln 2 / ln k).
func ResolveLength(k int, method LengthMethod, length int, entropy float64) (int, error) {
	var l int
	switch method {
	case MethodLength:
		l = length
	case MethodEntropy:
		if k < 2 {
			return 0, ErrDegenerateCharset
		}
		v, err := entropyLength(k, entropy)
		if err != nil {
			return 0, err
		}
		l = v
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedLengthMethod, method)
	}

	if l < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeLength, l)
	}
	if l > MaxLength {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrLengthTooLarge, l, MaxLength)
	}
	return l, nil
}

func entropyLength(k int, bits float64) (int, error) {
	if math.IsNaN(bits) || math.IsInf(bits, 1) {
		return 0, fmt.Errorf("%w: entropy %v bits", ErrLengthTooLarge, bits)
	}
	if math.IsInf(bits, -1) {
		return 0, fmt.Errorf("%w: entropy %v bits", ErrNegativeLength, bits)
	}

	perSymbol := math.Log2(float64(k))
	l := math.Ceil(bits / perSymbol)
	// correct for rounding in the division
	if l > 0 && (l-1)*perSymbol >= bits {
		l--
	}
	if l*perSymbol < bits {
		l++
	}

	// checked here so the conversion below cannot overflow
	if l > MaxLength {
		return 0, fmt.Errorf("%w: %.0f exceeds %d", ErrLengthTooLarge, l, MaxLength)
	}
	if l < -MaxLength {
		return 0, fmt.Errorf("%w: %.0f", ErrNegativeLength, l)
	}
	return int(l), nil
}
