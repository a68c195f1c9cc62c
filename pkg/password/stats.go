package password

import (
	"fmt"
	"math"
	"strconv"
)

// Stats describes a generated password.
type Stats struct {
	Length      int     `json:"length"`
	CharsetSize int     `json:"charsetSize"`
	Entropy     float64 `json:"entropy"`
}

// NewStats computes the entropy achieved by length symbols drawn from a
// charset of size k: ln(k) * length / ln(2). It may exceed a requested target
// because the length is rounded up.
func NewStats(length, k int) Stats {
	s := Stats{Length: length, CharsetSize: k}
	if length > 0 && k > 0 {
		s.Entropy = math.Log(float64(k)) * float64(length) / math.Ln2
	}
	return s
}

// String renders the stats line shown next to a password.
func (s Stats) String() string {
	return fmt.Sprintf("Length = %[1]d chars, %[4]s%[4]sCharset size = %[2]d symbols, %[4]s%[4]sEntropy = %[3]s bits",
		s.Length, s.CharsetSize, FormatEntropy(s.Entropy), nbsp)
}

// FormatEntropy rounds to 2 decimals below 70 bits, 1 decimal below 200 bits
// and to whole bits above that.
func FormatEntropy(bits float64) string {
	switch {
	case bits < 70:
		return strconv.FormatFloat(bits, 'f', 2, 64)
	case bits < 200:
		return strconv.FormatFloat(bits, 'f', 1, 64)
	default:
		return strconv.FormatFloat(bits, 'f', 0, 64)
	}
}
