package password

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// SymbolGroup is a named set of candidate characters.
type SymbolGroup struct {
	Name  string
	Chars string
}

// Predefined symbol groups
const (
	GroupNumbers   = "numbers"
	GroupLowercase = "lowercase"
	GroupUppercase = "uppercase"
	GroupSymbols   = "symbols"
	GroupSpace     = "space"
)

var groups = []SymbolGroup{
	{Name: GroupNumbers, Chars: "0123456789"},
	{Name: GroupLowercase, Chars: "abcdefghijklmnopqrstuvwxyz"},
	{Name: GroupUppercase, Chars: "ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
	{Name: GroupSymbols, Chars: "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"},
	{Name: GroupSpace, Chars: " "},
}

// nbsp replaces the plain space so it stays visible in output.
const nbsp = "\u00a0"

// Groups returns the predefined symbol groups in display order.
func Groups() []SymbolGroup {
	return slices.Clone(groups)
}

// LookupGroup returns the characters of a predefined group.
func LookupGroup(name string) (string, bool) {
	for _, g := range groups {
		if g.Name == name {
			return g.Chars, true
		}
	}
	return "", false
}

// Charset is an ordered set of distinct symbols. A symbol is one code point,
// which may span several bytes (or a UTF-16 surrogate pair).
type Charset []string

// Size returns the number of distinct symbols.
func (c Charset) Size() int { return len(c) }

func (c Charset) String() string { return strings.Join(c, "") }

// BuildCharset concatenates the named groups in order and returns their
// distinct symbols in first-seen order. custom holds additional groups by
// name; it may be nil.
func BuildCharset(names []string, custom map[string]string) (Charset, error) {
	var raw strings.Builder
	for _, name := range names {
		chars, ok := LookupGroup(name)
		if !ok {
			chars, ok = custom[name]
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
		}
		raw.WriteString(chars)
	}

	charset, err := ParseSymbols(strings.ReplaceAll(raw.String(), " ", nbsp))
	if err != nil {
		return nil, err
	}
	if len(charset) == 0 {
		return nil, ErrEmptyCharset
	}
	return charset, nil
}

// ParseSymbols splits s into distinct symbols, keeping the first occurrence
// of each. It fails on invalid UTF-8, which includes encoded lone surrogates.
func ParseSymbols(s string) (Charset, error) {
	var charset Charset
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrInvalidEncoding, i)
		}
		sym := s[i : i+size]
		i += size
		// charsets are small, a linear scan is fine
		if !slices.Contains(charset, sym) {
			charset = append(charset, sym)
		}
	}
	return charset, nil
}

// DecodeUTF16 converts UTF-16 code units to a string, joining each high and
// low surrogate pair into one code point. An unpaired surrogate is an error.
func DecodeUTF16(units []uint16) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(units); i++ {
		c := rune(units[i])
		if !utf16.IsSurrogate(c) {
			sb.WriteRune(c)
			continue
		}
		if c < 0xDC00 && i+1 < len(units) {
			if r := utf16.DecodeRune(c, rune(units[i+1])); r != utf8.RuneError {
				sb.WriteRune(r)
				i++
				continue
			}
		}
		return "", fmt.Errorf("%w: unpaired surrogate %#04x at index %d", ErrInvalidEncoding, c, i)
	}
	return sb.String(), nil
}
