// Package roman converts between Roman numerals and integers.
package roman

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidNumeral is returned when a string holds no numeral or a symbol
// outside IVXLCDM.
var ErrInvalidNumeral = errors.New("invalid roman numeral")

var symbolValues = map[rune]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50,
	'C': 100, 'D': 500, 'M': 1000,
}

// Decode converts a Roman numeral to an integer, case-insensitively.
//
// Well-formedness is not checked: a symbol larger than its predecessor adds
// its value minus twice the predecessor, so "IIX" decodes to 10 rather than
// failing.
func Decode(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrInvalidNumeral
	}

	total, prev := 0, 0
	for _, r := range s {
		val, ok := symbolValues[r]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNumeral, s)
		}
		if prev > 0 && val > prev {
			total += val - 2*prev
		} else {
			total += val
		}
		prev = val
	}
	return total, nil
}

var encodeTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Encode converts n (1..3999) to its canonical Roman numeral.
func Encode(n int) (string, error) {
	if n < 1 || n > 3999 {
		return "", fmt.Errorf("%w: %d out of range", ErrInvalidNumeral, n)
	}

	var sb strings.Builder
	for _, e := range encodeTable {
		for n >= e.value {
			sb.WriteString(e.symbol)
			n -= e.value
		}
	}
	return sb.String(), nil
}

// IsNumeral reports whether s is non-empty and made only of Roman symbols.
func IsNumeral(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range strings.ToUpper(s) {
		if _, ok := symbolValues[r]; !ok {
			return false
		}
	}
	return true
}
