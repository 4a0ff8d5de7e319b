package cpf

import (
	"math/rand/v2"
	"strings"
)

// Length is the number of digits of a CPF.
const Length = 11

// DefaultSeparators are the punctuation characters commonly used when writing a CPF.
const DefaultSeparators = ".-/ "

// Strip removes every rune of separators from s.
func Strip(s, separators string) string {
	if separators == "" {
		return s
	}

	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(separators, r) {
			return -1
		}
		return r
	}, s)
}

// IsBare reports whether s is exactly 11 ASCII digits with no separators.
func IsBare(s string) bool {
	if len(s) != Length {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// IsValid strips separators from s and reports whether the remaining digits
// form a CPF whose check digits match.
func IsValid(s, separators string) bool {
	digits := Strip(s, separators)
	if !IsBare(digits) {
		return false
	}

	if repeated(digits) {
		return false
	}

	d := toInts(digits)
	first := checkDigit(d[:9])
	second := checkDigit(d[:10])

	return d[9] == first && d[10] == second
}

// Generate builds a valid bare CPF from random leading digits.
func Generate(r *rand.Rand) string {
	for {
		d := make([]int, Length)
		for i := 0; i < 9; i++ {
			d[i] = r.IntN(10)
		}
		d[9] = checkDigit(d[:9])
		d[10] = checkDigit(d[:10])

		var b strings.Builder
		b.Grow(Length)
		for _, n := range d {
			b.WriteByte(byte('0' + n))
		}

		if s := b.String(); !repeated(s) {
			return s
		}
	}
}

// Format writes a bare CPF as 000.000.000-00. Inputs that are not bare are returned unchanged.
func Format(s string) string {
	if !IsBare(s) {
		return s
	}

	return s[0:3] + "." + s[3:6] + "." + s[6:9] + "-" + s[9:11]
}

// checkDigit weights digits from len(digits)+1 down to 2 and reduces the sum
// with the modulo-11 rule where a remainder of 10 becomes 0.
func checkDigit(digits []int) int {
	sum := 0
	weight := len(digits) + 1
	for _, n := range digits {
		sum += n * weight
		weight--
	}

	rem := (sum * 10) % 11
	if rem == 10 {
		return 0
	}

	return rem
}

func repeated(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func toInts(s string) []int {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int(s[i] - '0')
	}
	return out
}
