package util

import "strings"

// NormalizePhone reduces a phone number to canonical local digits so numbers
// entered as "0313-2306429", "0313 2306429" or "+92 313 2306429" compare
// consistently. The Pakistani country code collapses to the local 0 prefix.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if strings.HasPrefix(digits, "92") && len(digits) == 12 {
		return "0" + digits[2:]
	}
	return digits
}

// SamePhone reports whether two phone numbers refer to the same line.
func SamePhone(a, b string) bool {
	return NormalizePhone(a) == NormalizePhone(b)
}
