package domain

import (
	"regexp"
	"strings"
)

// DigipinMaxLen bounds the normalized code length, dashes included.
const DigipinMaxLen = 13

// digipinChars is the number of significant (non-dash) characters in a
// complete code: XXX-XXX-XXXX.
const digipinChars = 10

var digipinPattern = regexp.MustCompile(`^[A-Z0-9]{3}-[A-Z0-9]{3}-[A-Z0-9]{4}$`)

// NormalizeDigipin uppercases raw, drops every character outside [A-Z0-9],
// keeps at most ten significant characters and inserts dashes after the
// third and sixth of them. Partial input stays partial: "5c88" yields
// "5C8-8". Applying it twice gives the same result as applying it once.
func NormalizeDigipin(raw string) string {
	upper := strings.ToUpper(raw)

	sig := make([]byte, 0, digipinChars)
	for i := 0; i < len(upper) && len(sig) < digipinChars; i++ {
		c := upper[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			sig = append(sig, c)
		}
	}

	var b strings.Builder
	b.Grow(DigipinMaxLen)
	for i, c := range sig {
		if i == 3 || i == 6 {
			b.WriteByte('-')
		}
		b.WriteByte(c)
	}

	out := b.String()
	if len(out) > DigipinMaxLen {
		out = out[:DigipinMaxLen]
	}
	return out
}

// IsCompleteDigipin reports whether code is a full XXX-XXX-XXXX code.
func IsCompleteDigipin(code string) bool {
	return digipinPattern.MatchString(code)
}
