// Package phone validates and normalizes Kenyan mobile numbers for parcel
// sender and recipient contacts. Numbers are accepted in international
// (+254712345678) or local (0712345678 / 0112345678) form and normalized to
// the international form so that equivalent entries compare equal.
package phone

import (
	"regexp"
	"strings"
	"unicode"
)

// Kenyan mobile prefixes are 7xx (Safaricom/Airtel classic ranges) and 1xx
// (the newer 01x allocations), always 9 digits after the country code.
var kenyanMobile = regexp.MustCompile(`^(?:\+254|254|0)([17]\d{8})$`)

// stripSeparators removes spaces, dots, dashes and parentheses, keeping a
// leading plus sign.
func stripSeparators(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range raw {
		if unicode.IsDigit(r) || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether raw is a well-formed Kenyan mobile number.
func Valid(raw string) bool {
	return kenyanMobile.MatchString(stripSeparators(raw))
}

// Normalize returns the canonical +254 form of a valid number. Invalid input
// is returned stripped of separators but otherwise as-is; callers should
// check Valid first.
func Normalize(raw string) string {
	stripped := stripSeparators(raw)
	m := kenyanMobile.FindStringSubmatch(stripped)
	if m == nil {
		return stripped
	}
	return "+254" + m[1]
}
