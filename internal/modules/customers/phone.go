package customers

import "strings"

const countryCode = "254"

// NormalizePhone maps the shapes operators type into +254XXXXXXXXX:
//
//	254712345678 -> +254712345678
//	0712345678   -> +254712345678
//	712345678    -> +254712345678
//
// Spaces, dashes, dots, parentheses and a leading "+" are ignored. Any other
// shape is rejected rather than passed through unnormalized.
func NormalizePhone(raw string) (string, error) {
	digits := stripPhone(raw)
	if digits == "" || !allDigits(digits) {
		return "", &ValidationError{Field: "phone", Msg: "invalid phone number format, e.g. 0712345678"}
	}

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, countryCode):
		return "+" + digits, nil
	case len(digits) == 10 && digits[0] == '0':
		return "+" + countryCode + digits[1:], nil
	case len(digits) == 9:
		// 7XXXXXXXX is the common case; other 9-digit subscriber numbers are accepted too
		return "+" + countryCode + digits, nil
	default:
		return "", &ValidationError{Field: "phone", Msg: "invalid phone number format, e.g. 0712345678"}
	}
}

func stripPhone(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch r {
		case ' ', '-', '.', '(', ')', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimPrefix(b.String(), "+")
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
