package quoteform

import "strings"

const (
	postalCodeLength = 5
	phoneLength      = 10
)

// digitsOnly drops every rune that is not an ASCII digit.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// NormalizePostalCode keeps digits only, at most five of them.
func NormalizePostalCode(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) > postalCodeLength {
		digits = digits[:postalCodeLength]
	}
	return digits
}

// PhoneDigits keeps digits only, at most ten of them.
func PhoneDigits(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) > phoneLength {
		digits = digits[:phoneLength]
	}
	return digits
}

// FormatPhoneInput renders the digits typed so far as (AAA) BBB-CCCC.
// Fewer than 3 digits are left as is, 3-5 digits get the area code
// parenthesised, and from 6 digits on the dash is added.
func FormatPhoneInput(raw string) string {
	d := PhoneDigits(raw)
	switch {
	case len(d) >= 6:
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	case len(d) >= 3:
		return "(" + d[:3] + ") " + d[3:]
	default:
		return d
	}
}

// Normalize applies the keystroke normaliser for a format.
func Normalize(format Format, raw string) string {
	switch format {
	case FormatPostalCode:
		return NormalizePostalCode(raw)
	case FormatPhone:
		return FormatPhoneInput(raw)
	default:
		return raw
	}
}
