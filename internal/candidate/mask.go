package candidate

import (
	"strings"
	"unicode"
)

const (
	maskChar = '*'
	// visible is the number of leading and trailing characters left unmasked.
	visible = 2
)

// MaskEmail hides the middle of the local part of an email address.
// "john.doe@example.com" becomes "jo****oe@example.com". Short local parts are
// masked completely. The domain is kept as is.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}

	local, domain, found := strings.Cut(email, "@")
	masked := maskMiddle([]rune(local))
	if !found {
		return masked
	}

	return masked + "@" + domain
}

// MaskPhone hides every digit of a phone number except the first and last two.
// A leading plus sign and separators are preserved.
func MaskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	runes := []rune(phone)
	digits := 0
	for _, r := range runes {
		if unicode.IsDigit(r) {
			digits++
		}
	}

	var b strings.Builder
	seen := 0
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}

		seen++
		if digits > visible*2 && (seen <= visible || seen > digits-visible) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(maskChar)
	}

	return b.String()
}

func maskMiddle(runes []rune) string {
	if len(runes) <= visible*2 {
		return strings.Repeat(string(maskChar), len(runes))
	}

	middle := len(runes) - visible*2
	return string(runes[:visible]) + strings.Repeat(string(maskChar), middle) + string(runes[len(runes)-visible:])
}
