package utils

import (
	"strings"
	"unicode"
)

// NormalizeIdentifier trims and uppercases identifying text (plates, brands,
// owner names, work descriptions) so lookups are case-insensitive.
func NormalizeIdentifier(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}

// NormalizePhone canonicalizes a contact number into a single international
// string. Numbers given without a leading + get the shop's default country
// calling code prepended; numbers already carrying the default code keep it,
// collapsing an accidentally doubled prefix ("+57+57300..." -> "+57300...").
// Other country codes pass through untouched. Idempotent.
func NormalizePhone(raw, defaultCountryCode string) string {
	phone := stripSpaces(strings.TrimSpace(raw))
	if phone == "" {
		return ""
	}

	if !strings.HasPrefix(phone, "+") {
		return defaultCountryCode + phone
	}

	if strings.HasPrefix(phone, defaultCountryCode) {
		rest := phone[len(defaultCountryCode):]
		for strings.HasPrefix(rest, defaultCountryCode) {
			rest = rest[len(defaultCountryCode):]
		}
		return defaultCountryCode + rest
	}

	return phone
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
