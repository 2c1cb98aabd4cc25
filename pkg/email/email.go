// Package email holds the small amount of email handling the service does
// itself: canonicalization, structural validation, and deriving a display
// name from an address for legacy registrations stored without one.
package email

import (
	"strings"
	"unicode"
)

// Normalize lowercases and trims an address. All identity comparisons run on
// normalized addresses; raw input never reaches the store.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// IsValid does a structural check, not deliverability. Verification codes are
// handled by an external collaborator.
func IsValid(address string) bool {
	at := strings.IndexByte(address, '@')
	if at <= 0 || at == len(address)-1 {
		return false
	}
	domain := address[at+1:]
	if strings.IndexByte(domain, '@') >= 0 {
		return false
	}
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// DeriveNameFromEmail extracts a first/last name pair from the local part of
// an address, for legacy registrations that predate stored display names.
func DeriveNameFromEmail(address string) (string, string) {
	localPart := address
	if at := strings.IndexByte(address, '@'); at > 0 {
		localPart = address[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "Volunteer", "Volunteer"
	}

	first := capitalize(parts[0])
	last := "Volunteer"
	if len(parts) > 1 {
		last = capitalize(parts[len(parts)-1])
	}

	return first, last
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
