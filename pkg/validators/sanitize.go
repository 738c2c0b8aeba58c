package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the result at maxLen runes.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 {
		runes := []rune(trimmed)
		if len(runes) > maxLen {
			return string(runes[:maxLen])
		}
	}
	return trimmed
}

// NormalizeEmail lowercases and trims an address before lookups and inserts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OptionalString maps "" (after trimming) to nil so absent paths persist as NULL.
func OptionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
