package utils

import (
	"regexp"
	"strings"
)

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe   = regexp.MustCompile(`^[0-9]{9,10}$`)
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
)

// ValidEmail reports whether the string looks like an email address.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// NormalizePhone strips spaces and dashes from a phone number.
func NormalizePhone(phone string) string {
	phone = strings.ReplaceAll(phone, "-", "")
	return strings.ReplaceAll(phone, " ", "")
}

// ValidPhone reports whether the phone number contains 9 or 10 digits
// after normalization.
func ValidPhone(phone string) bool {
	return phoneRe.MatchString(NormalizePhone(phone))
}

// SanitizeString removes HTML tags and trims surrounding whitespace.
// Guest-supplied free text (names, special requests) passes through
// here before it is stored.
func SanitizeString(text string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(text, ""))
}
