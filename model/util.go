package model

import (
	"regexp"
	"strings"

	"github.com/biter777/countries"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func StripEmail(email string) *string {
	stripped := strings.ReplaceAll(email, " ", "")
	stripped = strings.ToLower(stripped)
	return &stripped
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// CountryCode resolves a country name, alpha-2 or alpha-3 code to its
// alpha-2 code.
func CountryCode(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}

	country := countries.ByName(value)
	unknown := countries.Unknown
	if country.Alpha2() == unknown.Alpha2() {
		return "", false
	}
	return country.Alpha2(), true
}

// CountryName is the english name for an alpha-2 code, or "" when unknown.
func CountryName(code string) string {
	alpha2, ok := CountryCode(code)
	if !ok {
		return ""
	}
	return countries.ByName(alpha2).Info().Name
}
