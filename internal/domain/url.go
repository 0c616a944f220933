package domain

import (
	"net/url"
	"strings"
)

const (
	MsgEmptyProductURL   = "Please enter a product URL"
	MsgInvalidProductURL = "Please enter a valid URL"
	MsgProductURLHint    = "Please enter a valid URL (starting with http:// or https://)"
)

// IsValidProductURL reports whether s parses as an absolute URL with scheme
// http or https and a host.
func IsValidProductURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return false
	}
	return u.Host != ""
}

// ProductURLHint returns the inline validation message for raw input: empty
// for blank or valid input, the hint otherwise.
func ProductURLHint(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || IsValidProductURL(trimmed) {
		return ""
	}
	return MsgProductURLHint
}

// ValidateProductURL checks the submission precondition and returns the
// trimmed URL that is sent to the backend.
func ValidateProductURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", NewValidationError(ErrEmptyProductURL, MsgEmptyProductURL)
	}
	if !IsValidProductURL(trimmed) {
		return "", NewValidationError(ErrInvalidProductURL, MsgInvalidProductURL)
	}
	return trimmed, nil
}
