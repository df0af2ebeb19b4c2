package blog

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// NormalizeEmail trims and lowercases an email address. Matching is
// case-insensitive everywhere, so the lowercase form is the stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the email format after normalization.
func ValidateEmail(email string) error {
	e := NormalizeEmail(email)
	if e == "" || !emailRe.MatchString(e) {
		return &ValidationError{Field: "email", Reason: "malformed address"}
	}
	return nil
}

// RequireNonEmpty validates that a trimmed string has content.
func RequireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

// NormalizeTag lowercases and trims a single tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// ParseTags converts a comma-separated tag string into a normalized,
// deduplicated slice, preserving first-seen order.
func ParseTags(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}

// NormalizeTags normalizes and deduplicates a tag slice, preserving order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := []string{}
	for _, t := range tags {
		tt := NormalizeTag(t)
		if tt == "" {
			continue
		}
		if _, ok := seen[tt]; ok {
			continue
		}
		seen[tt] = struct{}{}
		out = append(out, tt)
	}
	return out
}
