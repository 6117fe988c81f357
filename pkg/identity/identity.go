// Package identity derives stable identity keys from organization display names.
// The key is the primary identity of an entity in the registry: two raw
// records whose names normalize to the same key are the same organization.
package identity

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/openecomap/ecomap/pkg/errors"
)

// Key is a normalized, slug-like identifier derived from a display name.
type Key string

// String returns the string representation of a Key.
func (k Key) String() string {
	return string(k)
}

// MinKeyLength is the shortest key that still identifies an organization.
// Anything shorter signals a degenerate name and the candidate is discarded.
const MinKeyLength = 2

var (
	whitespace  = regexp.MustCompile(`\s+`)
	legalSuffix = regexp.MustCompile(`(?i)\s+(ApS|A/S|Inc\.?|Ltd\.?)$`)
	titleCaser  = cases.Title(language.Und)
)

// Normalize derives the identity key for a display name. It is deterministic
// and pure: lower-case, whitespace runs become single hyphens, and every
// character other than letters, digits, and hyphens is stripped.
//
// Returns ErrInvalidInput when the normalized result is shorter than
// MinKeyLength, signaling the caller to discard the candidate rather than
// create a degenerate entity.
func Normalize(name string) (Key, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespace.ReplaceAllString(s, "-")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	// Collapse hyphen runs left behind by stripped punctuation.
	key := strings.Trim(b.String(), "-")
	for strings.Contains(key, "--") {
		key = strings.ReplaceAll(key, "--", "-")
	}

	if len([]rune(key)) < MinKeyLength {
		return "", &errors.ValidationError{
			Field:   "name",
			Value:   name,
			Message: "normalizes to a degenerate key",
		}
	}

	return Key(key), nil
}

// Clean tidies a display name for presentation: trailing legal forms are
// stripped and ALL-CAPS or all-lower scraped names are title-cased.
// Mixed-case names pass through untouched.
func Clean(name string) string {
	s := strings.TrimSpace(name)
	s = legalSuffix.ReplaceAllString(s, "")

	if s == "" {
		return s
	}

	if isUniformCase(s) {
		s = titleCaser.String(strings.ToLower(s))
	}

	return s
}

// isUniformCase reports whether every letter in s shares one case.
func isUniformCase(s string) bool {
	hasLetter := false
	hasUpper := false
	hasLower := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if unicode.IsUpper(r) {
			hasUpper = true
		} else if unicode.IsLower(r) {
			hasLower = true
		}
	}
	return hasLetter && hasUpper != hasLower
}
