package legitimacy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilter(t *testing.T) *Filter {
	t.Helper()
	f, err := Default()
	require.NoError(t, err)
	return f
}

func TestClassifyAcceptsRealOrganizations(t *testing.T) {
	f := newTestFilter(t)

	for _, name := range []string{
		"Array Labs",
		"Too Good To Go",
		"Pleo",
		"Corti",
		"Lunar",
		"2150 Ventures",
	} {
		v := f.Classify(name, "https://example.com", nil)
		assert.True(t, v.Accepted, "expected %q to pass, got %s", name, v.Reason)
	}
}

func TestClassifyBlacklistExactness(t *testing.T) {
	f := newTestFilter(t)

	tests := []struct {
		name string
	}{
		{"Menu"}, {"Cookies"}, {"menu"}, {"COOKIES"},
		{"Privacy Policy"}, {"Read More"}, {"Denmark"}, {"Google Chrome"},
	}
	for _, tt := range tests {
		v := f.Classify(tt.name, "", nil)
		require.False(t, v.Accepted, "expected %q rejected", tt.name)
		assert.Equal(t, ReasonBlacklistedTerm, v.Reason, "name %q", tt.name)
	}

	// Blacklist is exact-match only: containing a blacklisted word is fine.
	v := f.Classify("Menuly", "https://menuly.dk", nil)
	assert.True(t, v.Accepted)
}

func TestClassifyPatterns(t *testing.T) {
	f := newTestFilter(t)

	tests := []struct {
		name string
	}{
		{"annual-report.pdf"},
		{"Fund IV"},
		{"Series A"},
		{"Windows 11"},
		{"Exited Portfolio Company"},
		{"Read Startup & Scaleup stories"},
	}
	for _, tt := range tests {
		v := f.Classify(tt.name, "", nil)
		require.False(t, v.Accepted, "expected %q rejected", tt.name)
		// "Fund IV" and "Windows 11" are also blacklist-adjacent; the
		// reason must come from whichever check fires first.
		assert.Contains(t, []Reason{ReasonBlacklistedTerm, ReasonPatternMatch}, v.Reason)
	}
}

func TestClassifyLengthBounds(t *testing.T) {
	f := newTestFilter(t)

	v := f.Classify("X", "", nil)
	require.False(t, v.Accepted)
	assert.Equal(t, ReasonTooShort, v.Reason)

	v = f.Classify(strings.Repeat("a", 51), "", nil)
	require.False(t, v.Accepted)
	assert.Equal(t, ReasonTooLong, v.Reason)

	// Exactly at the ceiling passes the length check.
	v = f.Classify(strings.Repeat("a", 50), "", nil)
	assert.True(t, v.Accepted)
}

func TestClassifyTokenBound(t *testing.T) {
	f := newTestFilter(t)

	v := f.Classify("we build software for the maritime industry", "", nil)
	require.False(t, v.Accepted)
	assert.Equal(t, ReasonTooManyTokens, v.Reason)

	v = f.Classify("One Two Three Four Five", "", nil)
	assert.True(t, v.Accepted)
}

func TestClassifyDisallowedCharacters(t *testing.T) {
	f := newTestFilter(t)

	for _, name := range []string{
		"Home / Portfolio", "Products: Overview", "News | Press", "Acme (Denmark)",
	} {
		v := f.Classify(name, "", nil)
		require.False(t, v.Accepted, "expected %q rejected", name)
		assert.Equal(t, ReasonInvalidCharacters, v.Reason, "name %q", name)
	}
}

func TestClassifyMostlyNumeric(t *testing.T) {
	f := newTestFilter(t)

	v := f.Classify("12345678 A", "", nil)
	require.False(t, v.Accepted)
	assert.Equal(t, ReasonMostlyNumeric, v.Reason)

	// A year inside a name is fine.
	v = f.Classify("Studio 54", "", nil)
	assert.True(t, v.Accepted)
}

func TestClassifySelfReference(t *testing.T) {
	f := newTestFilter(t)
	investors := []string{"Seed Capital", "PreSeed Ventures"}

	v := f.Classify("seed capital", "", investors)
	require.False(t, v.Accepted)
	assert.Equal(t, ReasonSelfReference, v.Reason)

	v = f.Classify("Array Labs", "https://array.io", investors)
	assert.True(t, v.Accepted)
}

func TestClassifyDocumentLink(t *testing.T) {
	f := newTestFilter(t)

	v := f.Classify("Array Labs", "https://example.com/report.pdf", nil)
	require.False(t, v.Accepted)
	assert.Equal(t, ReasonDocumentLink, v.Reason)

	v = f.Classify("Array Labs", "https://example.com/brief.PDF?dl=1", nil)
	require.False(t, v.Accepted)
	assert.Equal(t, ReasonDocumentLink, v.Reason)

	v = f.Classify("Array Labs", "https://example.com/pdf-tools", nil)
	assert.True(t, v.Accepted)
}

func TestClassifyOrderIsStable(t *testing.T) {
	f := newTestFilter(t)

	// A candidate failing several checks reports the earliest one:
	// "Menu" is blacklisted before it could fail length or anything else.
	v := f.Classify("Menu", "https://example.com/menu.pdf", []string{"Menu"})
	require.False(t, v.Accepted)
	assert.Equal(t, ReasonBlacklistedTerm, v.Reason)
}

func TestLoadRulesetValidation(t *testing.T) {
	_, err := New(&Ruleset{MaxNameLength: 0, MaxNameTokens: 5})
	assert.Error(t, err)

	_, err = New(&Ruleset{MaxNameLength: 50, MaxNameTokens: 5, Patterns: []string{"("}})
	assert.Error(t, err)
}

func TestDefaultRulesetBounds(t *testing.T) {
	rules, err := DefaultRuleset()
	require.NoError(t, err)
	assert.Equal(t, 50, rules.MaxNameLength)
	assert.Equal(t, 5, rules.MaxNameTokens)
	assert.NotEmpty(t, rules.Blacklist)
	assert.NotEmpty(t, rules.Patterns)
}
