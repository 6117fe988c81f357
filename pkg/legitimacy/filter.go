// Package legitimacy separates real organizations from scraped noise.
// The filter runs a fixed chain of checks over each raw candidate and
// classifies it with a stable reason taxonomy; downstream analytics depend
// on the reason codes, so both the ordering and the taxonomy are part of
// the dataset's noise-removal contract.
package legitimacy

import (
	"regexp"
	"strings"
	"unicode"
)

// Reason is a stable rejection reason code.
type Reason string

// String returns the string representation of a Reason.
func (r Reason) String() string {
	return string(r)
}

// Rejection reasons, in check order.
const (
	ReasonBlacklistedTerm   Reason = "blacklisted_term"
	ReasonPatternMatch      Reason = "pattern_match"
	ReasonTooShort          Reason = "too_short"
	ReasonTooLong           Reason = "too_long"
	ReasonTooManyTokens     Reason = "too_many_tokens"
	ReasonInvalidCharacters Reason = "invalid_characters"
	ReasonMostlyNumeric     Reason = "mostly_numeric"
	ReasonSelfReference     Reason = "self_reference"
	ReasonDocumentLink      Reason = "document_link"
)

// Verdict is the outcome of classifying one candidate.
type Verdict struct {
	Accepted bool
	Reason   Reason
}

func accept() Verdict              { return Verdict{Accepted: true} }
func reject(reason Reason) Verdict { return Verdict{Reason: reason} }

// Filter classifies raw candidate names against a compiled Ruleset.
// It is pure: Classify never mutates its inputs and has no side effects.
type Filter struct {
	rules      *Ruleset
	blacklist  map[string]struct{}
	patterns   []*regexp.Regexp
	docExts    []string
	disallowed string
}

// New compiles a Ruleset into a Filter.
func New(rules *Ruleset) (*Filter, error) {
	if err := rules.validate(); err != nil {
		return nil, err
	}

	blacklist := make(map[string]struct{}, len(rules.Blacklist))
	for _, term := range rules.Blacklist {
		blacklist[strings.ToLower(strings.TrimSpace(term))] = struct{}{}
	}

	patterns := make([]*regexp.Regexp, 0, len(rules.Patterns))
	for _, p := range rules.Patterns {
		patterns = append(patterns, regexp.MustCompile("(?i)"+p))
	}

	exts := make([]string, 0, len(rules.DocumentExtensions))
	for _, ext := range rules.DocumentExtensions {
		exts = append(exts, strings.ToLower(ext))
	}

	return &Filter{
		rules:      rules,
		blacklist:  blacklist,
		patterns:   patterns,
		docExts:    exts,
		disallowed: rules.DisallowedCharacters,
	}, nil
}

// Default builds a Filter from the embedded rule table.
func Default() (*Filter, error) {
	rules, err := DefaultRuleset()
	if err != nil {
		return nil, err
	}
	return New(rules)
}

// Classify runs the rule chain over a candidate name and its website.
// Checks run in a fixed order and short-circuit on the first failure;
// the order matters for diagnosability of the reason codes, not for
// which candidates ultimately survive.
//
// knownInvestorNames are the display names of investors already in the
// registry; a candidate matching one of them is a source incorrectly
// listing itself as its own portfolio entry.
func (f *Filter) Classify(name, website string, knownInvestorNames []string) Verdict {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)

	// 1. Exact blacklist match
	if _, found := f.blacklist[lower]; found {
		return reject(ReasonBlacklistedTerm)
	}

	// 2. Noise patterns
	for _, p := range f.patterns {
		if p.MatchString(trimmed) {
			return reject(ReasonPatternMatch)
		}
	}

	// 3. Length bounds
	runes := []rune(trimmed)
	if len(runes) < 2 {
		return reject(ReasonTooShort)
	}
	if len(runes) > f.rules.MaxNameLength {
		return reject(ReasonTooLong)
	}

	// 4. Token count
	if len(strings.Fields(trimmed)) > f.rules.MaxNameTokens {
		return reject(ReasonTooManyTokens)
	}

	// 5. Breadcrumb/list punctuation
	if strings.ContainsAny(trimmed, f.disallowed) {
		return reject(ReasonInvalidCharacters)
	}

	// 6. Digit dominance
	digits := 0
	for _, r := range runes {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits*2 > len(runes) {
		return reject(ReasonMostlyNumeric)
	}

	// 7. Self-reference
	for _, inv := range knownInvestorNames {
		if strings.EqualFold(trimmed, inv) {
			return reject(ReasonSelfReference)
		}
	}

	// 8. Website points at a document, not a page
	if f.isDocumentLink(website) {
		return reject(ReasonDocumentLink)
	}

	return accept()
}

// isDocumentLink reports whether a URL targets a document resource.
func (f *Filter) isDocumentLink(website string) bool {
	if website == "" {
		return false
	}
	lower := strings.ToLower(website)
	// Ignore query strings and fragments when inspecting the extension.
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	for _, ext := range f.docExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
