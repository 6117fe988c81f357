package reconciler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/openecomap/ecomap/pkg/identity"
	"github.com/openecomap/ecomap/pkg/registry"
	"github.com/openecomap/ecomap/pkg/sources"
)

var (
	firstNumberRe = regexp.MustCompile(`\d+`)
	yearRe        = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)
)

// Merge folds one raw candidate into the canonical set under key.
//
// When existing is nil a new entity is created with every field taken from
// the candidate. When an entity already exists, scalar fields fill only if
// currently empty (first-populated-wins, so sources disagreeing on a
// description never oscillate across runs), and the investor and provenance
// sets union-insert. Merging the same candidate twice is a no-op the second
// time; the returned flag reports whether anything observable changed.
func Merge(existing *registry.Entity, key identity.Key, cand sources.Candidate, label, contributor string) (*registry.Entity, bool) {
	if existing == nil {
		return create(key, cand, label, contributor), true
	}

	changed := false
	for _, field := range []struct {
		dst *string
		src string
	}{
		{&existing.Website, cand.Website},
		{&existing.Logo, cand.Logo},
		{&existing.Description, cand.Description},
		{&existing.Industry, cand.Industry},
		{&existing.Location, cand.Location},
		{&existing.Funding, cand.Funding},
		{&existing.Valuation, cand.Valuation},
		{&existing.Category, cand.Category},
	} {
		if *field.dst == "" && field.src != "" {
			*field.dst = field.src
			changed = true
		}
	}

	if existing.Employees == 0 {
		if n := parseEmployees(cand.Employees); n > 0 {
			existing.Employees = n
			changed = true
		}
	}
	if existing.Founded == nil {
		if year := parseFounded(cand.Founded); year != nil {
			existing.Founded = year
			changed = true
		}
	}
	if existing.Coordinates == nil && cand.Coordinates != nil {
		coords := *cand.Coordinates
		existing.Coordinates = &coords
		changed = true
	}

	if contributor != "" && !existing.HasInvestor(contributor) {
		existing.AddInvestor(contributor)
		changed = true
	}
	if label != "" && !existing.HasSource(label) {
		existing.AddSource(label)
		changed = true
	}

	return existing, changed
}

func create(key identity.Key, cand sources.Candidate, label, contributor string) *registry.Entity {
	kind := cand.Kind
	if kind == "" {
		kind = registry.KindStartup
	}

	e := &registry.Entity{
		ID:          key,
		Name:        identity.Clean(cand.Name),
		Kind:        kind,
		Website:     cand.Website,
		Logo:        cand.Logo,
		Description: cand.Description,
		Industry:    cand.Industry,
		Location:    cand.Location,
		Employees:   parseEmployees(cand.Employees),
		Founded:     parseFounded(cand.Founded),
		Funding:     cand.Funding,
		Valuation:   cand.Valuation,
		Category:    cand.Category,
	}
	if cand.Coordinates != nil {
		coords := *cand.Coordinates
		e.Coordinates = &coords
	}
	e.AddInvestor(contributor)
	e.AddSource(label)
	return e
}

// parseEmployees extracts a headcount from source text. Sources report
// ranges ("51-200"), approximations ("~100") and open bounds ("500+");
// the first number in the text is taken as the count.
func parseEmployees(text string) int {
	m := firstNumberRe.FindString(strings.TrimSpace(text))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// parseFounded extracts a plausible founding year from source text, which
// arrives in shapes like "2019", "Founded in 2019" or "~2019".
func parseFounded(text string) *int {
	m := yearRe.FindString(strings.TrimSpace(text))
	if m == "" {
		return nil
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &year
}
