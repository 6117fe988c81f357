// Package sources defines the interface between the reconciliation pipeline
// and the scrapers and crawlers that feed it. A Source yields raw candidate
// records for one origin; the pipeline makes no assumptions about ordering,
// completeness, or cleanliness of what a source produces.
package sources

import (
	"context"

	"github.com/openecomap/ecomap/pkg/registry"
)

// ID identifies a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Candidate is one raw, ephemeral record as produced by a scraper.
// Numeric-ish fields stay text until the merge step parses them, because
// sources report values like "51-200" or "~2019" that need lenient parsing.
type Candidate struct {
	Name        string
	Website     string
	Logo        string
	Description string
	Industry    string
	Location    string
	Employees   string
	Founded     string
	Funding     string
	Valuation   string
	Category    string

	// Kind is an optional hint from sources that know what they carry
	// (e.g. an investor crawl). Empty means the merger defaults to startup.
	Kind registry.Kind

	// Coordinates is an optional hint from sources with their own geo data.
	Coordinates *registry.Coordinates
}

// Source represents one origin of raw candidate records.
type Source interface {
	// ID returns the identifier of this source
	ID() ID

	// Label returns the provenance label recorded on merged entities,
	// e.g. "thehub" or "Portfolio of Seed Capital"
	Label() string

	// Contributor returns the investor display name credited on candidates
	// from this source, or empty when the source implies no backer
	Contributor() string

	// Candidates retrieves the raw records from this source
	Candidates(ctx context.Context) ([]Candidate, error)
}

// Static is an in-memory Source, used for seed data and tests.
type Static struct {
	SourceID        ID
	SourceLabel     string
	ContributorName string
	Records         []Candidate
}

// NewStatic creates a Static source.
func NewStatic(id ID, label, contributor string, records []Candidate) *Static {
	return &Static{
		SourceID:        id,
		SourceLabel:     label,
		ContributorName: contributor,
		Records:         records,
	}
}

// ID implements Source.
func (s *Static) ID() ID { return s.SourceID }

// Label implements Source.
func (s *Static) Label() string { return s.SourceLabel }

// Contributor implements Source.
func (s *Static) Contributor() string { return s.ContributorName }

// Candidates implements Source.
func (s *Static) Candidates(_ context.Context) ([]Candidate, error) {
	return s.Records, nil
}
