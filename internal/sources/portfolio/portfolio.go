// Package portfolio turns raw portfolio-scrape output into sources.
// The scrape file maps investor IDs to the company cards lifted from each
// investor's portfolio page; every investor becomes one Source whose
// candidates are credited to that investor.
package portfolio

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/openecomap/ecomap/pkg/errors"
	"github.com/openecomap/ecomap/pkg/sources"
)

// card is one scraped portfolio entry. Cards are noisy by nature; the
// legitimacy filter downstream does the cleaning.
type card struct {
	Name        string `json:"name"`
	Website     string `json:"website"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
}

// Load reads a portfolio scrape file and returns one Source per investor,
// ordered by investor ID. investorNames maps investor IDs to display
// names; an ID missing from the map falls back to the raw ID so its
// candidates are still credited.
func Load(path string, investorNames map[string]string) ([]sources.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var raw map[string][]card
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	srcs := make([]sources.Source, 0, len(ids))
	for _, id := range ids {
		name := investorNames[id]
		if name == "" {
			name = id
		}

		cands := make([]sources.Candidate, 0, len(raw[id]))
		for _, c := range raw[id] {
			if c.Name == "" {
				continue
			}
			cands = append(cands, sources.Candidate{
				Name:        c.Name,
				Website:     c.Website,
				Logo:        c.Logo,
				Description: c.Description,
				Location:    "Denmark",
			})
		}

		srcs = append(srcs, sources.NewStatic(
			sources.ID(id),
			"Portfolio of "+name,
			name,
			cands,
		))
	}

	return srcs, nil
}
