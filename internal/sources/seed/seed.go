// Package seed loads the curated investor list that anchors the dataset.
// Investors are hand-maintained, not scraped, so they arrive through the
// same source interface but with kind and coordinate hints already set.
package seed

import (
	"encoding/json"
	"os"

	"github.com/openecomap/ecomap/pkg/errors"
	"github.com/openecomap/ecomap/pkg/registry"
	"github.com/openecomap/ecomap/pkg/sources"
)

// investor is one curated entry. Coordinates are [lat, lon].
type investor struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	Website      string      `json:"website"`
	Logo         string      `json:"logo"`
	Description  string      `json:"description"`
	Location     string      `json:"location"`
	Address      string      `json:"address"`
	Category     string      `json:"category"`
	PortfolioURL string      `json:"portfolioUrl"`
	Coordinates  *[2]float64 `json:"coordinates"`
}

// List is a loaded investor seed file.
type List struct {
	investors []investor
}

// Load reads an investor seed file.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var invs []investor
	if err := json.Unmarshal(data, &invs); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	return &List{investors: invs}, nil
}

// Len returns the number of seed investors.
func (l *List) Len() int { return len(l.investors) }

// Names maps investor IDs to display names, for crediting portfolio
// scrapes to their investors.
func (l *List) Names() map[string]string {
	names := make(map[string]string, len(l.investors))
	for _, inv := range l.investors {
		names[inv.ID] = inv.Name
	}
	return names
}

// Source returns the seed list as a candidate source labeled "investors".
func (l *List) Source() sources.Source {
	cands := make([]sources.Candidate, 0, len(l.investors))
	for _, inv := range l.investors {
		if inv.Name == "" {
			continue
		}

		kind := registry.KindInvestor
		if inv.Type == registry.KindSupporter.String() {
			kind = registry.KindSupporter
		}

		location := inv.Location
		if location == "" {
			location = inv.Address
		}

		c := sources.Candidate{
			Name:        inv.Name,
			Website:     inv.Website,
			Logo:        inv.Logo,
			Description: inv.Description,
			Location:    location,
			Category:    inv.Category,
			Kind:        kind,
		}
		if inv.Coordinates != nil {
			c.Coordinates = &registry.Coordinates{
				Lat: inv.Coordinates[0],
				Lon: inv.Coordinates[1],
			}
		}
		cands = append(cands, c)
	}

	return sources.NewStatic("investors", "investors", "", cands)
}
