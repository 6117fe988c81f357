// Package geo resolves free-form location text into approximate map
// coordinates. Resolution walks a fixed fallback chain: coordinates kept
// from a previous snapshot win outright, then a gazetteer of known places
// and postal codes, then an optional external geocoder, and finally a
// weighted country-level default for text that only names the country.
package geo

import (
	"embed"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/openecomap/ecomap/pkg/errors"
	"github.com/openecomap/ecomap/pkg/registry"
)

//go:embed places.yaml
var embedded embed.FS

// point is the YAML [lat, lon] tuple.
type point [2]float64

func (p point) coords() registry.Coordinates {
	return registry.Coordinates{Lat: p[0], Lon: p[1]}
}

// PostalBand maps a contiguous range of 4-digit postal codes to a place
// named in the gazetteer's place table.
type PostalBand struct {
	From  int    `yaml:"from"`
	To    int    `yaml:"to"`
	Place string `yaml:"place"`
}

// BoundingBox is the sanity envelope for resolved coordinates.
type BoundingBox struct {
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
	MinLon float64 `yaml:"min_lon"`
	MaxLon float64 `yaml:"max_lon"`
}

// Contains reports whether c falls inside the box.
func (b BoundingBox) Contains(c registry.Coordinates) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// Gazetteer is the known-place table behind the resolver. Like the
// legitimacy rules it ships embedded and can be overridden from a file.
type Gazetteer struct {
	Country string `yaml:"country"`
	Capital struct {
		Name        string `yaml:"name"`
		Coordinates point  `yaml:"coordinates"`
	} `yaml:"capital"`
	Center        point            `yaml:"center"`
	CapitalWeight float64          `yaml:"capital_weight"`
	BoundingBox   BoundingBox      `yaml:"bounding_box"`
	Places        map[string]point `yaml:"places"`
	PostalCodes   map[string]point `yaml:"postal_codes"`
	PostalBands   []PostalBand     `yaml:"postal_bands"`
}

// DefaultGazetteer loads the place table embedded in the binary.
func DefaultGazetteer() (*Gazetteer, error) {
	data, err := embedded.ReadFile("places.yaml")
	if err != nil {
		return nil, errors.WrapIO("read", "places.yaml", err)
	}
	return parseGazetteer(data, "places.yaml")
}

// LoadGazetteer reads a place table from an external file.
func LoadGazetteer(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return parseGazetteer(data, path)
}

func parseGazetteer(data []byte, name string) (*Gazetteer, error) {
	var g Gazetteer
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *Gazetteer) validate() error {
	if g.Country == "" {
		return &errors.ValidationError{
			Field:   "country",
			Message: "must be set",
		}
	}
	if g.CapitalWeight < 0 || g.CapitalWeight > 1 {
		return &errors.ValidationError{
			Field:   "capital_weight",
			Value:   g.CapitalWeight,
			Message: "must be within [0, 1]",
		}
	}
	if g.BoundingBox.MinLat >= g.BoundingBox.MaxLat ||
		g.BoundingBox.MinLon >= g.BoundingBox.MaxLon {
		return &errors.ValidationError{
			Field:   "bounding_box",
			Message: "min bounds must be below max bounds",
		}
	}
	for i, b := range g.PostalBands {
		if b.From > b.To {
			return &errors.ValidationError{
				Field:   "postal_bands",
				Value:   i,
				Message: "band range is inverted",
			}
		}
		if _, ok := g.Places[b.Place]; !ok {
			return &errors.ValidationError{
				Field:   "postal_bands",
				Value:   b.Place,
				Message: "band references unknown place",
			}
		}
	}
	return nil
}

// lookupPlace returns coordinates for a lower-cased place name.
func (g *Gazetteer) lookupPlace(name string) (registry.Coordinates, bool) {
	if p, ok := g.Places[name]; ok {
		return p.coords(), true
	}
	return registry.Coordinates{}, false
}

// lookupPostal returns coordinates for a 4-digit postal code, consulting
// the exact table first and the band table second.
func (g *Gazetteer) lookupPostal(code string, numeric int) (registry.Coordinates, bool) {
	if p, ok := g.PostalCodes[code]; ok {
		return p.coords(), true
	}
	for _, band := range g.PostalBands {
		if numeric >= band.From && numeric <= band.To {
			return g.Places[band.Place].coords(), true
		}
	}
	return registry.Coordinates{}, false
}
