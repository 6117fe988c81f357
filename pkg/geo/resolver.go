package geo

import (
	"context"
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/openecomap/ecomap/pkg/constants"
	"github.com/openecomap/ecomap/pkg/logging"
	"github.com/openecomap/ecomap/pkg/registry"
)

// Geocoder resolves free-form location text through an external service.
// Implementations must return nil coordinates (not an error) when the
// service simply has no match for the query.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (*registry.Coordinates, error)
}

var postalCodeRe = regexp.MustCompile(`\b(\d{4})\b`)

// Resolver turns location text into approximate coordinates.
//
// Every resolved point carries a small random jitter so co-located
// organizations don't stack on one map pin; the jitter radius grows with
// how approximate the resolution tier is.
type Resolver struct {
	gazetteer *Gazetteer
	geocoder  Geocoder
	rng       *rand.Rand

	// Place names sorted longest-first so "kongens lyngby" wins over
	// "lyngby" during the substring scan.
	placeKeys []string
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithGazetteer overrides the embedded place table.
func WithGazetteer(g *Gazetteer) Option {
	return func(r *Resolver) error {
		if err := g.validate(); err != nil {
			return err
		}
		r.gazetteer = g
		return nil
	}
}

// WithGeocoder enables the external-geocoder tier of the fallback chain.
func WithGeocoder(g Geocoder) Option {
	return func(r *Resolver) error {
		r.geocoder = g
		return nil
	}
}

// WithRand injects the jitter source. Tests pass a seeded generator.
func WithRand(rng *rand.Rand) Option {
	return func(r *Resolver) error {
		r.rng = rng
		return nil
	}
}

// NewResolver builds a Resolver over the embedded gazetteer unless
// options say otherwise.
func NewResolver(opts ...Option) (*Resolver, error) {
	r := &Resolver{}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if r.gazetteer == nil {
		g, err := DefaultGazetteer()
		if err != nil {
			return nil, err
		}
		r.gazetteer = g
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	r.placeKeys = make([]string, 0, len(r.gazetteer.Places))
	for name := range r.gazetteer.Places {
		r.placeKeys = append(r.placeKeys, name)
	}
	sort.Slice(r.placeKeys, func(i, j int) bool {
		a, b := r.placeKeys[i], r.placeKeys[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	return r, nil
}

// Bounds returns the gazetteer's sanity envelope.
func (r *Resolver) Bounds() BoundingBox {
	return r.gazetteer.BoundingBox
}

// Resolve walks the fallback chain for one entity.
//
// previous holds the entity's coordinates from the prior snapshot; when
// present they are returned unchanged so entities never drift across runs.
// A nil result means the entity stays uncoordinated until a later run
// learns more about its location.
func (r *Resolver) Resolve(ctx context.Context, previous *registry.Coordinates, location string) *registry.Coordinates {
	if previous != nil {
		kept := *previous
		return &kept
	}

	text := strings.TrimSpace(location)
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	if c, ok := r.resolveKnownPlace(lower); ok {
		return r.jitter(c, constants.ApproximateJitter)
	}

	if r.geocoder != nil {
		c, err := r.geocoder.Geocode(ctx, text)
		switch {
		case err != nil:
			logging.FromContext(ctx).Warn().
				Err(err).
				Str("location", text).
				Msg("geocoding failed, falling back")
		case c != nil:
			return r.jitter(*c, constants.GeocodedJitter)
		}
	}

	if strings.Contains(lower, r.gazetteer.Country) {
		return r.jitter(r.countryDefault(), constants.FallbackJitter)
	}

	return nil
}

// resolveKnownPlace matches the location text against the gazetteer.
// The text is reduced to its first comma-separated segment, then matched
// against place names and any embedded 4-digit postal code.
func (r *Resolver) resolveKnownPlace(lower string) (registry.Coordinates, bool) {
	head := lower
	if i := strings.Index(head, ","); i >= 0 {
		head = head[:i]
	}
	head = strings.TrimSpace(head)

	if c, ok := r.gazetteer.lookupPlace(head); ok {
		return c, true
	}

	// A postal code pins the location more precisely than a city-name
	// substring, so it takes precedence.
	if m := postalCodeRe.FindStringSubmatch(lower); m != nil {
		numeric, err := strconv.Atoi(m[1])
		if err == nil {
			if c, ok := r.gazetteer.lookupPostal(m[1], numeric); ok {
				return c, true
			}
		}
	}

	for _, name := range r.placeKeys {
		if strings.Contains(lower, name) {
			return r.gazetteer.Places[name].coords(), true
		}
	}

	return registry.Coordinates{}, false
}

// countryDefault picks the capital area with the configured probability
// and the national midpoint otherwise.
func (r *Resolver) countryDefault() registry.Coordinates {
	if r.rng.Float64() < r.gazetteer.CapitalWeight {
		return r.gazetteer.Capital.Coordinates.coords()
	}
	return r.gazetteer.Center.coords()
}

// jitter displaces c by up to radius degrees on each axis.
func (r *Resolver) jitter(c registry.Coordinates, radius float64) *registry.Coordinates {
	c.Lat += (r.rng.Float64()*2 - 1) * radius
	c.Lon += (r.rng.Float64()*2 - 1) * radius
	return &c
}
