// Package nominatim implements the external geocoder tier of the
// coordinate fallback chain against the OpenStreetMap Nominatim API.
package nominatim

import (
	"context"
	"net/url"
	"strconv"

	"github.com/openecomap/ecomap/internal/transport"
	"github.com/openecomap/ecomap/pkg/constants"
	"github.com/openecomap/ecomap/pkg/logging"
	"github.com/openecomap/ecomap/pkg/registry"
)

// DefaultBaseURL is the public Nominatim endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Client queries Nominatim. It satisfies the resolver's Geocoder
// interface and respects the service's one-request-per-second policy.
type Client struct {
	baseURL string
	http    *transport.Client
}

// New creates a Nominatim client against the public endpoint.
func New() *Client {
	return NewWithBaseURL(DefaultBaseURL)
}

// NewWithBaseURL creates a client against a custom endpoint, used by tests.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    transport.New("nominatim", constants.NominatimMinDelay),
	}
}

// result is one Nominatim search hit. The API reports coordinates as
// strings.
type result struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves free-form location text to coordinates. No match
// returns nil without an error; the caller falls through to the next
// resolution tier either way.
func (c *Client) Geocode(ctx context.Context, location string) (*registry.Coordinates, error) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("format", "json")
	q.Set("limit", "1")

	var results []result
	if err := c.http.GetJSON(ctx, c.baseURL+"/search?"+q.Encode(), &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		logging.FromContext(ctx).Warn().
			Str("location", location).
			Msg("nominatim returned unparseable coordinates")
		return nil, nil
	}

	return &registry.Coordinates{Lat: lat, Lon: lon}, nil
}
