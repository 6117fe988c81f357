// Package thehub fetches Danish startups from the thehub.io companies API.
// The API is paginated; candidates arrive with location and sometimes
// coordinate hints, which the resolver then doesn't need to geocode.
package thehub

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/openecomap/ecomap/internal/transport"
	"github.com/openecomap/ecomap/pkg/constants"
	"github.com/openecomap/ecomap/pkg/logging"
	"github.com/openecomap/ecomap/pkg/registry"
	"github.com/openecomap/ecomap/pkg/sources"
)

// DefaultBaseURL is the public thehub.io API endpoint.
const DefaultBaseURL = "https://thehub.io/api"

// imageBaseURL hosts company logos referenced by path in API responses.
const imageBaseURL = "https://thehub-io.imgix.net"

// Source implements sources.Source over the thehub.io companies API.
type Source struct {
	baseURL  string
	http     *transport.Client
	maxPages int
}

// Option configures a Source.
type Option func(*Source)

// WithMaxPages caps how many pages a fetch walks, for bounded test runs.
func WithMaxPages(n int) Option {
	return func(s *Source) {
		s.maxPages = n
	}
}

// New creates a Source against the public endpoint.
func New(opts ...Option) *Source {
	return NewWithBaseURL(DefaultBaseURL, opts...)
}

// NewWithBaseURL creates a Source against a custom endpoint, used by tests.
func NewWithBaseURL(baseURL string, opts ...Option) *Source {
	s := &Source{
		baseURL: baseURL,
		http:    transport.New("thehub", constants.SourceFetchDelay),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID implements sources.Source.
func (s *Source) ID() sources.ID { return "thehub" }

// Label implements sources.Source.
func (s *Source) Label() string { return "thehub" }

// Contributor implements sources.Source. The Hub lists companies, not
// portfolios, so candidates carry no backing investor.
func (s *Source) Contributor() string { return "" }

type page struct {
	Docs  []doc `json:"docs"`
	Pages int   `json:"pages"`
}

type doc struct {
	Name               string     `json:"name"`
	Website            string     `json:"website"`
	WhatWeDo           string     `json:"whatWeDo"`
	Employees          flexString `json:"employees"`
	FoundedDate        flexString `json:"foundedDate"`
	RegistrationNumber string     `json:"registrationNumber"`
	LogoImage          *logoImage `json:"logoImage"`
	Countries          []country  `json:"countries"`
	Industries         []industry `json:"industries"`
}

// flexString decodes a field the API reports either as a string or as a
// bare number, like employee counts and founding years.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type logoImage struct {
	Path string `json:"path"`
}

type country struct {
	Location location `json:"location"`
}

type location struct {
	City        string     `json:"city"`
	Address     string     `json:"address"`
	Coordinates *geoCoords `json:"coordinates"`
}

type industry struct {
	Name string `json:"name"`
}

// geoCoords decodes the API's coordinate field, which appears both as an
// object {"lat": .., "lng": ..} and as a bare pair whose axis order is
// not guaranteed.
type geoCoords struct {
	Lat float64
	Lng float64
}

func (g *geoCoords) UnmarshalJSON(data []byte) error {
	var obj struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Lat != nil && obj.Lng != nil {
		g.Lat = *obj.Lat
		g.Lng = *obj.Lng
		return nil
	}

	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	// Danish latitudes sit near 55, longitudes near 12. A first element
	// below 20 means the pair arrived GeoJSON-style as [lng, lat].
	if pair[0] < 20 {
		g.Lat, g.Lng = pair[1], pair[0]
	} else {
		g.Lat, g.Lng = pair[0], pair[1]
	}
	return nil
}

// Candidates implements sources.Source by walking every page of the
// companies listing.
func (s *Source) Candidates(ctx context.Context) ([]sources.Candidate, error) {
	log := logging.FromContext(ctx)
	var all []sources.Candidate

	for pageNum := 1; ; pageNum++ {
		q := url.Values{}
		q.Set("countryCodes[]", "DK")
		q.Set("page", strconv.Itoa(pageNum))
		q.Set("per_page", "100")

		var p page
		if err := s.http.GetJSON(ctx, s.baseURL+"/companiesProper?"+q.Encode(), &p); err != nil {
			return nil, err
		}
		if len(p.Docs) == 0 {
			break
		}

		for _, d := range p.Docs {
			if d.Name == "" {
				continue
			}
			all = append(all, s.candidate(d))
		}
		log.Debug().Int("page", pageNum).Int("companies", len(p.Docs)).Msg("fetched page")

		if pageNum >= p.Pages {
			break
		}
		if s.maxPages > 0 && pageNum >= s.maxPages {
			break
		}
	}

	return all, nil
}

func (s *Source) candidate(d doc) sources.Candidate {
	c := sources.Candidate{
		Name:        d.Name,
		Website:     d.Website,
		Description: d.WhatWeDo,
		Employees:   string(d.Employees),
		Founded:     string(d.FoundedDate),
		Location:    "Denmark",
		Kind:        registry.KindStartup,
	}

	if d.LogoImage != nil && d.LogoImage.Path != "" {
		c.Logo = imageBaseURL + d.LogoImage.Path
	}
	if len(d.Industries) > 0 {
		c.Industry = d.Industries[0].Name
	}

	if len(d.Countries) > 0 {
		loc := d.Countries[0].Location
		switch {
		case loc.City != "":
			c.Location = loc.City
		case loc.Address != "":
			c.Location = loc.Address
		}
		if loc.Coordinates != nil {
			c.Coordinates = &registry.Coordinates{
				Lat: loc.Coordinates.Lat,
				Lon: loc.Coordinates.Lng,
			}
		}
	}

	return c
}
