// Package cvrapi implements the business-registry lookup client against
// cvrapi.dk, the public search frontend for the Danish CVR register.
package cvrapi

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/openecomap/ecomap/internal/transport"
	"github.com/openecomap/ecomap/pkg/constants"
	"github.com/openecomap/ecomap/pkg/errors"
	"github.com/openecomap/ecomap/pkg/validation"
)

// DefaultBaseURL is the public cvrapi.dk endpoint.
const DefaultBaseURL = "https://cvrapi.dk/api"

// Client queries cvrapi.dk. It satisfies validation.Client.
type Client struct {
	baseURL string
	http    *transport.Client
}

// New creates a client against the public endpoint.
func New() *Client {
	return NewWithBaseURL(DefaultBaseURL)
}

// NewWithBaseURL creates a client against a custom endpoint, used by tests.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    transport.New("cvrapi", constants.RegistryMinDelay),
	}
}

// response is the cvrapi.dk search result. The API reports the VAT number
// as a bare integer and the employee count as either a number or a banded
// string like "20-49", so both decode leniently.
type response struct {
	VAT       json.Number `json:"vat"`
	Name      string      `json:"name"`
	Address   string      `json:"address"`
	Zipcode   string      `json:"zipcode"`
	City      string      `json:"city"`
	Status    string      `json:"status"`
	Employees lenientInt  `json:"employees"`
}

// lenientInt decodes an int from a JSON number, a numeric string, or a
// range string, taking the lower bound of a range.
type lenientInt int

func (n *lenientInt) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*n = lenientInt(v)
	case string:
		for i, r := range v {
			if r < '0' || r > '9' {
				v = v[:i]
				break
			}
		}
		parsed, err := strconv.Atoi(v)
		if err == nil {
			*n = lenientInt(parsed)
		}
	}
	return nil
}

// Lookup searches the register by organization name. A 404 means the
// register has no match and returns nil without an error.
func (c *Client) Lookup(ctx context.Context, name string) (*validation.Record, error) {
	q := url.Values{}
	q.Set("search", name)
	q.Set("country", "dk")
	q.Set("format", "json")

	var resp response
	err := c.http.GetJSON(ctx, c.baseURL+"?"+q.Encode(), &resp)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if resp.Name == "" {
		return nil, nil
	}

	return &validation.Record{
		Number:       resp.VAT.String(),
		OfficialName: resp.Name,
		Status:       resp.Status,
		Address:      resp.Address,
		City:         resp.City,
		Zipcode:      resp.Zipcode,
		Employees:    int(resp.Employees),
	}, nil
}
