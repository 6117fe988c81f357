// Package registry defines the canonical organization dataset: the Entity
// record, the identity-keyed Registry collection, and whole-snapshot JSON
// persistence. An Entity is created the first time any source yields an
// unseen identity key and is mutated, never replaced, on later sightings.
package registry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/openecomap/ecomap/pkg/identity"
)

// Kind categorizes an entity within the ecosystem.
type Kind string

// String returns the string representation of a Kind.
func (k Kind) String() string {
	return string(k)
}

// Entity kinds. Supporter is a post-merge recategorization of investor-like
// entities whose category matches the supporter rule set.
const (
	KindStartup   Kind = "startup"
	KindInvestor  Kind = "investor"
	KindSupporter Kind = "supporter"
)

// IsValid returns true if the Kind is one of the defined constants.
func (k Kind) IsValid() bool {
	switch k {
	case KindStartup, KindInvestor, KindSupporter:
		return true
	}
	return false
}

// Coordinates is a latitude/longitude pair, serialized as [lat, lon]
// to match the snapshot schema consumed by the map frontend.
type Coordinates struct {
	Lat float64
	Lon float64
}

// MarshalJSON implements json.Marshaler.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lon})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinates must be a [lat, lon] pair: %w", err)
	}
	c.Lat = pair[0]
	c.Lon = pair[1]
	return nil
}

// Registration holds official business registry attributes. It is set only
// by the registry validation stage, never by the merge step.
type Registration struct {
	Number       string `json:"cvr,omitempty"`
	OfficialName string `json:"official_name,omitempty"`
	Status       string `json:"status,omitempty"`
	Address      string `json:"address,omitempty"`
}

// Entity is the authoritative, merged representation of one organization.
type Entity struct {
	ID          identity.Key `json:"id"`
	Name        string       `json:"name"`
	Kind        Kind         `json:"type"`
	Website     string       `json:"website"`
	Logo        string       `json:"logo"`
	Description string       `json:"description"`
	Industry    string       `json:"industry"`
	Location    string       `json:"location"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Employees   int          `json:"employees"`
	Founded     *int         `json:"founded,omitempty"`
	Funding     string       `json:"funding"`
	Valuation   string       `json:"valuation"`

	// Category drives the investor → supporter recategorization rule.
	Category string `json:"category,omitempty"`

	// Investors is the set of investor display names backing this entity.
	// Only meaningful for startups; no name appears twice.
	Investors []string `json:"investors,omitempty"`

	// Sources records contributing source labels, informational only.
	Sources []string `json:"sources,omitempty"`

	// Verified and Registration are owned by the registry validation
	// stage. Active is false for dissolved or bankrupt registrations.
	Verified     bool          `json:"verified"`
	Registration *Registration `json:"registration,omitempty"`
	Active       *bool         `json:"active,omitempty"`

	LastUpdated time.Time `json:"lastUpdated,omitzero"`
}

// HasInvestor reports whether name is already in the investor set.
// Matching is exact and case-sensitive; identity resolution happens
// upstream, not here.
func (e *Entity) HasInvestor(name string) bool {
	for _, inv := range e.Investors {
		if inv == name {
			return true
		}
	}
	return false
}

// AddInvestor union-inserts an investor display name.
func (e *Entity) AddInvestor(name string) {
	if name == "" || e.HasInvestor(name) {
		return
	}
	e.Investors = append(e.Investors, name)
}

// HasSource reports whether label is already recorded as a contributing source.
func (e *Entity) HasSource(label string) bool {
	for _, s := range e.Sources {
		if s == label {
			return true
		}
	}
	return false
}

// AddSource union-inserts a source label.
func (e *Entity) AddSource(label string) {
	if label == "" || e.HasSource(label) {
		return
	}
	e.Sources = append(e.Sources, label)
}

// Copy returns a deep copy of the entity.
func (e *Entity) Copy() *Entity {
	clone := *e
	if e.Coordinates != nil {
		coords := *e.Coordinates
		clone.Coordinates = &coords
	}
	if e.Founded != nil {
		founded := *e.Founded
		clone.Founded = &founded
	}
	if e.Active != nil {
		active := *e.Active
		clone.Active = &active
	}
	if e.Registration != nil {
		reg := *e.Registration
		clone.Registration = &reg
	}
	clone.Investors = append([]string(nil), e.Investors...)
	clone.Sources = append([]string(nil), e.Sources...)
	return &clone
}
