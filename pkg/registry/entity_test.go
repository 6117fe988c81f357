package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatesJSONRoundTrip(t *testing.T) {
	coords := Coordinates{Lat: 55.6761, Lon: 12.5683}

	data, err := json.Marshal(coords)
	require.NoError(t, err)
	assert.Equal(t, "[55.6761,12.5683]", string(data))

	var got Coordinates
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, coords, got)
}

func TestCoordinatesUnmarshalRejectsObjects(t *testing.T) {
	var got Coordinates
	err := json.Unmarshal([]byte(`{"lat":55.6,"lng":12.5}`), &got)
	assert.Error(t, err)
}

func TestEntityJSONSchema(t *testing.T) {
	founded := 2019
	e := &Entity{
		ID:          "array-labs",
		Name:        "Array Labs",
		Kind:        KindStartup,
		Website:     "https://array.io",
		Coordinates: &Coordinates{Lat: 55.6761, Lon: 12.5683},
		Founded:     &founded,
		Investors:   []string{"Seed Capital"},
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "array-labs", raw["id"])
	assert.Equal(t, "startup", raw["type"])
	assert.Equal(t, []any{55.6761, 12.5683}, raw["coordinates"])
	assert.Equal(t, float64(2019), raw["founded"])
	assert.Equal(t, false, raw["verified"])
	// Required-but-empty text fields serialize as empty strings, not absent.
	assert.Contains(t, raw, "description")
	assert.Contains(t, raw, "funding")
	// Unset optionals stay absent.
	assert.NotContains(t, raw, "registration")
	assert.NotContains(t, raw, "active")
}

func TestInvestorSetUniqueness(t *testing.T) {
	e := &Entity{ID: "array-labs", Name: "Array Labs", Kind: KindStartup}

	e.AddInvestor("Seed Capital")
	e.AddInvestor("Seed Capital")
	e.AddInvestor("PreSeed Ventures")
	e.AddInvestor("")

	assert.Equal(t, []string{"Seed Capital", "PreSeed Ventures"}, e.Investors)
}

func TestSourceSetUniqueness(t *testing.T) {
	e := &Entity{ID: "array-labs"}
	e.AddSource("thehub")
	e.AddSource("thehub")
	e.AddSource("Portfolio of Seed Capital")
	assert.Equal(t, []string{"thehub", "Portfolio of Seed Capital"}, e.Sources)
}

func TestEntityCopyIsDeep(t *testing.T) {
	founded := 2019
	e := &Entity{
		ID:          "array-labs",
		Coordinates: &Coordinates{Lat: 55.6, Lon: 12.5},
		Founded:     &founded,
		Investors:   []string{"Seed Capital"},
	}

	clone := e.Copy()
	clone.Coordinates.Lat = 0
	clone.Investors[0] = "changed"
	*clone.Founded = 1999

	assert.Equal(t, 55.6, e.Coordinates.Lat)
	assert.Equal(t, "Seed Capital", e.Investors[0])
	assert.Equal(t, 2019, *e.Founded)
}

func TestKindIsValid(t *testing.T) {
	assert.True(t, KindStartup.IsValid())
	assert.True(t, KindInvestor.IsValid())
	assert.True(t, KindSupporter.IsValid())
	assert.False(t, Kind("accelerator").IsValid())
}
