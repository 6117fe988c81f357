package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openecomap/ecomap/pkg/identity"
	"github.com/openecomap/ecomap/pkg/registry"
)

type fakeClient struct {
	records map[string]*Record
	err     error
	calls   int
}

func (f *fakeClient) Lookup(_ context.Context, name string) (*Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records[name], nil
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Pleo", "pleo"))
	assert.Equal(t, 0.0, Similarity("", "Pleo"))
	assert.Greater(t, Similarity("Corti ApS", "Corti A/S"), 0.6)
	assert.Less(t, Similarity("Lunar", "Danske Bank A/S"), 0.3)
}

func TestValidateAcceptsAndEnriches(t *testing.T) {
	reg := registry.New()
	reg.Set(&registry.Entity{ID: "corti", Name: "Corti", Kind: registry.KindStartup})

	client := &fakeClient{records: map[string]*Record{
		"Corti": {
			Number:       "38151889",
			OfficialName: "Corti ApS",
			Status:       "Normal",
			Address:      "Store Strandstræde 21",
			City:         "København K",
			Zipcode:      "1255",
			Employees:    85,
		},
	}}

	report, err := New(client).Validate(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Verified)

	e, _ := reg.Get("corti")
	assert.True(t, e.Verified)
	require.NotNil(t, e.Registration)
	assert.Equal(t, "38151889", e.Registration.Number)
	assert.Equal(t, "Corti ApS", e.Registration.OfficialName)
	assert.Equal(t, "Store Strandstræde 21, 1255 København K", e.Registration.Address)
	assert.Equal(t, "København K", e.Location)
	assert.Equal(t, 85, e.Employees)
	require.NotNil(t, e.Active)
	assert.True(t, *e.Active)
}

func TestValidateSubstringEscapeClause(t *testing.T) {
	reg := registry.New()
	reg.Set(&registry.Entity{ID: "pleo", Name: "Pleo", Kind: registry.KindStartup})

	// Similarity of "Pleo" vs the long official name is far below the
	// threshold, but the known name is contained in the official one.
	client := &fakeClient{records: map[string]*Record{
		"Pleo": {Number: "38863886", OfficialName: "Pleo Technologies ApS"},
	}}

	report, err := New(client).Validate(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Verified)

	e, _ := reg.Get("pleo")
	assert.True(t, e.Verified)
	// Absent status defaults to the registry's healthy state.
	assert.Equal(t, "Normal", e.Registration.Status)
}

func TestValidateLowConfidenceLeftUnverified(t *testing.T) {
	reg := registry.New()
	reg.Set(&registry.Entity{ID: "lunar", Name: "Lunar", Kind: registry.KindStartup})

	client := &fakeClient{records: map[string]*Record{
		"Lunar": {Number: "1", OfficialName: "Danske Bank A/S"},
	}}

	report, err := New(client).Validate(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, 1, report.NotFound)

	e, _ := reg.Get("lunar")
	assert.False(t, e.Verified)
	assert.Nil(t, e.Registration)
}

func TestValidateDissolvedStatus(t *testing.T) {
	reg := registry.New()
	reg.Set(&registry.Entity{ID: "gone-co", Name: "Gone Co", Kind: registry.KindStartup})

	client := &fakeClient{records: map[string]*Record{
		"Gone Co": {Number: "2", OfficialName: "Gone Co ApS", Status: "Konkurs"},
	}}

	_, err := New(client).Validate(context.Background(), reg)
	require.NoError(t, err)

	e, _ := reg.Get("gone-co")
	assert.True(t, e.Verified)
	require.NotNil(t, e.Active)
	assert.False(t, *e.Active)
}

func TestValidateSkipsVerifiedAndSurvivesFailures(t *testing.T) {
	reg := registry.New()
	reg.Set(&registry.Entity{ID: "corti", Name: "Corti", Kind: registry.KindStartup, Verified: true})
	reg.Set(&registry.Entity{ID: "lunar", Name: "Lunar", Kind: registry.KindStartup})

	client := &fakeClient{err: errors.New("connection reset")}
	report, err := New(client).Validate(context.Background(), reg)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failures)
	assert.Equal(t, 1, client.calls)
}

func TestValidateCheckpointing(t *testing.T) {
	reg := registry.New()
	records := map[string]*Record{}
	for _, name := range []string{"Alpha", "Beta", "Gamma", "Delta"} {
		key, err := identity.Normalize(name)
		require.NoError(t, err)
		reg.Set(&registry.Entity{ID: key, Name: name, Kind: registry.KindStartup})
		records[name] = &Record{Number: "1", OfficialName: name}
	}

	saves := 0
	v := New(&fakeClient{records: records},
		WithCheckpointEvery(2),
		WithCheckpoint(func(_ *registry.Registry) error {
			saves++
			return nil
		}))

	_, err := v.Validate(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, 2, saves)
}
