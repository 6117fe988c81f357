package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openecomap/ecomap/pkg/registry"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "investors.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeSeed(t, `[
		{
			"id": "seed-capital",
			"name": "Seed Capital",
			"type": "investor",
			"website": "https://seedcapital.dk",
			"category": "Venture Capital",
			"location": "Copenhagen",
			"address": "Højbro Plads 10, 1200 København K, Denmark",
			"coordinates": [55.6773, 12.5818]
		},
		{
			"id": "futurebox",
			"name": "Futurebox",
			"type": "supporter",
			"category": "Incubator",
			"address": "Elektrovej 331, 2800 Kongens Lyngby, Denmark"
		}
	]`)

	list, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, map[string]string{
		"seed-capital": "Seed Capital",
		"futurebox":    "Futurebox",
	}, list.Names())

	src := list.Source()
	assert.Equal(t, "investors", src.ID().String())
	assert.Empty(t, src.Contributor())

	cands, err := src.Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, cands, 2)

	sc := cands[0]
	assert.Equal(t, registry.KindInvestor, sc.Kind)
	assert.Equal(t, "Copenhagen", sc.Location)
	require.NotNil(t, sc.Coordinates)
	assert.Equal(t, registry.Coordinates{Lat: 55.6773, Lon: 12.5818}, *sc.Coordinates)

	fb := cands[1]
	assert.Equal(t, registry.KindSupporter, fb.Kind)
	// Address stands in when no display location is curated.
	assert.Equal(t, "Elektrovej 331, 2800 Kongens Lyngby, Denmark", fb.Location)
	assert.Nil(t, fb.Coordinates)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadCorruptFile(t *testing.T) {
	_, err := Load(writeSeed(t, `{"not": "a list"}`))
	assert.Error(t, err)
}
