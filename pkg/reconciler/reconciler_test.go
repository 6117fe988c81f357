package reconciler

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openecomap/ecomap/pkg/geo"
	"github.com/openecomap/ecomap/pkg/legitimacy"
	"github.com/openecomap/ecomap/pkg/registry"
	"github.com/openecomap/ecomap/pkg/sources"
)

type failingSource struct{}

func (failingSource) ID() sources.ID      { return "broken" }
func (failingSource) Label() string       { return "broken" }
func (failingSource) Contributor() string { return "" }
func (failingSource) Candidates(_ context.Context) ([]sources.Candidate, error) {
	return nil, errors.New("connection refused")
}

func seededResolver(t *testing.T) *geo.Resolver {
	t.Helper()
	r, err := geo.NewResolver(geo.WithRand(rand.New(rand.NewSource(7))))
	require.NoError(t, err)
	return r
}

func newTestReconciler(t *testing.T, opts ...Option) *Reconciler {
	t.Helper()
	opts = append([]Option{WithResolver(seededResolver(t))}, opts...)
	r, err := New(opts...)
	require.NoError(t, err)
	return r
}

func TestReconcileEndToEnd(t *testing.T) {
	src := sources.NewStatic("seed", "seed", "Seed Capital", []sources.Candidate{
		{Name: "Array Labs", Website: "https://array.io"},
		{Name: "Menu"},
		{Name: "Array Labs", Website: "https://array.io"},
	})

	r := newTestReconciler(t)
	reg, result, err := r.Reconcile(context.Background(), src)
	require.NoError(t, err)

	require.Equal(t, 1, reg.Len())
	e, found := reg.Get("array-labs")
	require.True(t, found)
	assert.Equal(t, registry.KindStartup, e.Kind)
	assert.Equal(t, []string{"Seed Capital"}, e.Investors)

	_, found = reg.Get("menu")
	assert.False(t, found)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, result.Rejected)
	assert.Equal(t, 1, result.Rejections[legitimacy.ReasonBlacklistedTerm])
	assert.Equal(t, []string{"Menu"}, result.Samples[legitimacy.ReasonBlacklistedTerm])
}

func TestReconcileIdempotent(t *testing.T) {
	srcs := []sources.Source{
		sources.NewStatic("seed", "seed", "Seed Capital", []sources.Candidate{
			{Name: "Array Labs", Website: "https://array.io", Location: "Copenhagen, Denmark"},
			{Name: "Corti", Location: "2200 København N"},
		}),
		sources.NewStatic("hub", "thehub", "", []sources.Candidate{
			{Name: "Array Labs", Description: "Satellite imaging"},
		}),
	}

	first := newTestReconciler(t)
	reg1, _, err := first.Reconcile(context.Background(), srcs...)
	require.NoError(t, err)

	second := newTestReconciler(t, WithBaseline(reg1))
	reg2, result2, err := second.Reconcile(context.Background(), srcs...)
	require.NoError(t, err)

	assert.Equal(t, reg1.List(), reg2.List())
	assert.Zero(t, result2.Created)
	assert.Zero(t, result2.Updated)
	assert.Zero(t, result2.Resolved)
}

func TestReconcileMergeAcrossSourcesOrderIndependent(t *testing.T) {
	seed := sources.NewStatic("seed", "Portfolio of Seed Capital", "Seed Capital", []sources.Candidate{
		{Name: "Array Labs"},
	})
	preseed := sources.NewStatic("preseed", "Portfolio of PreSeed Ventures", "PreSeed Ventures", []sources.Candidate{
		{Name: "Array Labs"},
	})

	for _, order := range [][]sources.Source{{seed, preseed}, {preseed, seed}} {
		reg, _, err := newTestReconciler(t).Reconcile(context.Background(), order...)
		require.NoError(t, err)

		e, found := reg.Get("array-labs")
		require.True(t, found)
		assert.ElementsMatch(t, []string{"Seed Capital", "PreSeed Ventures"}, e.Investors)
		assert.Len(t, e.Investors, 2)
	}
}

func TestReconcileCarriesForwardAbsentEntities(t *testing.T) {
	baseline := registry.New()
	dormant := &registry.Entity{
		ID:          "old-co",
		Name:        "Old Co",
		Kind:        registry.KindStartup,
		Coordinates: &registry.Coordinates{Lat: 55.7, Lon: 12.5},
		Verified:    true,
	}
	baseline.Set(dormant)

	src := sources.NewStatic("seed", "seed", "", []sources.Candidate{{Name: "Array Labs"}})
	reg, _, err := newTestReconciler(t, WithBaseline(baseline)).Reconcile(context.Background(), src)
	require.NoError(t, err)

	carried, found := reg.Get("old-co")
	require.True(t, found)
	assert.Equal(t, dormant, carried)
	// The run works on a copy; the baseline entity is not shared.
	assert.NotSame(t, dormant, carried)
}

func TestReconcileCoordinatePreservation(t *testing.T) {
	baseline := registry.New()
	baseline.Set(&registry.Entity{
		ID:          "array-labs",
		Name:        "Array Labs",
		Kind:        registry.KindStartup,
		Location:    "Copenhagen, Denmark",
		Coordinates: &registry.Coordinates{Lat: 55.1111, Lon: 12.2222},
	})

	// The source now reports a different location text.
	src := sources.NewStatic("hub", "thehub", "", []sources.Candidate{
		{Name: "Array Labs", Location: "Aarhus C"},
	})

	reg, _, err := newTestReconciler(t, WithBaseline(baseline)).Reconcile(context.Background(), src)
	require.NoError(t, err)

	e, _ := reg.Get("array-labs")
	require.NotNil(t, e.Coordinates)
	assert.Equal(t, registry.Coordinates{Lat: 55.1111, Lon: 12.2222}, *e.Coordinates)
}

func TestReconcileResolvesMissingCoordinates(t *testing.T) {
	src := sources.NewStatic("seed", "seed", "", []sources.Candidate{
		{Name: "Corti", Location: "Copenhagen, Denmark"},
		{Name: "Lunar"},
	})

	r := newTestReconciler(t)
	reg, result, err := r.Reconcile(context.Background(), src)
	require.NoError(t, err)

	corti, _ := reg.Get("corti")
	require.NotNil(t, corti.Coordinates)
	assert.True(t, seededResolver(t).Bounds().Contains(*corti.Coordinates))

	// No location text at all: the entity stays uncoordinated.
	lunar, _ := reg.Get("lunar")
	assert.Nil(t, lunar.Coordinates)

	assert.Equal(t, 1, result.Resolved)
}

func TestReconcileSupporterRecategorization(t *testing.T) {
	src := sources.NewStatic("investors", "investors", "", []sources.Candidate{
		{Name: "Fast Track Ventures", Kind: registry.KindInvestor, Category: "Venture Capital"},
		{Name: "Launchpad", Kind: registry.KindInvestor, Category: "Startup Accelerator"},
	})

	reg, result, err := newTestReconciler(t).Reconcile(context.Background(), src)
	require.NoError(t, err)

	vc, _ := reg.Get("fast-track-ventures")
	assert.Equal(t, registry.KindInvestor, vc.Kind)

	acc, _ := reg.Get("launchpad")
	assert.Equal(t, registry.KindSupporter, acc.Kind)
	assert.Equal(t, 1, result.Recategorized)
}

func TestReconcileSelfReferenceRejection(t *testing.T) {
	baseline := registry.New()
	baseline.Set(&registry.Entity{
		ID:   "seed-capital",
		Name: "Seed Capital",
		Kind: registry.KindInvestor,
	})

	// The investor's portfolio page lists the investor itself.
	src := sources.NewStatic("seed", "Portfolio of Seed Capital", "Seed Capital", []sources.Candidate{
		{Name: "Seed Capital"},
		{Name: "Array Labs"},
	})

	reg, result, err := newTestReconciler(t, WithBaseline(baseline)).Reconcile(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Rejections[legitimacy.ReasonSelfReference])
	// The investor entity itself is untouched.
	e, _ := reg.Get("seed-capital")
	assert.Equal(t, registry.KindInvestor, e.Kind)
	assert.Equal(t, 1, result.Created)
}

func TestReconcileMalformedCandidates(t *testing.T) {
	src := sources.NewStatic("seed", "seed", "", []sources.Candidate{
		{Name: "!!"},
		{Name: ""},
		{Name: "Array Labs"},
	})

	reg, result, err := newTestReconciler(t).Reconcile(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Malformed)
	assert.Equal(t, 1, reg.Len())
}

func TestReconcileSourceFailureDoesNotAbort(t *testing.T) {
	ok := sources.NewStatic("seed", "seed", "", []sources.Candidate{{Name: "Array Labs"}})

	reg, result, err := newTestReconciler(t).Reconcile(context.Background(), failingSource{}, ok)
	require.NoError(t, err)

	assert.Equal(t, 1, reg.Len())
	assert.Contains(t, result.Failures, "broken")
}
