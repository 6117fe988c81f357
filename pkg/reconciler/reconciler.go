// Package reconciler orchestrates a reconciliation run: it folds raw
// candidates from every source into the canonical registry, resolves
// coordinates for entities that lack them, and reapplies the supporter
// recategorization rule. Each run consumes the previous snapshot as its
// merge base and enrichment memory; entities absent from this run's
// sources are carried forward unchanged.
package reconciler

import (
	"context"
	"strings"
	"time"

	"github.com/openecomap/ecomap/pkg/geo"
	"github.com/openecomap/ecomap/pkg/identity"
	"github.com/openecomap/ecomap/pkg/legitimacy"
	"github.com/openecomap/ecomap/pkg/logging"
	"github.com/openecomap/ecomap/pkg/registry"
	"github.com/openecomap/ecomap/pkg/sources"
)

// defaultSupporterCategories are the operational categories that mark an
// investor-like entity as an ecosystem supporter rather than a capital
// provider. Matched case-insensitively, exact or substring.
var defaultSupporterCategories = []string{
	"accelerator",
	"incubator",
	"government fund",
	"university",
	"co-working",
	"grant",
	"education",
	"network",
	"hub",
	"science park",
	"innovation hub",
}

// Reconciler performs reconciliation runs over a baseline registry.
type Reconciler struct {
	baseline            *registry.Registry
	filter              *legitimacy.Filter
	resolver            *geo.Resolver
	supporterCategories []string
}

// New creates a Reconciler. Without options it starts from an empty
// baseline with the embedded rule tables and gazetteer.
func New(opts ...Option) (*Reconciler, error) {
	r := &Reconciler{}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.baseline == nil {
		r.baseline = registry.New()
	}
	if r.filter == nil {
		f, err := legitimacy.Default()
		if err != nil {
			return nil, err
		}
		r.filter = f
	}
	if r.resolver == nil {
		res, err := geo.NewResolver()
		if err != nil {
			return nil, err
		}
		r.resolver = res
	}
	if r.supporterCategories == nil {
		r.supporterCategories = defaultSupporterCategories
	}

	return r, nil
}

// Reconcile runs one full pass over the given sources and returns the next
// canonical registry alongside run statistics. The baseline is deep-copied
// first, so a failed or partial run never corrupts the previous snapshot.
func (r *Reconciler) Reconcile(ctx context.Context, srcs ...sources.Source) (*registry.Registry, *Result, error) {
	start := time.Now()
	result := newResult()
	reg := r.baseline.Copy()

	for _, src := range srcs {
		r.foldSource(ctx, reg, src, result)
	}

	r.resolveCoordinates(ctx, reg, result)
	r.recategorizeSupporters(reg, result)

	result.Duration = time.Since(start)
	logging.FromContext(ctx).Info().
		Int("entities", reg.Len()).
		Str("summary", result.Summary()).
		Msg("reconciliation complete")

	return reg, result, nil
}

// foldSource merges every candidate from one source into the registry.
// A source that fails to produce candidates is recorded and skipped.
func (r *Reconciler) foldSource(ctx context.Context, reg *registry.Registry, src sources.Source, result *Result) {
	ctx = logging.WithSource(ctx, src.ID().String())
	log := logging.FromContext(ctx)

	cands, err := src.Candidates(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("source failed, skipping")
		result.Failures[src.Label()] = err.Error()
		return
	}

	investorNames := reg.InvestorNames()
	created, updated := 0, 0

	for _, cand := range cands {
		key, err := identity.Normalize(cand.Name)
		if err != nil {
			result.Malformed++
			continue
		}

		// The self-reference check targets portfolio entries claiming to
		// be startups; candidates that are investors by declaration are
		// exempt or the seed list could never refresh itself.
		known := investorNames
		if cand.Kind == registry.KindInvestor || cand.Kind == registry.KindSupporter {
			known = nil
		}

		verdict := r.filter.Classify(cand.Name, cand.Website, known)
		if !verdict.Accepted {
			result.recordRejection(verdict.Reason, cand.Name)
			log.Debug().
				Str("name", cand.Name).
				Str("reason", verdict.Reason.String()).
				Msg("candidate rejected")
			continue
		}

		existing, found := reg.Get(key)
		merged, changed := Merge(existing, key, cand, src.Label(), src.Contributor())
		switch {
		case !found:
			merged.LastUpdated = time.Now().UTC()
			reg.Set(merged)
			result.Created++
			created++
		case changed:
			merged.LastUpdated = time.Now().UTC()
			result.Updated++
			updated++
		}
	}

	log.Info().
		Int("candidates", len(cands)).
		Int("created", created).
		Int("updated", updated).
		Msg("source folded")
}

// resolveCoordinates fills in coordinates for every entity lacking them.
// Entities that already carry coordinates keep them untouched, so external
// geocoding done in earlier runs is never redone or overwritten.
func (r *Reconciler) resolveCoordinates(ctx context.Context, reg *registry.Registry, result *Result) {
	for _, e := range reg.List() {
		resolved := r.resolver.Resolve(ctx, e.Coordinates, e.Location)
		if e.Coordinates == nil && resolved != nil {
			result.Resolved++
		}
		e.Coordinates = resolved
	}
}

// recategorizeSupporters reclassifies investors whose category matches the
// supporter rule set. The rule reapplies every run because a category can
// arrive from a later source than the entity itself.
func (r *Reconciler) recategorizeSupporters(reg *registry.Registry, result *Result) {
	for _, e := range reg.Kind(registry.KindInvestor) {
		if r.isSupporterCategory(e.Category) {
			e.Kind = registry.KindSupporter
			result.Recategorized++
		}
	}
}

func (r *Reconciler) isSupporterCategory(category string) bool {
	cat := strings.ToLower(strings.TrimSpace(category))
	if cat == "" {
		return false
	}
	for _, rule := range r.supporterCategories {
		if cat == rule || strings.Contains(cat, rule) {
			return true
		}
	}
	return false
}
