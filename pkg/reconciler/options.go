package reconciler

import (
	"github.com/openecomap/ecomap/pkg/geo"
	"github.com/openecomap/ecomap/pkg/legitimacy"
	"github.com/openecomap/ecomap/pkg/registry"
)

// Option configures a Reconciler.
type Option func(*Reconciler) error

// WithBaseline sets the previous canonical snapshot as the merge base.
// The reconciler works on a deep copy; the baseline is never mutated.
func WithBaseline(base *registry.Registry) Option {
	return func(r *Reconciler) error {
		r.baseline = base
		return nil
	}
}

// WithFilter overrides the legitimacy filter built from the embedded rules.
func WithFilter(f *legitimacy.Filter) Option {
	return func(r *Reconciler) error {
		r.filter = f
		return nil
	}
}

// WithResolver overrides the coordinate resolver.
func WithResolver(res *geo.Resolver) Option {
	return func(r *Reconciler) error {
		r.resolver = res
		return nil
	}
}

// WithSupporterCategories overrides the category rules that reclassify
// investors as supporters. Rules are matched case-insensitively, exact or
// substring.
func WithSupporterCategories(categories []string) Option {
	return func(r *Reconciler) error {
		r.supporterCategories = categories
		return nil
	}
}
