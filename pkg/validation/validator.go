// Package validation confirms canonical startups against the official
// business registry and enriches accepted matches with registry attributes.
// It runs as a separate stage over an already-reconciled registry; the
// merge step never touches verification fields.
package validation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openecomap/ecomap/pkg/constants"
	"github.com/openecomap/ecomap/pkg/logging"
	"github.com/openecomap/ecomap/pkg/registry"
)

// Record is one business-registry lookup result.
type Record struct {
	Number       string
	OfficialName string
	Status       string
	Address      string
	City         string
	Zipcode      string
	Employees    int
}

// Client looks up organizations in a business registry. A nil Record with
// a nil error means the registry has no match.
type Client interface {
	Lookup(ctx context.Context, name string) (*Record, error)
}

// dissolvedStatuses are registry statuses that mark a company as no
// longer operating.
var dissolvedStatuses = map[string]struct{}{
	"opløst":       {},
	"tvangsopløst": {},
	"konkurs":      {},
}

// Report summarizes one validation pass.
type Report struct {
	// Verified counts startups confirmed and enriched this pass.
	Verified int
	// NotFound counts startups the registry had no match for, including
	// matches discarded for low similarity.
	NotFound int
	// Skipped counts startups already verified in an earlier pass.
	Skipped int
	// Failures counts lookups that errored; the pass continues past them.
	Failures int
}

// Summary returns a one-line human-readable digest of the pass.
func (r *Report) Summary() string {
	return fmt.Sprintf("verified=%d not_found=%d skipped=%d failures=%d",
		r.Verified, r.NotFound, r.Skipped, r.Failures)
}

// Validator runs registry validation passes.
type Validator struct {
	client          Client
	checkpoint      func(*registry.Registry) error
	checkpointEvery int
}

// Option configures a Validator.
type Option func(*Validator)

// WithCheckpoint installs a crash-recovery save called after every
// checkpointEvery lookups. A long pass over a fresh dataset can take
// minutes at the registry's rate limit.
func WithCheckpoint(save func(*registry.Registry) error) Option {
	return func(v *Validator) {
		v.checkpoint = save
	}
}

// WithCheckpointEvery overrides the checkpoint interval.
func WithCheckpointEvery(n int) Option {
	return func(v *Validator) {
		v.checkpointEvery = n
	}
}

// New creates a Validator backed by the given registry client.
func New(client Client, opts ...Option) *Validator {
	v := &Validator{
		client:          client,
		checkpointEvery: constants.ValidationCheckpointEvery,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate confirms every unverified startup in reg against the business
// registry, mutating accepted entities in place. Lookup failures and
// low-confidence matches leave the entity unverified; the pass never
// aborts on a single bad lookup.
func (v *Validator) Validate(ctx context.Context, reg *registry.Registry) (*Report, error) {
	log := logging.FromContext(ctx)
	report := &Report{}

	startups := reg.Startups()
	processed := 0
	for _, e := range startups {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if e.Verified {
			report.Skipped++
			continue
		}

		rec, err := v.client.Lookup(ctx, e.Name)
		if err != nil {
			log.Warn().Err(err).Str("name", e.Name).Msg("registry lookup failed")
			report.Failures++
			continue
		}
		processed++

		if rec == nil {
			report.NotFound++
		} else if accepted := v.apply(e, rec); accepted {
			report.Verified++
			log.Debug().
				Str("name", e.Name).
				Str("official_name", rec.OfficialName).
				Str("cvr", rec.Number).
				Msg("startup verified")
		} else {
			// Low-confidence match, treated as not found.
			report.NotFound++
		}

		if v.checkpoint != nil && processed%v.checkpointEvery == 0 {
			if err := v.checkpoint(reg); err != nil {
				log.Warn().Err(err).Msg("checkpoint save failed")
			}
		}
	}

	log.Info().Str("summary", report.Summary()).Msg("validation pass complete")
	return report, nil
}

// apply enriches e from rec when the names agree closely enough.
// Acceptance requires a similarity score above the threshold or substring
// containment of the known name in the official one.
func (v *Validator) apply(e *registry.Entity, rec *Record) bool {
	score := Similarity(e.Name, rec.OfficialName)
	contained := strings.Contains(strings.ToLower(rec.OfficialName), strings.ToLower(e.Name))
	if score <= constants.SimilarityThreshold && !contained {
		return false
	}

	status := rec.Status
	if status == "" {
		status = "Normal"
	}

	e.Verified = true
	e.Registration = &registry.Registration{
		Number:       rec.Number,
		OfficialName: rec.OfficialName,
		Status:       status,
		Address:      formatAddress(rec),
	}

	if rec.City != "" && rec.City != e.Location {
		e.Location = rec.City
	}
	if e.Employees == 0 && rec.Employees > 0 {
		e.Employees = rec.Employees
	}

	_, dissolved := dissolvedStatuses[strings.ToLower(status)]
	active := !dissolved
	e.Active = &active

	e.LastUpdated = time.Now().UTC()
	return true
}

func formatAddress(rec *Record) string {
	if rec.Address == "" {
		return ""
	}
	if rec.Zipcode == "" && rec.City == "" {
		return rec.Address
	}
	return fmt.Sprintf("%s, %s %s", rec.Address, rec.Zipcode, rec.City)
}
