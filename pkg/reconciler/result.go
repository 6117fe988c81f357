package reconciler

import (
	"fmt"
	"time"

	"github.com/openecomap/ecomap/pkg/legitimacy"
)

// rejectionSampleCap bounds how many example names are kept per reason.
const rejectionSampleCap = 5

// Result summarizes one reconciliation run.
type Result struct {
	// Created counts entities seen for the first time this run.
	Created int
	// Updated counts merge operations that changed an existing entity.
	Updated int
	// Rejected counts candidates the legitimacy filter excluded.
	Rejected int
	// Malformed counts candidates discarded before filtering (missing or
	// degenerate name).
	Malformed int
	// Resolved counts entities that gained coordinates this run.
	Resolved int
	// Recategorized counts investors reclassified as supporters.
	Recategorized int

	// Rejections breaks Rejected down by reason code, with a bounded
	// sample of rejected names per reason for auditing.
	Rejections map[legitimacy.Reason]int
	Samples    map[legitimacy.Reason][]string

	// Failures maps source labels to the error that prevented their
	// candidates from being fetched. A failed source never aborts a run.
	Failures map[string]string

	Duration time.Duration
}

func newResult() *Result {
	return &Result{
		Rejections: make(map[legitimacy.Reason]int),
		Samples:    make(map[legitimacy.Reason][]string),
		Failures:   make(map[string]string),
	}
}

func (r *Result) recordRejection(reason legitimacy.Reason, name string) {
	r.Rejected++
	r.Rejections[reason]++
	if len(r.Samples[reason]) < rejectionSampleCap {
		r.Samples[reason] = append(r.Samples[reason], name)
	}
}

// Summary returns a one-line human-readable digest of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"created=%d updated=%d rejected=%d malformed=%d resolved=%d recategorized=%d failed_sources=%d duration=%s",
		r.Created, r.Updated, r.Rejected, r.Malformed, r.Resolved,
		r.Recategorized, len(r.Failures), r.Duration.Round(time.Millisecond),
	)
}
