// Package constants provides shared constants used throughout the ecomap codebase.
// This includes timeouts, rate-limit delays, filter bounds, and geographic
// defaults that should be consistent across the application.
package constants

import "time"

// Timeout and rate-limit constants for outbound collaborator calls
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to external services
	DefaultHTTPTimeout = 15 * time.Second

	// NominatimMinDelay is the minimum interval between Nominatim requests,
	// per the service's usage policy (1 request per second, with margin)
	NominatimMinDelay = 1100 * time.Millisecond

	// RegistryMinDelay is the minimum interval between business registry lookups
	RegistryMinDelay = 500 * time.Millisecond

	// SourceFetchDelay is the pause between paginated source API requests
	SourceFetchDelay = 1 * time.Second
)

// Legitimacy filter bounds
const (
	// MinNameLength is the shortest display name accepted as an organization
	MinNameLength = 2

	// MaxNameLength rejects names long enough to be captured sentences
	MaxNameLength = 50

	// MaxNameTokens rejects names with more words than any plausible org name
	MaxNameTokens = 5
)

// Registry validation constants
const (
	// SimilarityThreshold is the minimum name-similarity score for
	// accepting a business registry match
	SimilarityThreshold = 0.6

	// ValidationCheckpointEvery controls how often the snapshot is
	// rewritten during a long validation pass
	ValidationCheckpointEvery = 10
)

// Coordinate jitter radii, in degrees
const (
	// GeocodedJitter is applied to precise geocoder results so co-located
	// markers don't overlap exactly
	GeocodedJitter = 0.01

	// ApproximateJitter is applied to known-place table coordinates
	ApproximateJitter = 0.03

	// FallbackJitter is applied to the last-resort country default
	FallbackJitter = 0.05
)

// File permission constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
