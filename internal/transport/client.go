// Package transport provides the shared outbound HTTP client used by the
// enrichment collaborators. All outbound calls go through here so the
// User-Agent header and per-service rate limiting stay consistent.
package transport

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/openecomap/ecomap/pkg/constants"
	"github.com/openecomap/ecomap/pkg/errors"
)

// UserAgent identifies this client to external services. Nominatim's usage
// policy requires a descriptive agent with a contact address.
const UserAgent = "ecomap/1.0 (https://github.com/openecomap/ecomap)"

// Client is a rate-limited HTTP client for one external service.
// Requests block until the service's minimum inter-call delay has elapsed
// since the previous request; external services set the pace, not us.
type Client struct {
	service  string
	http     *http.Client
	minDelay time.Duration

	mu       sync.Mutex
	lastCall time.Time
}

// New creates a Client for the named service with the given minimum delay
// between calls. A zero delay disables rate limiting.
func New(service string, minDelay time.Duration) *Client {
	return &Client{
		service:  service,
		http:     &http.Client{Timeout: constants.DefaultHTTPTimeout},
		minDelay: minDelay,
	}
}

// Get performs a rate-limited GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &errors.APIError{
			Service:  c.service,
			Endpoint: url,
			Message:  "failed to build request",
			Err:      err,
		}
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{
			Service:  c.service,
			Endpoint: url,
			Message:  "request failed",
			Err:      err,
		}
	}
	return resp, nil
}

// wait blocks until the minimum inter-call delay has elapsed, reserving
// the next call slot under the lock so concurrent callers queue up.
func (c *Client) wait(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	next := c.lastCall.Add(c.minDelay)
	var remaining time.Duration
	if next.After(now) {
		remaining = next.Sub(now)
		c.lastCall = next
	} else {
		c.lastCall = now
	}
	c.mu.Unlock()

	if remaining <= 0 {
		return nil
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
