package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/openecomap/ecomap/pkg/errors"
	"github.com/openecomap/ecomap/pkg/logging"
)

// GetJSON performs a rate-limited GET request and decodes the JSON
// response into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	return c.decode(resp, url, target)
}

// decode reads and unmarshals a response body into target.
func (c *Client) decode(resp *http.Response, url string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			Service:    c.service,
			Endpoint:   url,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", url, err)
	}
	return nil
}
