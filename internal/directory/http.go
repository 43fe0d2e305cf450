package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var directoryLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "openvet",
	Name:      "directory_lookups_total",
	Help:      "Total number of remote directory lookups",
}, []string{"directory", "result"})

// envelope is the `{success, data, message}` wrapper every service in the
// clinic speaks.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type httpClient struct {
	name    string
	baseURL string
	client  *http.Client
	logger  *zerolog.Logger
}

func newHTTPClient(name, baseURL string, timeout time.Duration, logger *zerolog.Logger) httpClient {
	return httpClient{
		name:    name,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// getJSON performs a bearer-authenticated GET and decodes the envelope data
// into out. A 404 maps to ErrNotFound; anything else unexpected maps to
// ErrUnavailable.
func (c httpClient) getJSON(ctx context.Context, path, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}

	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		directoryLookups.WithLabelValues(c.name, "error").Inc()
		c.logger.Error().Err(err).Str("path", path).Msg("directory request failed")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		directoryLookups.WithLabelValues(c.name, "ok").Inc()
	case http.StatusNotFound:
		directoryLookups.WithLabelValues(c.name, "not_found").Inc()
		return ErrNotFound
	default:
		directoryLookups.WithLabelValues(c.name, "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error().Int("status", resp.StatusCode).Str("path", path).
			Bytes("body", body).Msg("unexpected directory response")
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}
	if !env.Success || env.Data == nil {
		return ErrNotFound
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: failed to decode record: %v", ErrUnavailable, err)
	}
	return nil
}
