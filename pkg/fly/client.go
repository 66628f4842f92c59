package fly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/obeli-sk/components-flyio/pkg/config"
	"github.com/obeli-sk/components-flyio/pkg/log"
	"github.com/obeli-sk/components-flyio/pkg/metrics"
)

// Client is a typed HTTP client for the Fly Machines API. It is safe for
// concurrent use; it holds no mutable state beyond the underlying
// http.Client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     zerolog.Logger
}

// NewClient creates a client from an explicit configuration. The bearer
// token must already be resolved; a missing token is a configuration error
// reported here, before any request is made.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("cannot obtain `%s`: api token is not configured", config.EnvAPIToken)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: baseURL,
		token:   cfg.APIToken,
		logger:  log.WithComponent("fly"),
	}, nil
}

// APIError is a non-2xx provider response. The raw body is preserved
// verbatim so operators can diagnose failures from the error string alone.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("failed with status %d: %s", e.Status, e.Body)
}

// apiError builds an *APIError from a response.
func apiError(status int, body []byte) *APIError {
	return &APIError{Status: status, Body: string(body)}
}

// success reports whether status is 2xx.
func success(status int) bool {
	return status >= 200 && status < 300
}

// do issues one request and returns the status code and raw body. The body
// is read even on non-2xx so error responses can be surfaced verbatim.
func (c *Client) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	timer := metrics.NewTimer()
	resp, err := c.httpClient.Do(req)
	timer.ObserveDuration(metrics.APIRequestDuration.WithLabelValues(method))
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, "transport_error").Inc()
		return 0, nil, err
	}
	defer resp.Body.Close()
	metrics.APIRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("api request")

	return resp.StatusCode, body, nil
}

// decode unmarshals a response body, embedding the raw body in the error on
// failure. Malformed bodies are never silently defaulted.
func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("cannot deserialize response `%s`: %w", body, err)
	}
	return nil
}
