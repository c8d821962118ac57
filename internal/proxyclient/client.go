// Package proxyclient submits donation claims to a running relay, the same
// way the browser front-end does.
package proxyclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"donation-relay/internal/domain"
	"donation-relay/internal/infra"
)

// ErrMissingProxyURL indicates that the client has nowhere to post to.
var ErrMissingProxyURL = errors.New("proxyclient: proxy url is required")

// Options configures the proxy client.
type Options struct {
	ProxyURL       string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client posts claims to {ProxyURL}/api/donate.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *infra.Logger
}

// StatusError is returned for non-2xx relay responses. Body holds the raw
// response text.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	return fmt.Sprintf("proxy error: %d", e.StatusCode)
}

func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.ProxyURL), "/")
	if base == "" {
		return nil, ErrMissingProxyURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 45 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Client{
		endpoint:   base + "/api/donate",
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// PostDonation submits claim and returns the relay's response text on 2xx.
func (c *Client) PostDonation(ctx context.Context, claim domain.DonationClaim) (string, error) {
	body, err := json.Marshal(claim)
	if err != nil {
		return "", fmt.Errorf("proxyclient: encode claim: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("proxyclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("proxyclient: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("proxyclient: read response: %w", err)
	}
	c.logger.Debug().
		Str("endpoint", c.endpoint).
		Int("status", resp.StatusCode).
		Msg("proxyclient: relay responded")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return string(raw), nil
}

// Pretty re-indents a JSON response for display and returns anything else
// unchanged. An empty response reads as "Success".
func Pretty(text string) string {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		if out, err := json.MarshalIndent(v, "", "  "); err == nil {
			return string(out)
		}
	}
	if text == "" {
		return "Success"
	}
	return text
}
