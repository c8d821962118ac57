// Package relay forwards donation claims to the upstream Scavenger API.
//
// The relay adds no business logic: it validates presence of the claim
// fields, issues exactly one POST per claim and hands the upstream's status
// and body back unmodified. It exists so the browser can reach the upstream
// from the same origin.
package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"donation-relay/internal/domain"
	"donation-relay/internal/infra"
)

const donatePath = "donate_to"

// ErrMissingBaseURL indicates that the service was configured without an upstream.
var ErrMissingBaseURL = errors.New("relay: base url is required")

// Options configures the relay Service.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Service relays donation claims. It holds no per-request state and is safe
// for concurrent use.
type Service struct {
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewService constructs a relay with defaults for anything not injected.
func NewService(opts Options) (*Service, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Service{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// BaseURL returns the upstream base with trailing slashes stripped.
func (s *Service) BaseURL() string {
	return s.baseURL
}

// URLFor builds the upstream endpoint for claim. Each field is escaped as a
// single path segment so reserved characters cannot change the path shape.
func (s *Service) URLFor(claim domain.DonationClaim) string {
	return s.baseURL + "/" + donatePath +
		"/" + url.PathEscape(claim.Destination) +
		"/" + url.PathEscape(claim.Origin) +
		"/" + url.PathEscape(claim.Signature)
}

// Relay validates claim and forwards it upstream once. Any upstream status,
// including 4xx and 5xx, is a successful relay and is returned verbatim.
// Validation failures return *domain.ValidationError without any network
// activity; transport failures return *domain.UpstreamError.
func (s *Service) Relay(ctx context.Context, claim domain.DonationClaim) (*domain.UpstreamResponse, error) {
	if err := claim.Validate(); err != nil {
		return nil, err
	}

	endpoint := s.URLFor(claim)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, http.NoBody)
	if err != nil {
		return nil, s.upstreamErr(endpoint, fmt.Errorf("build request: %w", err))
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, s.upstreamErr(endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, s.upstreamErr(endpoint, fmt.Errorf("read response: %w", err))
	}

	s.logger.Debug().
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("relay: upstream responded")

	return &domain.UpstreamResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(raw),
	}, nil
}

func (s *Service) upstreamErr(endpoint string, err error) error {
	s.logger.Error().Err(err).Str("url", endpoint).Msg("relay: upstream request failed")
	return &domain.UpstreamError{URL: endpoint, Err: err}
}

// CurlCommand renders the upstream call for claim as a curl invocation the
// user can run against the upstream directly. Escaped segments cannot
// contain a single quote.
func (s *Service) CurlCommand(claim domain.DonationClaim) (string, error) {
	if err := claim.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("curl --location --request POST '%s'", s.URLFor(claim)), nil
}
