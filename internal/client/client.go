package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/devilmonastery/warehouse/internal/config"
	"github.com/devilmonastery/warehouse/internal/pkg/logger"
	"github.com/devilmonastery/warehouse/internal/pkg/metrics"
)

// Client issues authenticated JSON requests against the warehouse API and
// transparently refreshes an expired access token once per request
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	tokens     TokenStore
	logger     *slog.Logger

	coalesceRefresh bool
	refreshGroup    singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for refresh and retry diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRefreshCoalescing controls whether concurrent refreshes share one round trip
func WithRefreshCoalescing(enabled bool) Option {
	return func(c *Client) {
		c.coalesceRefresh = enabled
	}
}

// RequestOptions describes a single API call
type RequestOptions struct {
	// Method defaults to GET
	Method string
	// Body is sent as JSON. []byte, json.RawMessage and string values are sent verbatim.
	Body any
	// Headers override the computed Content-Type and Authorization headers
	Headers map[string]string
}

// response is a fully read HTTP response
type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// NewClient creates an API client. The configuration is copied, so later
// changes to cfg do not affect the client.
func NewClient(cfg *config.Config, tokens TokenStore, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("client: configuration is required")
	}
	if tokens == nil {
		return nil, ErrNoTokenStore
	}

	c := &Client{
		cfg: *cfg,
		httpClient: &http.Client{
			Timeout:   cfg.API.Timeout,
			Transport: NewMetricsTransport(nil),
		},
		tokens:          tokens,
		logger:          slog.Default().With("component", "api-client"),
		coalesceRefresh: cfg.Session.CoalesceRefresh,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Tokens returns the token store (useful for auth flows)
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// Endpoints returns the endpoint descriptor
func (c *Client) Endpoints() config.Endpoints {
	return c.cfg.Endpoints
}

// ResolveURL returns the absolute URL for an endpoint path
func (c *Client) ResolveURL(endpoint string) string {
	return c.cfg.ResolveURL(endpoint)
}

// Request performs an API call and returns the raw JSON body of a successful
// response. A successful response with an empty or non-JSON body yields {}.
//
// Failures are *APIError for non-2xx statuses and *NetworkError when no
// response was received.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}

	url := c.cfg.ResolveURL(endpoint)
	log := logger.WithHTTPRequest(c.logger, method, endpoint)

	state := stateInitial
	for {
		token, err := c.tokens.GetAccessToken()
		if err != nil {
			return nil, fmt.Errorf("failed to read access token: %w", err)
		}

		resp, err := c.send(ctx, method, url, body, buildHeaders(token, opts.Headers))
		if err != nil {
			return nil, err
		}

		if resp.ok() {
			return successBody(resp.body, log), nil
		}

		if resp.status != http.StatusUnauthorized || token == "" {
			return nil, newAPIError(method, url, resp)
		}

		next, retry := state.afterUnauthorized(func() bool {
			log.Info("access token rejected, attempting refresh")
			return c.refreshFor(ctx, token)
		})
		if !retry {
			if state == stateInitial {
				log.Debug("refresh failed, returning original response")
			}
			return nil, newAPIError(method, url, resp)
		}

		state = next
		metrics.RequestRetries.Inc()
		log.Debug("retrying request with refreshed token")
	}
}

// Do performs an API call and decodes a successful response into out.
// out may be nil when the response body is not needed.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any) error {
	raw, err := c.Request(ctx, endpoint, RequestOptions{Method: method, Body: body})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, endpoint, err)
	}
	return nil
}

// send performs one HTTP round trip and reads the whole body
func (c *Client) send(ctx context.Context, method, url string, body []byte, headers http.Header) (*response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header = headers

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: url, Err: err}
	}

	return &response{status: resp.StatusCode, body: data}, nil
}

// buildHeaders computes request headers; caller headers win over computed ones
func buildHeaders(token string, extra map[string]string) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	for k, v := range extra {
		h.Set(k, v)
	}
	return h
}

// encodeBody serializes the request body once so a retry resends identical bytes
func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		return data, nil
	}
}

// successBody returns the body of a 2xx response, or {} when it is empty or not JSON
func successBody(body []byte, log *slog.Logger) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage(`{}`)
	}
	if !json.Valid(trimmed) {
		log.Debug("successful response is not JSON, treating as empty object", slog.Int("bytes", len(body)))
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(trimmed)
}
