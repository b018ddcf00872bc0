// Package marineaxis is the HTTP client for the Marine-Axis admin API.
// All calls speak the uniform {success, data, total, message} envelope and
// return a typed *Error classifying transport, timeout, and server failures.
package marineaxis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/marineaxis/marine-axis-admin/pkg/logger"
)

// TokenProvider returns the bearer token attached to authenticated requests.
// A nil provider or an empty token leaves the request anonymous.
type TokenProvider func(ctx context.Context) (string, error)

// Config configures the API client.
type Config struct {
	// BaseURL is the API origin, e.g. https://api.marine-axis.com.
	BaseURL string

	// Timeout bounds each request. Zero means the 30s default.
	Timeout time.Duration

	// RequestsPerSecond limits outgoing request rate. Zero means unlimited.
	RequestsPerSecond float64

	// Burst is the limiter burst size. Zero means 1 when limiting is on.
	Burst int
}

// Client is the Marine-Axis admin API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiURL     string
	tokens     TokenProvider
	limiter    *rate.Limiter
	log        *logger.Logger

	// Sub-clients
	auth      *AuthClient
	resources *ResourceClient
}

// New creates an API client.
func New(cfg Config, tokens TokenProvider, log *logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst == 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	if log == nil {
		log = logger.Nop()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiURL:     baseURL + "/api/v1",
		tokens:     tokens,
		limiter:    limiter,
		log:        log.WithField("component", "api_client"),
	}

	c.auth = &AuthClient{client: c}
	c.resources = &ResourceClient{client: c}

	return c, nil
}

// Auth returns the auth sub-client.
func (c *Client) Auth() *AuthClient { return c.auth }

// Resources returns the resource sub-client.
func (c *Client) Resources() *ResourceClient { return c.resources }

// =============================================================================
// Internal HTTP Methods
// =============================================================================

// do performs one request and decodes the response envelope.
// Business failures (success=false or non-2xx) come back as *Error with
// KindServer; round-trip failures as KindTransport or KindTimeout.
func (c *Client) do(ctx context.Context, method, urlStr string, payload interface{}, authenticated bool) (*envelope, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, transportError(err)
		}
	}

	var bodyReader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated && c.tokens != nil {
		token, err := c.tokens(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode >= 400 {
		return nil, serverError(respBody, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, &Error{Kind: KindServer, StatusCode: resp.StatusCode,
			Message: "malformed response from server", cause: err}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "the server rejected the request"
		}
		return nil, &Error{Kind: KindServer, StatusCode: resp.StatusCode, Message: msg}
	}

	return &env, nil
}
