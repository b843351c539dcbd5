package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tmorgan/bloodmoney/internal/ratelimit"
)

// Client provides access to the Battle.net WoW REST API.
type Client struct {
	baseURL    string
	apiKey     string
	locale     string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *ratelimit.Limiter

	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		locale:  "en_US",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       slog.Default(),
		maxRetries:   3,
		retryBackoff: time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration. A negative max removes the
// retry ceiling entirely: the client keeps retrying transient failures
// until the context is cancelled.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		if backoff <= 0 {
			backoff = time.Second
		}
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLimiter sets the rate limiter gating outbound requests. The
// Battle.net quota is per-credential, so every component issuing
// requests against one key must share one Limiter instance.
func WithLimiter(l *ratelimit.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithLocale sets the locale query parameter attached to every request.
func WithLocale(locale string) ClientOption {
	return func(c *Client) {
		c.locale = locale
	}
}

// endpoint builds the full URL for an API path, attaching the locale and
// API key query parameters.
func (c *Client) endpoint(path string) string {
	query := url.Values{}
	if c.locale != "" {
		query.Set("locale", c.locale)
	}
	if c.apiKey != "" {
		query.Set("apikey", c.apiKey)
	}

	if len(query) == 0 {
		return c.baseURL + path
	}
	return c.baseURL + path + "?" + query.Encode()
}
