// Package httpclient provides the outbound HTTP client shared by the registry
// and reputation sources: retry with backoff, optional rate limiting and
// per-client timeouts.
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/logx"
	"fraudtect/internal/platform/rate"
)

// DefaultUserAgent is sent on every request unless overridden.
const DefaultUserAgent = "FrauDTect/1.0"

// maxBodyBytes caps how much of a response body is read into memory.
const maxBodyBytes = 8 << 20

// Client is an HTTP client with retry logic, rate limiting and timeout support.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout is the per-request timeout.
	// Default: 30 seconds
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts.
	// Default: 0 (single attempt)
	MaxRetries int

	// RetryBackoff is the initial backoff between retries; it doubles on each attempt.
	// Default: 1 second
	RetryBackoff time.Duration

	// MaxRetryBackoff caps the backoff.
	// Default: 30 seconds
	MaxRetryBackoff time.Duration

	// UserAgent is the User-Agent header value.
	UserAgent string

	// RateLimit is the maximum requests per second. 0 disables limiting.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int

	// Transport overrides the underlying round tripper (tests).
	Transport http.RoundTripper
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxRetries:      2,
		RetryBackoff:    1 * time.Second,
		MaxRetryBackoff: 30 * time.Second,
		UserAgent:       DefaultUserAgent,
		RateLimit:       0,
		RateLimitBurst:  1,
	}
}

// New creates a new HTTP client with the given configuration.
func New(config Config, logger logx.Logger) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RetryBackoff == 0 {
		config.RetryBackoff = 1 * time.Second
	}
	if config.MaxRetryBackoff == 0 {
		config.MaxRetryBackoff = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.RateLimitBurst == 0 {
		config.RateLimitBurst = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}

	httpClient := &http.Client{
		Timeout:   config.Timeout,
		Transport: config.Transport,
	}

	var rateLimiter *rate.Limiter
	if config.RateLimit > 0 {
		rateLimiter = rate.New(config.RateLimit, config.RateLimitBurst)
	}

	return &Client{
		httpClient:  httpClient,
		rateLimiter: rateLimiter,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}
}

// Request performs an HTTP request with retry logic and rate limiting.
// The body is replayed from the byte slice on every attempt.
func (c *Client) Request(ctx context.Context, method, target string, body []byte, headers map[string]string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if c.rateLimiter != nil {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return nil, errors.Wrap(err, "rate limit wait failed")
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create request for %s %s", method, target)
		}

		req.Header.Set("User-Agent", c.config.UserAgent)
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		c.logger.Debug("HTTP request",
			"method", method,
			"url", redact(target),
			"attempt", attempt+1,
			"max_attempts", c.config.MaxRetries+1,
		)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(start)

		if err != nil {
			c.logger.Warn("HTTP request failed",
				"method", method,
				"url", redact(target),
				"attempt", attempt+1,
				"error", err.Error(),
				"duration_ms", duration.Milliseconds(),
			)
			lastErr = classify(ctx, err)

			if ctx.Err() != nil || !c.shouldRetry(attempt, err, nil) {
				return nil, errors.Wrapf(lastErr, "request failed after %d attempts", attempt+1)
			}
			if err := c.backoff(ctx, attempt); err != nil {
				return nil, errors.Wrap(err, "backoff interrupted")
			}
			continue
		}

		c.logger.Debug("HTTP response received",
			"method", method,
			"url", redact(target),
			"status", resp.StatusCode,
			"duration_ms", duration.Milliseconds(),
		)

		if !isRetryableStatus(resp) {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = errors.Wrapf(CheckStatus(resp), "HTTP %d", resp.StatusCode)

		if !c.shouldRetry(attempt, nil, resp) {
			break
		}

		c.logger.Warn("HTTP request returned retryable status",
			"method", method,
			"url", redact(target),
			"status", resp.StatusCode,
			"attempt", attempt+1,
		)

		if err := c.backoff(ctx, attempt); err != nil {
			return nil, errors.Wrap(err, "backoff interrupted")
		}
	}

	return nil, errors.Wrapf(lastErr, "request failed after %d attempts", c.config.MaxRetries+1)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, target string, headers map[string]string) (*http.Response, error) {
	return c.Request(ctx, http.MethodGet, target, nil, headers)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, target string, body []byte, headers map[string]string) (*http.Response, error) {
	return c.Request(ctx, http.MethodPost, target, body, headers)
}

// PostForm sends form-encoded values.
func (c *Client) PostForm(ctx context.Context, target string, form url.Values, headers map[string]string) (*http.Response, error) {
	h := mergeHeaders(headers, map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
		"Accept":       "application/json",
	})
	return c.Post(ctx, target, []byte(form.Encode()), h)
}

// PostJSON marshals payload and sends it as a JSON body.
func (c *Client) PostJSON(ctx context.Context, target string, payload any, headers map[string]string) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request body")
	}
	h := mergeHeaders(headers, map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	})
	return c.Post(ctx, target, body, h)
}

// GetJSON is a convenience method for GET requests that expect JSON responses.
func (c *Client) GetJSON(ctx context.Context, target string, headers map[string]string) (*http.Response, error) {
	return c.Get(ctx, target, mergeHeaders(headers, map[string]string{"Accept": "application/json"}))
}

// FetchJSON performs a GET request and returns the body of a 2xx response.
func (c *Client) FetchJSON(ctx context.Context, target string, headers map[string]string) ([]byte, error) {
	resp, err := c.GetJSON(ctx, target, headers)
	if err != nil {
		return nil, err
	}

	if err := CheckStatus(resp); err != nil {
		resp.Body.Close()
		return nil, errors.Wrapf(err, "request to %s failed", redact(target))
	}

	return ReadBody(resp)
}

// isRetryableStatus checks if an HTTP status code should trigger a retry.
func isRetryableStatus(resp *http.Response) bool {
	if resp == nil {
		return false
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests, // 429
		http.StatusServiceUnavailable, // 503
		http.StatusGatewayTimeout,     // 504
		http.StatusBadGateway:         // 502
		return true
	default:
		return false
	}
}

func (c *Client) shouldRetry(attempt int, err error, resp *http.Response) bool {
	if attempt >= c.config.MaxRetries {
		return false
	}
	if err != nil {
		return true
	}
	return isRetryableStatus(resp)
}

// backoff sleeps RetryBackoff * 2^attempt, capped at MaxRetryBackoff.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	backoff := c.config.RetryBackoff * time.Duration(math.Pow(2, float64(attempt)))
	if backoff > c.config.MaxRetryBackoff {
		backoff = c.config.MaxRetryBackoff
	}

	c.logger.Debug("Backing off before retry",
		"attempt", attempt+1,
		"backoff_ms", backoff.Milliseconds(),
	)

	timer := time.NewTimer(backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ReadBody reads the response body and closes it.
func ReadBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, errors.New("response is nil")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	return body, nil
}

// DecodeJSON reads and closes the body and unmarshals it into v.
func DecodeJSON(resp *http.Response, v any) error {
	body, err := ReadBody(resp)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.Wrapf(errors.ErrInvalidResponse, "decode: %v", err)
	}
	return nil
}

// CheckStatus validates the HTTP status code and returns an error if it's not successful.
func CheckStatus(resp *http.Response) error {
	if resp == nil {
		return errors.New("response is nil")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return errors.ErrRateLimit
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.ErrUnauthorized
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusBadGateway:
		return errors.ErrServiceUnavailable
	default:
		return errors.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
}

// classify maps transport errors onto the shared sentinels.
func classify(ctx context.Context, err error) error {
	if errors.IsCanceled(err) || errors.Is(ctx.Err(), context.Canceled) {
		return errors.Join(context.Canceled, err)
	}
	if errors.IsTimeout(err) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(errors.ErrTimeout, err)
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return errors.Join(errors.ErrTimeout, err)
	}
	return err
}

func mergeHeaders(user, defaults map[string]string) map[string]string {
	out := make(map[string]string, len(user)+len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range user {
		out[k] = v
	}
	return out
}

// redact drops the query string so keys passed as parameters never hit the log.
func redact(target string) string {
	if i := strings.IndexByte(target, '?'); i >= 0 {
		return target[:i]
	}
	return target
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, max_retries=%d, rate_limit=%.1f/s}",
		c.config.Timeout,
		c.config.MaxRetries,
		c.config.RateLimit,
	)
}
