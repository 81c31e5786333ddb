package supplier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/logger"
	"github.com/supplyline/catsync/internal/metrics"
)

// requestOptions controls authentication for a single request.
type requestOptions struct {
	skipAuth      bool
	requireAPIKey bool
}

// Client is a rate-limited, retrying wrapper over the supplier's catalogue
// and order API. Safe for concurrent use.
type Client struct {
	http    *resty.Client
	limiter *RateLimiter
	region  string

	mu    sync.RWMutex
	creds Credentials

	// Injectable backoff sleep, replaced in tests.
	sleep func(time.Duration)
}

// NewClient builds a client against baseURL. rateLimit is the per-second
// request quota (0 disables throttling).
func NewClient(baseURL, region string, timeout time.Duration, rateLimit int) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "catsync/1.0")

	return &Client{
		http:    http,
		limiter: NewRateLimiter(rateLimit),
		region:  region,
		sleep:   time.Sleep,
	}
}

// SetCredentials installs the bearer token and customer key used by
// authenticated requests.
func (c *Client) SetCredentials(creds Credentials) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = creds
}

func (c *Client) credentials() Credentials {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds
}

// CustomerKey returns the shared customer key from the current credentials.
// Webhook authentication compares inbound keys against this value.
func (c *Client) CustomerKey() string {
	return c.credentials().CustomerKey
}

// Request performs one supplier API call with the standing retry policy:
// up to MaxAttempts attempts, immediate retry on transport failures,
// exponential backoff (2^attempt seconds) on 429/500/502/503, immediate
// classified failure on any other non-2xx status.
//
// The returned bytes are the raw response body of the first 2xx response.
func (c *Client) Request(ctx context.Context, method, endpoint string, body interface{}, opts ...func(*requestOptions)) ([]byte, error) {
	options := requestOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	headers := map[string]string{HeaderRegionCode: c.region}

	creds := c.credentials()
	if !options.skipAuth {
		if creds.Token == "" {
			return nil, fmt.Errorf("%w: bearer token not configured", domain.ErrAuth)
		}
		headers[HeaderAuthorization] = "Bearer " + creds.Token
	}
	if options.requireAPIKey {
		if creds.CustomerKey == "" {
			return nil, fmt.Errorf("%w: customer key not configured", domain.ErrAuth)
		}
		headers[HeaderAPIKey] = creds.CustomerKey
	}

	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		c.limiter.Wait()

		req := c.http.R().SetContext(ctx).SetHeaders(headers)
		if body != nil {
			req.SetBody(body)
		}

		resp, err := req.Execute(method, endpoint)
		if err != nil {
			// Transport-level failure: retry immediately up to the cap.
			lastErr = fmt.Errorf("%w: %v", domain.ErrNetwork, err)
			log.Error(LogMsgRequestFailed, "endpoint", endpoint, "attempt", attempt, "error", err.Error())
			metrics.SupplierRetries.WithLabelValues(endpoint).Inc()
			continue
		}

		status := resp.StatusCode()
		if resp.IsSuccess() {
			log.Debug(LogMsgRequestSuccess, "endpoint", endpoint, "status", status)
			metrics.SupplierRequests.WithLabelValues(endpoint, "success").Inc()
			return resp.Body(), nil
		}

		if retryableStatus(status) && attempt < MaxAttempts {
			log.Warn(LogMsgRetrying, "endpoint", endpoint, "status", status, "attempt", attempt)
			metrics.SupplierRetries.WithLabelValues(endpoint).Inc()
			c.backoff(attempt)
			continue
		}

		apiErr := newAPIError(status, extractMessage(resp.Body()))
		log.Error(LogMsgRequestFailed, "endpoint", endpoint, "status", status, "message", apiErr.Message)
		metrics.SupplierRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, apiErr
	}

	metrics.SupplierRequests.WithLabelValues(endpoint, "error").Inc()
	return nil, lastErr
}

func retryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503:
		return true
	}
	return false
}

// backoff sleeps 2^attempt seconds between retryable failures.
func (c *Client) backoff(attempt int) {
	c.sleep(time.Duration(1<<uint(attempt)) * time.Second)
}

// extractMessage pulls the server-supplied message out of an error body.
func extractMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}

// withSkipAuth marks a request as unauthenticated (login only).
func withSkipAuth() func(*requestOptions) {
	return func(o *requestOptions) { o.skipAuth = true }
}

// WithAPIKey requires the customer key header on the request.
func WithAPIKey() func(*requestOptions) {
	return func(o *requestOptions) { o.requireAPIKey = true }
}
