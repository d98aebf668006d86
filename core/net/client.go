// Package net provides the HTTP client used to talk to friendbot endpoints.
//
// The Client offers a configurable timeout, retry count and exponential backoff.
// Retries default to zero: a failed request surfaces immediately and retry
// policy is left to the caller.
//
// Example usage:
//
//	client := net.NewClient(
//	    net.WithTimeout(20*time.Second),
//	    net.WithMaxRetries(2),
//	)
//	resp, err := client.Get(ctx, "https://friendbot.stellar.org/?addr=G...")
package net

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/marwen-abid/stellar-identity-go/errors"
)

// Default configuration values
const (
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 0
	defaultBackoff     = 1 * time.Second
	defaultMaxBodySize = 1024 * 1024
)

// Client is an HTTP client with timeout and optional retry.
type Client struct {
	httpClient   *http.Client
	maxRetries   int
	retryBackoff time.Duration
	maxBodySize  int64
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout (default: 30s).
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithMaxRetries sets the maximum number of retry attempts (default: 0).
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithRetryBackoff sets the base duration for exponential backoff (default: 1s).
func WithRetryBackoff(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryBackoff = d
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// WithMaxBodySize caps how many response bytes Get reads (default: 1 MiB).
func WithMaxBodySize(n int64) ClientOption {
	return func(c *Client) {
		c.maxBodySize = n
	}
}

// NewClient creates a new HTTP client with the given options.
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		maxRetries:   defaultMaxRetries,
		retryBackoff: defaultBackoff,
		maxBodySize:  defaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Get performs an HTTP GET request and reads the whole body. Transport failures
// and 5xx responses are retried up to the configured limit; 4xx responses are
// returned to the caller as-is.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewFundingError(errors.NETWORK_ERROR, "failed to create GET request", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

// do executes the request with retry logic.
func (c *Client) do(req *http.Request) (*Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		select {
		case <-req.Context().Done():
			return nil, errors.NewFundingError(errors.NETWORK_ERROR, "request cancelled", req.Context().Err())
		default:
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.maxRetries {
				c.backoff(attempt)
				continue
			}
			return nil, errors.NewFundingError(
				errors.NETWORK_ERROR,
				fmt.Sprintf("request failed after %d attempts", attempt+1),
				err,
			).With("url", req.URL.String())
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
		resp.Body.Close()
		if err != nil {
			return nil, errors.NewFundingError(errors.NETWORK_ERROR, "failed to read response body", err)
		}

		if resp.StatusCode >= 500 && attempt < c.maxRetries {
			lastErr = fmt.Errorf("server error: %s", resp.Status)
			c.backoff(attempt)
			continue
		}

		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		}, nil
	}

	// Should not reach here
	return nil, errors.NewFundingError(errors.NETWORK_ERROR, "unexpected retry exhaustion", lastErr)
}

// backoff implements exponential backoff with the formula: backoff * 2^attempt
func (c *Client) backoff(attempt int) {
	duration := c.retryBackoff * (1 << uint(attempt))
	time.Sleep(duration)
}
