package coingecko_common

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/status-im/coin-tracker/interfaces"
)

//go:generate mockgen -destination=mocks/rate_limiter.go . IRateLimiter

// IHttpStatusHandler receives per-request outcomes
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnLatency handles the duration of a completed round trip
	OnLatency(d time.Duration)
}

// IRateLimiter throttles outgoing requests; *rate.Limiter implements it
type IRateLimiter interface {
	Wait(ctx context.Context) error
}

// Request status labels
const (
	StatusSuccess      = "success"
	StatusUnauthorized = "unauthorized"
	StatusRateLimited  = "rate_limited"
	StatusServerError  = "server_error"
	StatusNetwork      = "network"
	StatusError        = "error"
)

const maxResponseBytes = 16 << 20

// ClientOptions configures the HTTP client
type ClientOptions struct {
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		LogPrefix:         "HTTP",
		ConnectionTimeout: 5 * time.Second,
		RequestTimeout:    10 * time.Second,
	}
}

// HTTPClient performs single-attempt requests. Retrying is left to the caller.
type HTTPClient struct {
	Client        *http.Client
	Opts          ClientOptions
	StatusHandler IHttpStatusHandler
	Limiter       IRateLimiter
}

// NewHTTPClient creates a new HTTP client
func NewHTTPClient(opts ClientOptions, handler IHttpStatusHandler, limiter IRateLimiter) *HTTPClient {
	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClient{
		Client:        client,
		Opts:          opts,
		StatusHandler: handler,
		Limiter:       limiter,
	}
}

// ExecuteRequest sends req once and returns the body of a 200 response.
// Every error is an *interfaces.FetchError.
func (c *HTTPClient) ExecuteRequest(req *http.Request) ([]byte, time.Duration, error) {
	if c.Limiter != nil {
		waitStart := time.Now()
		if err := c.Limiter.Wait(req.Context()); err != nil {
			c.onRequest(StatusError)
			return nil, 0, interfaces.NewTransportError(fmt.Errorf("rate limiter wait failed: %w", err))
		}
		if waited := time.Since(waitStart); waited > time.Second {
			log.Printf("%s: waited %.2fs for rate limiter", c.Opts.LogPrefix, waited.Seconds())
		}
	}

	requestStart := time.Now()
	resp, err := c.Client.Do(req)
	requestDuration := time.Since(requestStart)
	if err != nil {
		fetchErr := interfaces.NewTransportError(err)
		if fetchErr.Kind == interfaces.ErrorKindNetwork {
			c.onRequest(StatusNetwork)
		} else {
			c.onRequest(StatusError)
		}
		log.Printf("%s: request to %s failed after %.2fs: %v", c.Opts.LogPrefix, req.URL.Path, requestDuration.Seconds(), err)
		return nil, requestDuration, fetchErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	requestDuration = time.Since(requestStart)
	if c.StatusHandler != nil {
		c.StatusHandler.OnLatency(requestDuration)
	}
	if err != nil {
		c.onRequest(StatusNetwork)
		return nil, requestDuration, interfaces.NewTransportError(fmt.Errorf("error reading response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		c.onRequest(statusLabel(resp.StatusCode))
		log.Printf("%s: %s returned status %d after %.2fs", c.Opts.LogPrefix, req.URL.Path, resp.StatusCode, requestDuration.Seconds())
		return nil, requestDuration, interfaces.NewStatusError(resp.StatusCode, truncate(string(body), 256))
	}

	c.onRequest(StatusSuccess)
	return body, requestDuration, nil
}

func (c *HTTPClient) onRequest(status string) {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRequest(status)
	}
}

func statusLabel(statusCode int) string {
	switch {
	case statusCode == http.StatusUnauthorized:
		return StatusUnauthorized
	case statusCode == http.StatusTooManyRequests:
		return StatusRateLimited
	case statusCode >= http.StatusInternalServerError:
		return StatusServerError
	default:
		return StatusError
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
