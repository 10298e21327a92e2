// File: internal/fetch/httpclient.go
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/http2"

	"github.com/dverbeek84/limelight-cli/internal/observability"
)

// Constants for default TCP/HTTP settings. The tuning here is modest: the
// fetcher issues one rate-limited request at a time, so we need reliability,
// not a large connection pool.
const (
	DefaultTLSHandshakeTimeout   = 5 * time.Second
	DefaultResponseHeaderTimeout = 10 * time.Second
	DefaultRequestTimeout        = 15 * time.Second

	DefaultMaxIdleConns    = 10
	DefaultIdleConnTimeout = 30 * time.Second
)

// HTTPClient defines a standardized interface for making HTTP requests.
// Collectors and the fetcher depend on this, not on a concrete client,
// which keeps tests off the network.
type HTTPClient interface {
	Get(ctx context.Context, url string) (body []byte, statusCode int, err error)
}

// ClientConfig holds the configuration for the HTTP client and transport layers.
type ClientConfig struct {
	UserAgent       string
	IgnoreTLSErrors bool

	RequestTimeout        time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration

	MaxIdleConns    int
	IdleConnTimeout time.Duration

	ForceHTTP2 bool

	Logger *zap.Logger
}

// NewDefaultClientConfig creates a configuration suitable for polite scraping.
func NewDefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		RequestTimeout:        DefaultRequestTimeout,
		TLSHandshakeTimeout:   DefaultTLSHandshakeTimeout,
		ResponseHeaderTimeout: DefaultResponseHeaderTimeout,
		MaxIdleConns:          DefaultMaxIdleConns,
		IdleConnTimeout:       DefaultIdleConnTimeout,
		ForceHTTP2:            true,
		Logger:                observability.GetLogger().Named("httpclient"),
	}
}

// Client is a wrapper around the standard http.Client that implements
// HTTPClient. It is safe for concurrent use, follows redirects (profile
// slugs frequently redirect to their canonical form), and stamps every
// request with the configured User-Agent.
type Client struct {
	*http.Client

	userAgent string
}

// NewClient creates a client using the configured transport.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = NewDefaultClientConfig()
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ClientSessionCache: tls.NewLRUClientSessionCache(64),
		InsecureSkipVerify: config.IgnoreTLSErrors,
	}

	transport := &http.Transport{
		TLSClientConfig:       tlsConfig,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ResponseHeaderTimeout: config.ResponseHeaderTimeout,
		MaxIdleConns:          config.MaxIdleConns,
		IdleConnTimeout:       config.IdleConnTimeout,
		ForceAttemptHTTP2:     config.ForceHTTP2,
	}

	if config.ForceHTTP2 {
		// http2.ConfigureTransport modifies the transport in place to add HTTP/2 support.
		if err := http2.ConfigureTransport(transport); err != nil {
			config.Logger.Warn("Failed to configure HTTP/2 transport, falling back to HTTP/1.1", zap.Error(err))
		}
	}

	return &Client{
		Client: &http.Client{
			Transport: transport,
			Timeout:   config.RequestTimeout,
		},
		userAgent: config.UserAgent,
	}
}

// Get performs a GET request and returns the full response body and status
// code. Transport failures come back as a *Error with KindNetwork; non-2xx
// statuses are reported through the status code, classification is the
// fetcher's job.
func (c *Client) Get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, 0, &Error{Kind: KindNetwork, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &Error{Kind: KindNetwork, URL: url, Err: err}
	}
	return body, resp.StatusCode, nil
}
