// Package api provides the gptme server API client implementation.
package api

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/rs/zerolog"

	"github.com/diogo/gptmecli/internal/config"
	apierrors "github.com/diogo/gptmecli/internal/errors"
	"github.com/diogo/gptmecli/internal/models"
)

// Client is the main client for interacting with a gptme server
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
	token      string
	model      string
	timeout    time.Duration
	logger     zerolog.Logger

	mu     sync.RWMutex
	closed bool

	// serverMessage is the greeting returned by the health endpoint,
	// populated by Init.
	serverMessage string
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithModel sets the default model sent with generate requests
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithToken sets the bearer token for servers running with auth enabled
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the upper bound on total request duration
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for client diagnostics
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// defaultLogger reports diagnostics on stderr without drowning out CLI output
func defaultLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()
}

// NewClient creates a new Client for the server at baseURL.
// An empty baseURL falls back to the local development default.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		baseURL = models.DefaultBaseURL
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: models.DefaultTimeoutSeconds * time.Second,
		logger:  defaultLogger(),
	}

	// Apply options before building the transport so the timeout takes effect
	for _, opt := range opts {
		opt(client)
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(client.timeout.Seconds())),
		tls_client.WithNotFollowRedirects(),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	client.httpClient = httpClient

	return client, nil
}

// NewClientFromConfig creates a Client from a loaded configuration
func NewClientFromConfig(cfg config.Config, opts ...ClientOption) (*Client, error) {
	base := []ClientOption{
		WithToken(cfg.Token),
		WithModel(cfg.DefaultModel),
		WithTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second),
	}
	return NewClient(cfg.ServerURL, append(base, opts...)...)
}

// Init verifies the server is reachable by performing a health check
func (c *Client) Init() error {
	if c.IsClosed() {
		return apierrors.ErrClientClosed
	}

	status, err := c.Health()
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.serverMessage = status.Message
	c.mu.Unlock()

	c.logger.Debug().Str("server", c.baseURL).Str("message", status.Message).
		Msg("connected to gptme server")
	return nil
}

// Close shuts down the client
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// BaseURL returns the server base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetModel returns the default model
func (c *Client) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel sets the default model
func (c *Client) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// ServerMessage returns the greeting captured by Init, if any
func (c *Client) ServerMessage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverMessage
}
