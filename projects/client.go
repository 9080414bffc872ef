// Copyright (c) Microsoft. All rights reserved.

package projects

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/openai"
)

// DefaultAPIVersion is the agents API version used unless overridden.
const DefaultAPIVersion = "2025-11-15-preview"

type clientConfig struct {
	apiVersion string
	httpClient *http.Client
	logger     *slog.Logger
	middleware []azureai.Middleware
}

// Option configures a [Client].
type Option func(*clientConfig)

// WithAPIVersion overrides [DefaultAPIVersion].
func WithAPIVersion(v string) Option {
	return func(c *clientConfig) { c.apiVersion = v }
}

// WithHTTPClient provides a custom http.Client for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = hc }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}

// WithMiddleware adds middleware to the request pipeline.
func WithMiddleware(mw ...azureai.Middleware) Option {
	return func(c *clientConfig) { c.middleware = append(c.middleware, mw...) }
}

// Client talks to one Foundry project endpoint, such as
// https://<resource>.services.ai.azure.com/api/projects/<project>.
type Client struct {
	core     *azureai.Client
	endpoint string
	cred     azcore.TokenCredential
	cfg      clientConfig
}

// NewClient creates a [Client] authenticating with cred.
func NewClient(endpoint string, cred azcore.TokenCredential, opts ...Option) *Client {
	cfg := clientConfig{apiVersion: DefaultAPIVersion}
	for _, o := range opts {
		o(&cfg)
	}
	endpoint = strings.TrimRight(endpoint, "/")

	coreOpts := []azureai.ClientOption{
		azureai.WithAPIVersion(cfg.apiVersion),
		azureai.WithLogger(cfg.logger),
		azureai.WithMiddleware(cfg.middleware...),
	}
	if cfg.httpClient != nil {
		coreOpts = append(coreOpts, azureai.WithHTTPClient(cfg.httpClient))
	}

	return &Client{
		core:     azureai.NewClient(endpoint, azureai.NewTokenAuth(cred, azureai.ScopeAIFoundry), coreOpts...),
		endpoint: endpoint,
		cred:     cred,
		cfg:      cfg,
	}
}

// Endpoint returns the project endpoint.
func (c *Client) Endpoint() string { return c.endpoint }

// OpenAIClient returns an [openai.Client] for the project's OpenAI-compatible
// API at {endpoint}/openai. It shares the credential, api-version, HTTP
// client and logger of c; opts are applied last.
func (c *Client) OpenAIClient(opts ...openai.Option) *openai.Client {
	base := []openai.Option{
		openai.WithBaseURL(c.endpoint + "/openai"),
		openai.WithAzureCredential(c.cred),
		openai.WithTokenScope(azureai.ScopeAIFoundry),
		openai.WithAPIVersion(c.cfg.apiVersion),
		openai.WithLogger(c.cfg.logger),
		openai.WithMiddleware(c.cfg.middleware...),
	}
	if c.cfg.httpClient != nil {
		base = append(base, openai.WithHTTPClient(c.cfg.httpClient))
	}
	return openai.New("", append(base, opts...)...)
}
