// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"log/slog"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/microsoft/azure-ai-playground/go/azureai"
)

// clientConfig holds resolved configuration for the OpenAI client.
type clientConfig struct {
	baseURL          string
	organization     string
	httpClient       *http.Client
	headers          map[string]string
	model            string
	apiVersion       string
	azureCredential  azcore.TokenCredential
	tokenScope       string
	azureKeyHeader   bool
	azureDeployments bool
	middleware       []azureai.Middleware
	logger           *slog.Logger
}

// Option configures an OpenAI [Client].
type Option func(*clientConfig)

// WithBaseURL overrides the API base URL (e.g., for Azure OpenAI or proxies).
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = url }
}

// WithOrganization sets the OpenAI organization header.
func WithOrganization(org string) Option {
	return func(c *clientConfig) { c.organization = org }
}

// WithHTTPClient provides a custom http.Client for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = client }
}

// WithHeaders adds custom headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *clientConfig) { c.headers = headers }
}

// WithModel sets the default model (or Azure deployment name) for requests.
func WithModel(model string) Option {
	return func(c *clientConfig) { c.model = model }
}

// WithAPIVersion adds the api-version query parameter Azure endpoints require.
func WithAPIVersion(version string) Option {
	return func(c *clientConfig) { c.apiVersion = version }
}

// WithAzureCredential enables Microsoft Entra ID token authentication using the
// provided credential. When set, the API key is ignored.
func WithAzureCredential(cred azcore.TokenCredential) Option {
	return func(c *clientConfig) { c.azureCredential = cred }
}

// WithTokenScope overrides the token scope used with [WithAzureCredential].
// The default is the Cognitive Services scope.
func WithTokenScope(scope string) Option {
	return func(c *clientConfig) { c.tokenScope = scope }
}

// WithAzureKeyHeader sends the API key in the api-key header used by Azure
// OpenAI resources instead of as a bearer token.
func WithAzureKeyHeader() Option {
	return func(c *clientConfig) { c.azureKeyHeader = true }
}

// WithAzureDeployments routes model-bound calls (chat, images) through
// /deployments/{model}, as classic Azure OpenAI endpoints expect.
func WithAzureDeployments() Option {
	return func(c *clientConfig) { c.azureDeployments = true }
}

// WithMiddleware adds middleware to the HTTP pipeline.
// Middleware is applied in the order provided (first = outermost).
func WithMiddleware(mw ...azureai.Middleware) Option {
	return func(c *clientConfig) { c.middleware = append(c.middleware, mw...) }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}
