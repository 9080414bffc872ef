// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"net/http"
	"net/url"

	"github.com/microsoft/azure-ai-playground/go/azureai"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client calls the OpenAI-compatible API of an OpenAI, Azure OpenAI, or
// Azure AI Foundry project endpoint. Use [New] to create one.
type Client struct {
	core        *azureai.Client
	model       string
	deployments bool
}

// New creates an OpenAI [Client] with the given API key and options.
// Pass an empty key together with [WithAzureCredential] for Entra ID auth.
//
//	client := openai.New("",
//	    openai.WithBaseURL(endpoint+"/openai"),
//	    openai.WithAPIVersion("2024-10-21"),
//	    openai.WithAzureCredential(cred),
//	)
func New(apiKey string, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.baseURL == "" {
		cfg.baseURL = defaultBaseURL
	}

	var auth azureai.Auth
	switch {
	case cfg.azureCredential != nil:
		scope := cfg.tokenScope
		if scope == "" {
			scope = azureai.ScopeCognitiveServices
		}
		auth = azureai.NewTokenAuth(cfg.azureCredential, scope)
	case cfg.azureKeyHeader:
		auth = azureai.KeyAuth(azureai.HeaderAPIKey, apiKey)
	case apiKey != "":
		auth = azureai.BearerKeyAuth(apiKey)
	}

	headers := map[string]string{}
	for k, v := range cfg.headers {
		headers[k] = v
	}
	if cfg.organization != "" {
		headers["OpenAI-Organization"] = cfg.organization
	}

	coreOpts := []azureai.ClientOption{
		azureai.WithHeaders(headers),
		azureai.WithAPIVersion(cfg.apiVersion),
		azureai.WithMiddleware(cfg.middleware...),
		azureai.WithLogger(cfg.logger),
	}
	if cfg.httpClient != nil {
		coreOpts = append(coreOpts, azureai.WithHTTPClient(cfg.httpClient))
	}

	return &Client{
		core:        azureai.NewClient(cfg.baseURL, auth, coreOpts...),
		model:       cfg.model,
		deployments: cfg.azureDeployments,
	}
}

// Model returns the default model or deployment name.
func (c *Client) Model() string { return c.model }

// HTTPClient returns the http.Client used for API calls.
func (c *Client) HTTPClient() *http.Client { return c.core.HTTPClient() }

// modelPath prefixes path with the deployment segment when deployment
// routing is enabled.
func (c *Client) modelPath(model, path string) string {
	if c.deployments && model != "" {
		return "/deployments/" + url.PathEscape(model) + path
	}
	return path
}

func (c *Client) resolveModel(model string) string {
	if model != "" {
		return model
	}
	return c.model
}
