// Copyright (c) Microsoft. All rights reserved.

// Package docintel calls Azure AI Document Intelligence to analyze documents
// with prebuilt or custom models.
package docintel

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/microsoft/azure-ai-playground/go/azureai"
)

// APIVersion is the Document Intelligence API version.
const APIVersion = "2023-07-31"

// Client analyzes documents on one Document Intelligence resource.
type Client struct {
	core *azureai.Client
}

// NewClient creates a [Client] authenticated with the resource key.
func NewClient(endpoint, key string, opts ...azureai.ClientOption) *Client {
	opts = append([]azureai.ClientOption{azureai.WithAPIVersion(APIVersion)}, opts...)
	return &Client{
		core: azureai.NewClient(endpoint, azureai.KeyAuth(azureai.HeaderSubscriptionKey, key), opts...),
	}
}

// AnalyzeOptions tunes an analyze request.
type AnalyzeOptions struct {
	// Locale hints the document language, e.g. "en-US".
	Locale string

	// Pages selects pages to analyze, e.g. "1-3,5".
	Pages string

	Poller *azureai.PollerOptions
}

// AnalyzeOperation is the status body of an analyze operation.
type AnalyzeOperation struct {
	Status              azureai.OperationStatus `json:"status"`
	CreatedDateTime     string                  `json:"createdDateTime"`
	LastUpdatedDateTime string                  `json:"lastUpdatedDateTime"`
	AnalyzeResult       *AnalyzeResult          `json:"analyzeResult"`
}

// BeginAnalyzeDocumentFromURL starts analysis of the document at documentURL
// with the given model, e.g. "prebuilt-invoice".
func (c *Client) BeginAnalyzeDocumentFromURL(ctx context.Context, modelID, documentURL string, opts *AnalyzeOptions) (*azureai.Poller[AnalyzeOperation], error) {
	if opts == nil {
		opts = &AnalyzeOptions{}
	}
	q := url.Values{}
	if opts.Locale != "" {
		q.Set("locale", opts.Locale)
	}
	if opts.Pages != "" {
		q.Set("pages", opts.Pages)
	}

	resp, err := c.core.Do(ctx, &azureai.Request{
		Method: http.MethodPost,
		Path:   "/formrecognizer/documentModels/" + url.PathEscape(modelID) + ":analyze",
		Query:  q,
		Body:   map[string]string{"urlSource": documentURL},
	})
	if err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}
	p, err := azureai.NewPoller[AnalyzeOperation](c.core, resp, opts.Poller)
	if err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}
	return p, nil
}
