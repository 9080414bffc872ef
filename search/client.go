// Copyright (c) Microsoft. All rights reserved.

// Package search queries an Azure AI Search index.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/microsoft/azure-ai-playground/go/azureai"
)

// APIVersion is the Azure AI Search data plane API version.
const APIVersion = "2023-11-01"

// Client queries one index.
type Client struct {
	core  *azureai.Client
	index string
}

// NewClient creates a [Client] for index on the search service at endpoint,
// authenticated with a query or admin key.
func NewClient(endpoint, index, key string, opts ...azureai.ClientOption) *Client {
	opts = append([]azureai.ClientOption{azureai.WithAPIVersion(APIVersion)}, opts...)
	return &Client{
		core:  azureai.NewClient(endpoint, azureai.KeyAuth(azureai.HeaderAPIKey, key), opts...),
		index: index,
	}
}

// Index returns the index name.
func (c *Client) Index() string { return c.index }

// Options describes a query. Only Search is required.
type Options struct {
	Search            string
	Select            []string
	OrderBy           []string
	Filter            string
	Top               int
	IncludeTotalCount bool

	// MaxPages bounds how many result pages are fetched. Zero fetches all.
	MaxPages int
}

type searchRequest struct {
	Search  string `json:"search"`
	Select  string `json:"select,omitempty"`
	OrderBy string `json:"orderby,omitempty"`
	Filter  string `json:"filter,omitempty"`
	Top     int    `json:"top,omitempty"`
	Count   bool   `json:"count,omitempty"`
}

type searchPage struct {
	Count              *int64          `json:"@odata.count"`
	Value              []Document      `json:"value"`
	NextPageParameters json.RawMessage `json:"@search.nextPageParameters"`
}

// Results holds the documents matched by a query.
type Results struct {
	// Count is the total number of matches, when requested.
	Count     *int64
	Documents []Document
}

// Search runs the query and collects every page of results.
func (c *Client) Search(ctx context.Context, opts *Options) (*Results, error) {
	if opts == nil {
		return nil, fmt.Errorf("%w: no search options", azureai.ErrInvalidRequest)
	}
	var body any = searchRequest{
		Search:  opts.Search,
		Select:  strings.Join(opts.Select, ","),
		OrderBy: strings.Join(opts.OrderBy, ","),
		Filter:  opts.Filter,
		Top:     opts.Top,
		Count:   opts.IncludeTotalCount,
	}

	res := &Results{}
	for page := 1; ; page++ {
		var p searchPage
		if _, err := c.core.DoJSON(ctx, &azureai.Request{
			Method: http.MethodPost,
			Path:   "/indexes('" + c.index + "')/docs/search.post.search",
			Body:   body,
		}, &p); err != nil {
			return nil, fmt.Errorf("search %s: %w", c.index, err)
		}
		if res.Count == nil {
			res.Count = p.Count
		}
		res.Documents = append(res.Documents, p.Value...)

		if len(p.NextPageParameters) == 0 || string(p.NextPageParameters) == "null" {
			return res, nil
		}
		if opts.MaxPages > 0 && page >= opts.MaxPages {
			return res, nil
		}
		body = p.NextPageParameters
	}
}
