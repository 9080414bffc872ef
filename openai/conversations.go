// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/microsoft/azure-ai-playground/go/azureai"
)

// Conversation is a server-side conversation holding items across responses.
type Conversation struct {
	ID        string            `json:"id"`
	Object    string            `json:"object"`
	CreatedAt int64             `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type itemList struct {
	Data    []Item `json:"data"`
	HasMore bool   `json:"has_more"`
	FirstID string `json:"first_id"`
	LastID  string `json:"last_id"`
}

// ListItemsOptions controls [Client.ListConversationItems].
type ListItemsOptions struct {
	// Order is "asc" or "desc". The service default is "desc".
	Order string

	// PageSize bounds the items per request.
	PageSize int
}

// CreateConversation creates a conversation seeded with items.
func (c *Client) CreateConversation(ctx context.Context, items ...InputItem) (*Conversation, error) {
	body := struct {
		Items []InputItem `json:"items,omitempty"`
	}{Items: items}

	var conv Conversation
	if _, err := c.core.DoJSON(ctx, &azureai.Request{
		Method: http.MethodPost,
		Path:   "/conversations",
		Body:   body,
	}, &conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return &conv, nil
}

// AddConversationItems appends items to a conversation and returns them as stored.
func (c *Client) AddConversationItems(ctx context.Context, conversationID string, items ...InputItem) ([]Item, error) {
	body := struct {
		Items []InputItem `json:"items"`
	}{Items: items}

	var list itemList
	if _, err := c.core.DoJSON(ctx, &azureai.Request{
		Method: http.MethodPost,
		Path:   "/conversations/" + url.PathEscape(conversationID) + "/items",
		Body:   body,
	}, &list); err != nil {
		return nil, fmt.Errorf("add conversation items: %w", err)
	}
	return list.Data, nil
}

// ListConversationItems returns every item of a conversation, following
// pagination until the service reports no more items.
func (c *Client) ListConversationItems(ctx context.Context, conversationID string, opts *ListItemsOptions) ([]Item, error) {
	q := url.Values{}
	if opts != nil {
		if opts.Order != "" {
			q.Set("order", opts.Order)
		}
		if opts.PageSize > 0 {
			q.Set("limit", strconv.Itoa(opts.PageSize))
		}
	}

	var items []Item
	for {
		var page itemList
		if _, err := c.core.DoJSON(ctx, &azureai.Request{
			Method: http.MethodGet,
			Path:   "/conversations/" + url.PathEscape(conversationID) + "/items",
			Query:  q,
		}, &page); err != nil {
			return nil, fmt.Errorf("list conversation items: %w", err)
		}
		items = append(items, page.Data...)
		if !page.HasMore || page.LastID == "" {
			return items, nil
		}
		q.Set("after", page.LastID)
	}
}

// DeleteConversation deletes a conversation and its items.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	if _, err := c.core.DoJSON(ctx, &azureai.Request{
		Method: http.MethodDelete,
		Path:   "/conversations/" + url.PathEscape(conversationID),
	}, nil); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return nil
}
