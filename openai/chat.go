// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/microsoft/azure-ai-playground/go/azureai"
)

// ChatCompletion sends messages to the Chat Completions API. Messages may
// carry images as [azureai.DataContent] or [azureai.URIContent].
func (c *Client) ChatCompletion(ctx context.Context, messages []azureai.Message, opts *ChatOptions) (*ChatResponse, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("%w: no messages", azureai.ErrInvalidRequest)
	}
	var model string
	if opts != nil {
		model = opts.Model
	}
	model = c.resolveModel(model)

	body := buildChatRequest(messages, opts, model)
	var raw chatCompletionResponse
	if _, err := c.core.DoJSON(ctx, &azureai.Request{
		Method: http.MethodPost,
		Path:   c.modelPath(model, "/chat/completions"),
		Body:   body,
	}, &raw); err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	return parseChatResponse(&raw), nil
}
