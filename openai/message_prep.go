// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"github.com/microsoft/azure-ai-playground/go/azureai"
)

// chatRequest is the Chat Completions request body.
type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
	User        string        `json:"user,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string or []contentPart
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// ChatOptions tunes a single chat completion call. All fields are optional.
type ChatOptions struct {
	// Model overrides the client's default model or deployment.
	Model       string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
	Stop        []string
	User        string

	// ImageDetail sets the detail level ("low", "high", "auto") for image parts.
	ImageDetail string
}

func buildChatRequest(messages []azureai.Message, opts *ChatOptions, model string) *chatRequest {
	req := &chatRequest{Model: model}
	var detail string
	if opts != nil {
		req.Temperature = opts.Temperature
		req.TopP = opts.TopP
		req.MaxTokens = opts.MaxTokens
		req.Stop = opts.Stop
		req.User = opts.User
		detail = opts.ImageDetail
	}
	req.Messages = convertMessages(messages, detail)
	return req
}

// convertMessages maps messages to the wire format. A message holding only
// text is sent as a plain string; anything with images becomes a part list.
func convertMessages(messages []azureai.Message, detail string) []chatMessage {
	out := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		cm := chatMessage{Role: string(m.Role)}
		if textOnly(m.Contents) {
			cm.Content = m.Text()
		} else {
			cm.Content = convertContentParts(m.Contents, detail)
		}
		out = append(out, cm)
	}
	return out
}

func textOnly(contents azureai.Contents) bool {
	for _, c := range contents {
		if _, ok := c.(*azureai.TextContent); !ok {
			return false
		}
	}
	return true
}

func convertContentParts(contents azureai.Contents, detail string) []contentPart {
	parts := make([]contentPart, 0, len(contents))
	for _, c := range contents {
		switch v := c.(type) {
		case *azureai.TextContent:
			parts = append(parts, contentPart{Type: "text", Text: v.Text})
		case *azureai.DataContent:
			parts = append(parts, contentPart{Type: "image_url", ImageURL: &imageURL{URL: v.URI, Detail: detail}})
		case *azureai.URIContent:
			parts = append(parts, contentPart{Type: "image_url", ImageURL: &imageURL{URL: v.URI, Detail: detail}})
		}
	}
	return parts
}
