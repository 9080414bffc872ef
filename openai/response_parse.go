// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"github.com/microsoft/azure-ai-playground/go/azureai"
)

// chatCompletionResponse is the Chat Completions response body.
type chatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   *usage   `json:"usage,omitempty"`
}

type choice struct {
	Index        int         `json:"index"`
	Message      respMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type respMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
	Refusal *string `json:"refusal"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// FinishReason explains why the model stopped generating.
type FinishReason string

const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonContentFilter FinishReason = "content_filter"
)

// ChatResponse is the result of [Client.ChatCompletion].
type ChatResponse struct {
	ResponseID   string
	ModelID      string
	Messages     []azureai.Message
	FinishReason FinishReason
	Usage        azureai.UsageDetails
}

// Text returns the text of the first choice.
func (r *ChatResponse) Text() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0].Text()
}

func parseChatResponse(raw *chatCompletionResponse) *ChatResponse {
	resp := &ChatResponse{
		ResponseID: raw.ID,
		ModelID:    raw.Model,
	}
	if raw.Usage != nil {
		resp.Usage = azureai.UsageDetails{
			InputTokens:  raw.Usage.PromptTokens,
			OutputTokens: raw.Usage.CompletionTokens,
			TotalTokens:  raw.Usage.TotalTokens,
		}
	}

	for i, c := range raw.Choices {
		if i == 0 {
			resp.FinishReason = FinishReason(c.FinishReason)
		}
		msg := azureai.Message{Role: azureai.Role(c.Message.Role)}
		if c.Message.Content != nil && *c.Message.Content != "" {
			msg.Contents = append(msg.Contents, &azureai.TextContent{Text: *c.Message.Content})
		}
		if c.Message.Refusal != nil && *c.Message.Refusal != "" {
			msg.Contents = append(msg.Contents, &azureai.ErrorContent{Message: *c.Message.Refusal, ErrorCode: "refusal"})
		}
		resp.Messages = append(resp.Messages, msg)
	}
	return resp
}
