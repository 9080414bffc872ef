// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/microsoft/azure-ai-playground/go/azureai"
)

// Output item types returned by the Responses API.
const (
	ItemTypeMessage             = "message"
	ItemTypeCodeInterpreterCall = "code_interpreter_call"
	ItemTypeMCPCall             = "mcp_call"
	ItemTypeMCPListTools        = "mcp_list_tools"
	ItemTypeMCPApprovalRequest  = "mcp_approval_request"
	ItemTypeMCPApprovalResponse = "mcp_approval_response"
)

// AgentReference binds a response to a server-side agent.
type AgentReference struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Version string `json:"version,omitempty"`
}

// NewAgentReference references agent name, optionally pinned to a version.
func NewAgentReference(name, version string) *AgentReference {
	return &AgentReference{Name: name, Type: "agent_reference", Version: version}
}

// InputItem is one entry of a response or conversation input list.
type InputItem struct {
	Type    string `json:"type"`
	Role    string `json:"role,omitempty"`
	Content any    `json:"content,omitempty"`

	ApprovalRequestID string `json:"approval_request_id,omitempty"`
	Approve           *bool  `json:"approve,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

// NewUserInput creates a user message item.
func NewUserInput(text string) InputItem {
	return InputItem{Type: ItemTypeMessage, Role: string(azureai.RoleUser), Content: text}
}

// NewMCPApprovalResponse creates an item answering an MCP approval request.
func NewMCPApprovalResponse(resp *azureai.ApprovalResponseContent) InputItem {
	approve := resp.Approved
	return InputItem{
		Type:              ItemTypeMCPApprovalResponse,
		ApprovalRequestID: resp.RequestID,
		Approve:           &approve,
		Reason:            resp.Reason,
	}
}

// ResponseRequest is the body of [Client.CreateResponse].
type ResponseRequest struct {
	// Model may be empty when Agent is set.
	Model string `json:"model,omitempty"`

	// Input is a string or a []InputItem.
	Input any `json:"input,omitempty"`

	Instructions       string            `json:"instructions,omitempty"`
	Conversation       string            `json:"conversation,omitempty"`
	PreviousResponseID string            `json:"previous_response_id,omitempty"`
	Agent              *AgentReference   `json:"agent,omitempty"`
	Store              *bool             `json:"store,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

// ResponseStatus is the lifecycle state of a response.
type ResponseStatus string

const (
	ResponseCompleted  ResponseStatus = "completed"
	ResponseFailed     ResponseStatus = "failed"
	ResponseIncomplete ResponseStatus = "incomplete"
	ResponseInProgress ResponseStatus = "in_progress"
)

// ResponseError is the error object of a failed response.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ResponseError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// ItemContent is one part of a message item.
type ItemContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Item is an output item of a response or an item of a conversation.
// Which fields are set depends on Type.
type Item struct {
	Type    string        `json:"type"`
	ID      string        `json:"id"`
	Status  string        `json:"status,omitempty"`
	Role    string        `json:"role,omitempty"`
	Content []ItemContent `json:"content,omitempty"`

	// MCP fields.
	ServerLabel string `json:"server_label,omitempty"`
	Name        string `json:"name,omitempty"`
	Arguments   string `json:"arguments,omitempty"`
	Output      string `json:"output,omitempty"`

	// Code interpreter fields.
	Code        string `json:"code,omitempty"`
	ContainerID string `json:"container_id,omitempty"`
}

// Text concatenates the text parts of a message item.
func (it *Item) Text() string {
	var b strings.Builder
	for _, c := range it.Content {
		switch c.Type {
		case "output_text", "input_text", "text":
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

// Contents maps the item to framework content values.
func (it *Item) Contents() azureai.Contents {
	switch it.Type {
	case ItemTypeMessage:
		if t := it.Text(); t != "" {
			return azureai.Contents{&azureai.TextContent{Text: t}}
		}
	case ItemTypeMCPApprovalRequest:
		return azureai.Contents{&azureai.ApprovalRequestContent{
			RequestID:   it.ID,
			ServerLabel: it.ServerLabel,
			Name:        it.Name,
			Arguments:   it.Arguments,
		}}
	case ItemTypeMCPCall:
		return azureai.Contents{&azureai.MCPServerCallContent{
			CallID:      it.ID,
			ServerLabel: it.ServerLabel,
			Name:        it.Name,
			Arguments:   it.Arguments,
			Output:      it.Output,
		}}
	case ItemTypeCodeInterpreterCall:
		return azureai.Contents{&azureai.CodeInterpreterCallContent{
			CallID: it.ID,
			Code:   it.Code,
			Status: it.Status,
		}}
	}
	return nil
}

type responseUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Response is a Responses API result.
type Response struct {
	ID        string         `json:"id"`
	Object    string         `json:"object"`
	CreatedAt int64          `json:"created_at"`
	Status    ResponseStatus `json:"status"`
	Error     *ResponseError `json:"error"`
	Model     string         `json:"model"`
	Output    []Item         `json:"output"`
	Usage     *responseUsage `json:"usage"`
}

// OutputText concatenates the text of every message item in the output.
func (r *Response) OutputText() string {
	var b strings.Builder
	for i := range r.Output {
		if r.Output[i].Type == ItemTypeMessage {
			b.WriteString(r.Output[i].Text())
		}
	}
	return b.String()
}

// Contents flattens all output items into framework content values.
func (r *Response) Contents() azureai.Contents {
	var out azureai.Contents
	for i := range r.Output {
		out = append(out, r.Output[i].Contents()...)
	}
	return out
}

// MCPApprovalRequests returns the pending MCP tool approval requests.
func (r *Response) MCPApprovalRequests() []*azureai.ApprovalRequestContent {
	var out []*azureai.ApprovalRequestContent
	for _, c := range r.Contents() {
		if req, ok := c.(*azureai.ApprovalRequestContent); ok {
			out = append(out, req)
		}
	}
	return out
}

// UsageDetails reports token consumption, if the service returned it.
func (r *Response) UsageDetails() azureai.UsageDetails {
	if r.Usage == nil {
		return azureai.UsageDetails{}
	}
	return azureai.UsageDetails{
		InputTokens:  r.Usage.InputTokens,
		OutputTokens: r.Usage.OutputTokens,
		TotalTokens:  r.Usage.TotalTokens,
	}
}

// CreateResponse calls the Responses API. A response whose status is failed
// is returned together with an error wrapping [azureai.ErrService].
func (c *Client) CreateResponse(ctx context.Context, req *ResponseRequest) (*Response, error) {
	body := *req
	if body.Agent == nil {
		body.Model = c.resolveModel(body.Model)
	}

	var resp Response
	if _, err := c.core.DoJSON(ctx, &azureai.Request{
		Method: http.MethodPost,
		Path:   "/responses",
		Body:   &body,
	}, &resp); err != nil {
		return nil, fmt.Errorf("create response: %w", err)
	}
	if resp.Status == ResponseFailed {
		msg := "response failed"
		if resp.Error != nil {
			msg = resp.Error.Error()
		}
		return &resp, fmt.Errorf("%w: %s", azureai.ErrService, msg)
	}
	return &resp, nil
}
