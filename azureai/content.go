// Copyright (c) Microsoft. All rights reserved.

package azureai

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ContentType identifies the kind of content within a message.
type ContentType string

const (
	ContentTypeText                ContentType = "text"
	ContentTypeData                ContentType = "data"
	ContentTypeURI                 ContentType = "uri"
	ContentTypeError               ContentType = "error"
	ContentTypeCodeInterpreterCall ContentType = "codeInterpreterToolCall"
	ContentTypeMCPServerCall       ContentType = "mcpServerToolCall"
	ContentTypeApprovalRequest     ContentType = "mcpApprovalRequest"
	ContentTypeApprovalResponse    ContentType = "mcpApprovalResponse"
)

// Content is a sealed interface representing a piece of content within a [Message].
// Use a type switch to inspect the underlying type.
type Content interface {
	// Type returns the discriminator for this content item.
	Type() ContentType

	sealed()
}

// Contents is an ordered list of [Content] items.
type Contents []Content

type base struct{}

func (base) sealed() {}

// TextContent holds plain text.
type TextContent struct {
	base
	Text string
}

func (c *TextContent) Type() ContentType { return ContentTypeText }

// DataContent holds binary data represented as a data URI.
type DataContent struct {
	base
	URI       string // data URI (e.g. data:image/png;base64,...)
	MediaType string
}

func (c *DataContent) Type() ContentType { return ContentTypeData }

// NewDataContent encodes data as a base64 data URI of the given media type.
func NewDataContent(data []byte, mediaType string) *DataContent {
	return &DataContent{
		URI:       fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(data)),
		MediaType: mediaType,
	}
}

// Data decodes the payload of a base64 data URI.
func (c *DataContent) Data() ([]byte, error) {
	_, payload, ok := strings.Cut(c.URI, ";base64,")
	if !ok {
		return nil, fmt.Errorf("%w: not a base64 data URI", ErrInvalidRequest)
	}
	return base64.StdEncoding.DecodeString(payload)
}

// URIContent holds an external URI reference.
type URIContent struct {
	base
	URI       string
	MediaType string
}

func (c *URIContent) Type() ContentType { return ContentTypeURI }

// ErrorContent represents an error returned as message content.
type ErrorContent struct {
	base
	Message   string
	ErrorCode string
}

func (c *ErrorContent) Type() ContentType { return ContentTypeError }

// CodeInterpreterCallContent represents a code interpreter run on the service.
type CodeInterpreterCallContent struct {
	base
	CallID string
	Code   string
	Status string
}

func (c *CodeInterpreterCallContent) Type() ContentType { return ContentTypeCodeInterpreterCall }

// MCPServerCallContent represents a tool call executed on a remote MCP server.
type MCPServerCallContent struct {
	base
	CallID      string
	ServerLabel string
	Name        string
	Arguments   string
	Output      string
}

func (c *MCPServerCallContent) Type() ContentType { return ContentTypeMCPServerCall }

// ApprovalRequestContent is the service asking permission to run an MCP tool.
type ApprovalRequestContent struct {
	base
	RequestID   string
	ServerLabel string
	Name        string
	Arguments   string
}

func (c *ApprovalRequestContent) Type() ContentType { return ContentTypeApprovalRequest }

// Approve builds the response that grants or denies this request.
func (c *ApprovalRequestContent) Approve(approved bool) *ApprovalResponseContent {
	return &ApprovalResponseContent{RequestID: c.RequestID, Approved: approved}
}

// ApprovalResponseContent carries the caller's approval decision.
type ApprovalResponseContent struct {
	base
	RequestID string
	Approved  bool
	Reason    string
}

func (c *ApprovalResponseContent) Type() ContentType { return ContentTypeApprovalResponse }
