// Copyright (c) Microsoft. All rights reserved.

package azureai

import "strings"

// Role identifies the author of a [Message].
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message represents a single message exchanged with a model or agent.
type Message struct {
	Role     Role
	Contents Contents
}

// Text returns the concatenated text of all [TextContent] items in this message.
func (m *Message) Text() string {
	var b strings.Builder
	for _, c := range m.Contents {
		if tc, ok := c.(*TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

// NewUserMessage creates a user-role [Message] from a text string.
func NewUserMessage(text string) Message {
	return Message{
		Role:     RoleUser,
		Contents: Contents{&TextContent{Text: text}},
	}
}

// NewSystemMessage creates a system-role [Message] from a text string.
func NewSystemMessage(text string) Message {
	return Message{
		Role:     RoleSystem,
		Contents: Contents{&TextContent{Text: text}},
	}
}

// NewUserMessageWithImage creates a user message carrying a text prompt
// followed by an image, given either as a data URI or a remote URL.
func NewUserMessageWithImage(text, imageURI string) Message {
	var img Content = &URIContent{URI: imageURI}
	if strings.HasPrefix(imageURI, "data:") {
		mediaType, _, _ := strings.Cut(strings.TrimPrefix(imageURI, "data:"), ";")
		img = &DataContent{URI: imageURI, MediaType: mediaType}
	}
	return Message{
		Role:     RoleUser,
		Contents: Contents{&TextContent{Text: text}, img},
	}
}

// UsageDetails holds token consumption statistics for a model response.
type UsageDetails struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
