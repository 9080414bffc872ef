// Copyright (c) Microsoft. All rights reserved.

package azureai_test

import (
	"bytes"
	"testing"

	"github.com/microsoft/azure-ai-playground/go/azureai"
)

func TestNewUserMessage(t *testing.T) {
	m := azureai.NewUserMessage("hi")
	if m.Role != azureai.RoleUser {
		t.Errorf("role = %q, want %q", m.Role, azureai.RoleUser)
	}
	if m.Text() != "hi" {
		t.Errorf("text = %q, want %q", m.Text(), "hi")
	}
}

func TestMessageText_MultipleContents(t *testing.T) {
	m := azureai.Message{
		Role: azureai.RoleAssistant,
		Contents: azureai.Contents{
			&azureai.TextContent{Text: "Hello "},
			&azureai.MCPServerCallContent{Name: "search"}, // non-text: skipped
			&azureai.TextContent{Text: "World"},
		},
	}
	if got := m.Text(); got != "Hello World" {
		t.Errorf("text = %q, want %q", got, "Hello World")
	}
}

func TestNewUserMessageWithImage(t *testing.T) {
	t.Run("data uri", func(t *testing.T) {
		m := azureai.NewUserMessageWithImage("what is this?", "data:image/jpeg;base64,AAAA")
		if len(m.Contents) != 2 {
			t.Fatalf("contents = %d", len(m.Contents))
		}
		dc, ok := m.Contents[1].(*azureai.DataContent)
		if !ok {
			t.Fatalf("type = %T", m.Contents[1])
		}
		if dc.MediaType != "image/jpeg" {
			t.Errorf("MediaType = %q", dc.MediaType)
		}
	})

	t.Run("remote url", func(t *testing.T) {
		m := azureai.NewUserMessageWithImage("what is this?", "https://example.com/orange.jpeg")
		if _, ok := m.Contents[1].(*azureai.URIContent); !ok {
			t.Fatalf("type = %T", m.Contents[1])
		}
	})
}

func TestDataContent(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff}
	dc := azureai.NewDataContent(payload, "image/jpeg")
	if dc.URI != "data:image/jpeg;base64,/9j/" {
		t.Errorf("URI = %q", dc.URI)
	}
	got, err := dc.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Data = %v, want %v", got, payload)
	}

	bad := &azureai.DataContent{URI: "https://example.com"}
	if _, err := bad.Data(); err == nil {
		t.Error("expected error for non data URI")
	}
}

func TestApprovalRequestContent_Approve(t *testing.T) {
	req := &azureai.ApprovalRequestContent{RequestID: "mcpr_1", ServerLabel: "api-specs"}
	resp := req.Approve(true)
	if resp.RequestID != "mcpr_1" || !resp.Approved {
		t.Errorf("response = %+v", resp)
	}
	if resp.Type() != azureai.ContentTypeApprovalResponse {
		t.Errorf("Type = %q", resp.Type())
	}
}
