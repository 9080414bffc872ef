// Copyright (c) Microsoft. All rights reserved.

package projects

import "encoding/json"

// Tool is a tool definition attached to a prompt agent.
type Tool interface {
	ToolType() string
}

// MCP approval modes.
const (
	ApprovalAlways = "always"
	ApprovalNever  = "never"
)

// AutoContainer lets the service provision the code interpreter sandbox.
type AutoContainer struct {
	FileIDs []string
}

// CodeInterpreterTool runs model-written Python over the given files.
type CodeInterpreterTool struct {
	Container AutoContainer
}

// NewCodeInterpreterTool creates a code interpreter over fileIDs.
func NewCodeInterpreterTool(fileIDs ...string) *CodeInterpreterTool {
	return &CodeInterpreterTool{Container: AutoContainer{FileIDs: fileIDs}}
}

func (*CodeInterpreterTool) ToolType() string { return "code_interpreter" }

func (t *CodeInterpreterTool) MarshalJSON() ([]byte, error) {
	ids := t.Container.FileIDs
	if ids == nil {
		ids = []string{}
	}
	type container struct {
		Type    string   `json:"type"`
		FileIDs []string `json:"file_ids"`
	}
	return json.Marshal(struct {
		Type      string    `json:"type"`
		Container container `json:"container"`
	}{t.ToolType(), container{"auto", ids}})
}

// MCPTool connects the agent to a remote Model Context Protocol server.
type MCPTool struct {
	ServerLabel     string
	ServerURL       string
	RequireApproval string
	AllowedTools    []string
	Headers         map[string]string
}

func (*MCPTool) ToolType() string { return "mcp" }

func (t *MCPTool) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type            string            `json:"type"`
		ServerLabel     string            `json:"server_label"`
		ServerURL       string            `json:"server_url"`
		RequireApproval string            `json:"require_approval,omitempty"`
		AllowedTools    []string          `json:"allowed_tools,omitempty"`
		Headers         map[string]string `json:"headers,omitempty"`
	}{t.ToolType(), t.ServerLabel, t.ServerURL, t.RequireApproval, t.AllowedTools, t.Headers})
}

// ToolInfo is the decoded form of a tool in a stored agent definition.
type ToolInfo struct {
	Type            string `json:"type"`
	ServerLabel     string `json:"server_label,omitempty"`
	ServerURL       string `json:"server_url,omitempty"`
	RequireApproval any    `json:"require_approval,omitempty"`
}
