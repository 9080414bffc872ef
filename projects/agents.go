// Copyright (c) Microsoft. All rights reserved.

package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/openai"
)

// PromptAgentDefinition defines an agent backed by a model deployment.
type PromptAgentDefinition struct {
	Model        string
	Instructions string
	Tools        []Tool
}

func (d PromptAgentDefinition) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind         string `json:"kind"`
		Model        string `json:"model"`
		Instructions string `json:"instructions,omitempty"`
		Tools        []Tool `json:"tools,omitempty"`
	}{"prompt", d.Model, d.Instructions, d.Tools})
}

// AgentDefinition is a stored agent definition as returned by the service.
type AgentDefinition struct {
	Kind         string     `json:"kind"`
	Model        string     `json:"model"`
	Instructions string     `json:"instructions"`
	Tools        []ToolInfo `json:"tools"`
}

// AgentVersion is one immutable version of an agent.
type AgentVersion struct {
	Object      string            `json:"object"`
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description,omitempty"`
	CreatedAt   int64             `json:"created_at"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Definition  AgentDefinition   `json:"definition"`
}

// Reference addresses this agent from a Responses API call.
func (v *AgentVersion) Reference() *openai.AgentReference {
	return openai.NewAgentReference(v.Name, "")
}

// Agent is a named agent together with its latest version.
type Agent struct {
	Object   string `json:"object"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Versions struct {
		Latest AgentVersion `json:"latest"`
	} `json:"versions"`
}

// Latest returns the newest version of the agent.
func (a *Agent) Latest() *AgentVersion { return &a.Versions.Latest }

// Reference addresses this agent from a Responses API call.
func (a *Agent) Reference() *openai.AgentReference {
	return openai.NewAgentReference(a.Name, "")
}

type deleteResult struct {
	Object  string `json:"object"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

// GetAgent retrieves an existing agent by name.
func (c *Client) GetAgent(ctx context.Context, name string) (*Agent, error) {
	var agent Agent
	if _, err := c.core.DoJSON(ctx, &azureai.Request{
		Method: http.MethodGet,
		Path:   "/agents/" + url.PathEscape(name),
	}, &agent); err != nil {
		return nil, fmt.Errorf("get agent %s: %w", name, err)
	}
	return &agent, nil
}

// CreateAgentVersion creates a new version of agent name, creating the
// agent itself if it does not exist yet.
func (c *Client) CreateAgentVersion(ctx context.Context, name string, def PromptAgentDefinition) (*AgentVersion, error) {
	if def.Model == "" {
		return nil, fmt.Errorf("%w: agent %s has no model", azureai.ErrInvalidRequest, name)
	}
	body := struct {
		Definition PromptAgentDefinition `json:"definition"`
	}{def}

	var v AgentVersion
	if _, err := c.core.DoJSON(ctx, &azureai.Request{
		Method: http.MethodPost,
		Path:   "/agents/" + url.PathEscape(name) + "/versions",
		Body:   body,
	}, &v); err != nil {
		return nil, fmt.Errorf("create agent version %s: %w", name, err)
	}
	return &v, nil
}

// DeleteAgent deletes an agent with all of its versions.
func (c *Client) DeleteAgent(ctx context.Context, name string) error {
	return c.delete(ctx, "/agents/"+url.PathEscape(name), "agent "+name)
}

// DeleteAgentVersion deletes a single version of an agent.
func (c *Client) DeleteAgentVersion(ctx context.Context, name, version string) error {
	return c.delete(ctx, "/agents/"+url.PathEscape(name)+"/versions/"+url.PathEscape(version), "agent "+name+" version "+version)
}

func (c *Client) delete(ctx context.Context, path, what string) error {
	var res deleteResult
	if _, err := c.core.DoJSON(ctx, &azureai.Request{Method: http.MethodDelete, Path: path}, &res); err != nil {
		return fmt.Errorf("delete %s: %w", what, err)
	}
	if res.Object != "" && !res.Deleted {
		return fmt.Errorf("%w: %s was not deleted", azureai.ErrService, what)
	}
	return nil
}
