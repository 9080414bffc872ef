// Copyright (c) Microsoft. All rights reserved.

package projects_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/openai"
	"github.com/microsoft/azure-ai-playground/go/projects"
)

type staticCredential struct {
	scopes []string
}

func (c *staticCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	c.scopes = opts.Scopes
	return azcore.AccessToken{Token: "tok", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func newTestServer(t *testing.T, mux *http.ServeMux) (*projects.Client, *staticCredential) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("api-version"); got != projects.DefaultAPIVersion {
			t.Errorf("api-version = %q", got)
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	cred := &staticCredential{}
	return projects.NewClient(srv.URL+"/api/projects/p1/", cred, projects.WithHTTPClient(srv.Client())), cred
}

func TestGetAgent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/projects/p1/agents/expense-agent", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"object": "agent",
			"id":     "expense-agent",
			"name":   "expense-agent",
			"versions": map[string]any{"latest": map[string]any{
				"name":    "expense-agent",
				"version": "3",
				"definition": map[string]any{
					"kind":  "prompt",
					"model": "gpt-4o",
					"tools": []map[string]any{{"type": "file_search"}},
				},
			}},
		})
	})
	client, cred := newTestServer(t, mux)

	agent, err := client.GetAgent(context.Background(), "expense-agent")
	if err != nil {
		t.Fatalf("GetAgent: %v", err)
	}
	if agent.Name != "expense-agent" || agent.Latest().Version != "3" {
		t.Errorf("agent = %+v", agent)
	}
	if agent.Latest().Definition.Model != "gpt-4o" || agent.Latest().Definition.Tools[0].Type != "file_search" {
		t.Errorf("definition = %+v", agent.Latest().Definition)
	}
	if ref := agent.Reference(); ref.Name != "expense-agent" || ref.Type != "agent_reference" {
		t.Errorf("reference = %+v", ref)
	}
	if len(cred.scopes) != 1 || cred.scopes[0] != azureai.ScopeAIFoundry {
		t.Errorf("scopes = %v", cred.scopes)
	}
}

func TestGetAgent_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/projects/p1/agents/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": "NotFound", "message": "agent not found"}})
	})
	client, _ := newTestServer(t, mux)

	_, err := client.GetAgent(context.Background(), "missing")
	if !errors.Is(err, azureai.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateAgentVersion_Tools(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/projects/p1/agents/data-agent/versions", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Definition struct {
				Kind         string           `json:"kind"`
				Model        string           `json:"model"`
				Instructions string           `json:"instructions"`
				Tools        []map[string]any `json:"tools"`
			} `json:"definition"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		def := body.Definition
		if def.Kind != "prompt" || def.Model != "gpt-4o" || def.Instructions != "analyze" {
			t.Errorf("definition = %+v", def)
		}
		if len(def.Tools) != 2 {
			t.Fatalf("tools = %v", def.Tools)
		}
		ci := def.Tools[0]
		container := ci["container"].(map[string]any)
		if ci["type"] != "code_interpreter" || container["type"] != "auto" {
			t.Errorf("code interpreter = %v", ci)
		}
		if ids := container["file_ids"].([]any); len(ids) != 1 || ids[0] != "file-1" {
			t.Errorf("file_ids = %v", container["file_ids"])
		}
		mcp := def.Tools[1]
		if mcp["type"] != "mcp" || mcp["server_label"] != "api-specs" || mcp["require_approval"] != "always" {
			t.Errorf("mcp = %v", mcp)
		}
		json.NewEncoder(w).Encode(map[string]any{"object": "agent.version", "id": "data-agent:1", "name": "data-agent", "version": "1"})
	})
	client, _ := newTestServer(t, mux)

	v, err := client.CreateAgentVersion(context.Background(), "data-agent", projects.PromptAgentDefinition{
		Model:        "gpt-4o",
		Instructions: "analyze",
		Tools: []projects.Tool{
			projects.NewCodeInterpreterTool("file-1"),
			&projects.MCPTool{ServerLabel: "api-specs", ServerURL: "https://learn.microsoft.com/api/mcp", RequireApproval: projects.ApprovalAlways},
		},
	})
	if err != nil {
		t.Fatalf("CreateAgentVersion: %v", err)
	}
	if v.ID != "data-agent:1" || v.Version != "1" {
		t.Errorf("version = %+v", v)
	}
}

func TestCodeInterpreterTool_EmptyFileIDs(t *testing.T) {
	b, err := json.Marshal(projects.NewCodeInterpreterTool())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"code_interpreter","container":{"type":"auto","file_ids":[]}}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestCreateAgentVersion_NoModel(t *testing.T) {
	client := projects.NewClient("https://example.invalid", &staticCredential{})
	_, err := client.CreateAgentVersion(context.Background(), "a", projects.PromptAgentDefinition{})
	if !errors.Is(err, azureai.ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestDeleteAgentAndVersion(t *testing.T) {
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/projects/p1/agents/{rest...}", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"object": "agent.deleted", "deleted": true})
	})
	client, _ := newTestServer(t, mux)
	ctx := context.Background()

	if err := client.DeleteAgentVersion(ctx, "MyAgent", "2"); err != nil {
		t.Fatalf("DeleteAgentVersion: %v", err)
	}
	if err := client.DeleteAgent(ctx, "data-agent"); err != nil {
		t.Fatalf("DeleteAgent: %v", err)
	}
	want := []string{"/api/projects/p1/agents/MyAgent/versions/2", "/api/projects/p1/agents/data-agent"}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestDeleteAgent_NotDeleted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/projects/p1/agents/a", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"object": "agent.deleted", "deleted": false})
	})
	client, _ := newTestServer(t, mux)
	if err := client.DeleteAgent(context.Background(), "a"); !errors.Is(err, azureai.ErrService) {
		t.Errorf("err = %v, want ErrService", err)
	}
}

func TestOpenAIClient_SharesProject(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/projects/p1/openai/conversations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "conv_1"})
	})
	client, _ := newTestServer(t, mux)

	oc := client.OpenAIClient(openai.WithModel("gpt-4o"))
	conv, err := oc.CreateConversation(context.Background())
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	if conv.ID != "conv_1" {
		t.Errorf("ID = %q", conv.ID)
	}
	if oc.Model() != "gpt-4o" {
		t.Errorf("Model() = %q", oc.Model())
	}
}
