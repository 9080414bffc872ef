// Copyright (c) Microsoft. All rights reserved.

package openai_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/openai"
)

// mockTransportFunc is a RoundTripper that delegates to a function.
type mockTransportFunc func(*http.Request) (*http.Response, error)

func (f mockTransportFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newMockHTTPClient(fn func(*http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{Transport: mockTransportFunc(fn)}
}

func jsonResponse(status int, body any) *http.Response {
	b, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(b)),
	}
}

func decodeBody(t *testing.T, req *http.Request) map[string]any {
	t.Helper()
	body, _ := io.ReadAll(req.Body)
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("request body: %v", err)
	}
	return m
}

func TestClient_ChatCompletion_Basic(t *testing.T) {
	content := "The image shows a resume."
	apiResp := map[string]any{
		"id":     "chatcmpl-123",
		"object": "chat.completion",
		"model":  "gpt-4o",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message": map[string]any{
				"role":    "assistant",
				"content": content,
			},
		}},
		"usage": map[string]any{
			"prompt_tokens":     10,
			"completion_tokens": 8,
			"total_tokens":      18,
		},
	}

	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost {
			t.Errorf("method = %q", req.Method)
		}
		if !strings.HasSuffix(req.URL.Path, "/chat/completions") {
			t.Errorf("path = %q", req.URL.Path)
		}
		if req.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("auth = %q", req.Header.Get("Authorization"))
		}
		body := decodeBody(t, req)
		if body["model"] != "gpt-4o" {
			t.Errorf("request model = %v", body["model"])
		}
		msgs := body["messages"].([]any)
		if len(msgs) != 2 {
			t.Fatalf("messages = %d, want 2", len(msgs))
		}
		if got := msgs[0].(map[string]any)["content"]; got != "You are helpful." {
			t.Errorf("system content = %v", got)
		}
		return jsonResponse(200, apiResp), nil
	})

	client := openai.New("test-key",
		openai.WithModel("gpt-4o"),
		openai.WithHTTPClient(httpClient),
	)

	resp, err := client.ChatCompletion(context.Background(), []azureai.Message{
		azureai.NewSystemMessage("You are helpful."),
		azureai.NewUserMessage("Hello"),
	}, nil)
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
	if resp.Text() != content {
		t.Errorf("Text() = %q", resp.Text())
	}
	if resp.FinishReason != openai.FinishReasonStop {
		t.Errorf("FinishReason = %q", resp.FinishReason)
	}
	if resp.Usage.TotalTokens != 18 {
		t.Errorf("TotalTokens = %d", resp.Usage.TotalTokens)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Role != azureai.RoleAssistant {
		t.Errorf("Messages = %+v", resp.Messages)
	}
}

func TestClient_ChatCompletion_ImageParts(t *testing.T) {
	dataURL := "data:image/jpeg;base64,AAEC"

	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		body := decodeBody(t, req)
		msgs := body["messages"].([]any)
		parts, ok := msgs[0].(map[string]any)["content"].([]any)
		if !ok || len(parts) != 2 {
			t.Fatalf("content parts = %v", msgs[0])
		}
		text := parts[0].(map[string]any)
		if text["type"] != "text" || text["text"] != "Describe this" {
			t.Errorf("text part = %v", text)
		}
		img := parts[1].(map[string]any)
		if img["type"] != "image_url" {
			t.Errorf("image part type = %v", img["type"])
		}
		if url := img["image_url"].(map[string]any)["url"]; url != dataURL {
			t.Errorf("image url = %v", url)
		}
		return jsonResponse(200, map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": "ok"}}},
		}), nil
	})

	client := openai.New("k", openai.WithModel("gpt-4o"), openai.WithHTTPClient(httpClient))
	_, err := client.ChatCompletion(context.Background(), []azureai.Message{
		azureai.NewUserMessageWithImage("Describe this", dataURL),
	}, nil)
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
}

func TestClient_ChatCompletion_NoMessages(t *testing.T) {
	client := openai.New("k")
	_, err := client.ChatCompletion(context.Background(), nil, nil)
	if !errors.Is(err, azureai.ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    map[string]any
		wantErr error
	}{
		{
			name:    "auth",
			status:  401,
			body:    map[string]any{"error": map[string]any{"message": "bad key", "type": "invalid_api_key"}},
			wantErr: azureai.ErrAuth,
		},
		{
			name:    "content filter",
			status:  400,
			body:    map[string]any{"error": map[string]any{"message": "filtered", "code": "content_filter"}},
			wantErr: azureai.ErrContentFilter,
		},
		{
			name:    "rate limited",
			status:  429,
			body:    map[string]any{"error": map[string]any{"message": "slow down"}},
			wantErr: azureai.ErrRateLimited,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpClient := newMockHTTPClient(func(*http.Request) (*http.Response, error) {
				return jsonResponse(tt.status, tt.body), nil
			})
			client := openai.New("k", openai.WithModel("m"), openai.WithHTTPClient(httpClient))
			_, err := client.ChatCompletion(context.Background(), []azureai.Message{azureai.NewUserMessage("hi")}, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			var svcErr *azureai.ServiceError
			if !errors.As(err, &svcErr) || svcErr.StatusCode != tt.status {
				t.Errorf("ServiceError = %+v", svcErr)
			}
		})
	}
}

func TestClient_AzureOptions(t *testing.T) {
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/openai/deployments/dalle3/images/generations" {
			t.Errorf("path = %q", req.URL.Path)
		}
		if got := req.URL.Query().Get("api-version"); got != "2024-02-01" {
			t.Errorf("api-version = %q", got)
		}
		if got := req.Header.Get(azureai.HeaderAPIKey); got != "secret" {
			t.Errorf("api-key = %q", got)
		}
		if req.Header.Get("Authorization") != "" {
			t.Error("unexpected Authorization header")
		}
		if got := req.Header.Get("X-Custom"); got != "v" {
			t.Errorf("custom header = %q", got)
		}
		return jsonResponse(200, map[string]any{"created": 1, "data": []any{}}), nil
	})

	client := openai.New("secret",
		openai.WithBaseURL("https://res.openai.azure.com/openai"),
		openai.WithAPIVersion("2024-02-01"),
		openai.WithAzureKeyHeader(),
		openai.WithAzureDeployments(),
		openai.WithModel("dalle3"),
		openai.WithHeaders(map[string]string{"X-Custom": "v"}),
		openai.WithHTTPClient(httpClient),
	)
	if _, err := client.GenerateImage(context.Background(), &openai.ImageRequest{Prompt: "a cat"}); err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
}

func TestClient_Middleware(t *testing.T) {
	var called bool
	mw := func(next azureai.Handler) azureai.Handler {
		return func(req *http.Request) (*http.Response, error) {
			called = true
			return next(req)
		}
	}
	httpClient := newMockHTTPClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(200, map[string]any{"id": "conv_1"}), nil
	})
	client := openai.New("k", openai.WithHTTPClient(httpClient), openai.WithMiddleware(mw))
	if _, err := client.CreateConversation(context.Background()); err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	if !called {
		t.Error("middleware not invoked")
	}
}
