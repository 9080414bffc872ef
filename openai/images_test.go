// Copyright (c) Microsoft. All rights reserved.

package openai_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/openai"
)

func TestGenerateImage(t *testing.T) {
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		body := decodeBody(t, req)
		if body["prompt"] != "a lighthouse" || body["n"] != float64(1) {
			t.Errorf("body = %v", body)
		}
		return jsonResponse(200, map[string]any{
			"created": 1,
			"data":    []map[string]any{{"url": "https://blob.example/img.png", "revised_prompt": "a tall lighthouse"}},
		}), nil
	})
	client := openai.New("k", openai.WithModel("dall-e-3"), openai.WithHTTPClient(httpClient))
	resp, err := client.GenerateImage(context.Background(), &openai.ImageRequest{Prompt: "a lighthouse", N: 1})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].URL != "https://blob.example/img.png" {
		t.Errorf("data = %+v", resp.Data)
	}
}

func TestGenerateImage_EmptyPrompt(t *testing.T) {
	client := openai.New("k")
	_, err := client.GenerateImage(context.Background(), &openai.ImageRequest{})
	if !errors.Is(err, azureai.ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestImage_Bytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent")
		}
		w.Write([]byte("PNGDATA"))
	}))
	defer srv.Close()
	ctx := context.Background()

	inline := openai.Image{B64JSON: base64.StdEncoding.EncodeToString([]byte("inline"))}
	if got, err := inline.Bytes(ctx, nil); err != nil || string(got) != "inline" {
		t.Errorf("inline Bytes = %q, %v", got, err)
	}

	remote := openai.Image{URL: srv.URL + "/img.png"}
	if got, err := remote.Bytes(ctx, srv.Client()); err != nil || string(got) != "PNGDATA" {
		t.Errorf("remote Bytes = %q, %v", got, err)
	}

	missing := openai.Image{URL: srv.URL + "/missing.png"}
	if _, err := missing.Bytes(ctx, srv.Client()); !errors.Is(err, azureai.ErrService) {
		t.Errorf("missing Bytes err = %v", err)
	}

	if _, err := (&openai.Image{}).Bytes(ctx, nil); !errors.Is(err, azureai.ErrInvalidResponse) {
		t.Errorf("empty image err = %v", err)
	}
}

func TestFetchImageDataURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer srv.Close()

	got, err := openai.FetchImageDataURL(context.Background(), srv.Client(), srv.URL+"/resume.jpg", "jpeg")
	if err != nil {
		t.Fatalf("FetchImageDataURL: %v", err)
	}
	want := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff})
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Errorf("prefix: %q", got)
	}
}
