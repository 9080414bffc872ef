// Copyright (c) Microsoft. All rights reserved.

package search_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/search"
)

func TestSearch_Paging(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost || r.URL.Path != "/indexes('margies-index')/docs/search.post.search" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("api-version") != search.APIVersion {
			t.Errorf("api-version = %q", r.URL.Query().Get("api-version"))
		}
		if got := r.Header.Get(azureai.HeaderAPIKey); got != "qk" {
			t.Errorf("api-key = %q", got)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)

		switch calls {
		case 1:
			if body["search"] != "london" || body["select"] != "metadata_storage_name,locations" ||
				body["orderby"] != "metadata_storage_name" || body["count"] != true {
				t.Errorf("first body = %v", body)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"@odata.count": 3,
				"value": []map[string]any{
					{"@search.score": 1.2, "metadata_storage_name": "a.pdf", "locations": []string{"London"}},
					{"@search.score": 1.1, "metadata_storage_name": "b.pdf", "locations": nil},
				},
				"@search.nextPageParameters": map[string]any{"search": "london", "skip": 2, "count": true},
			})
		case 2:
			if body["skip"] != float64(2) {
				t.Errorf("second body = %v", body)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"@odata.count": 3,
				"value":        []map[string]any{{"metadata_storage_name": "c.pdf", "locations": []string{"Paris", "Rome"}}},
			})
		default:
			t.Errorf("unexpected call %d", calls)
		}
	}))
	defer srv.Close()

	client := search.NewClient(srv.URL, "margies-index", "qk")
	res, err := client.Search(context.Background(), &search.Options{
		Search:            "london",
		Select:            []string{"metadata_storage_name", "locations"},
		OrderBy:           []string{"metadata_storage_name"},
		IncludeTotalCount: true,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Count == nil || *res.Count != 3 {
		t.Errorf("Count = %v", res.Count)
	}
	if len(res.Documents) != 3 {
		t.Fatalf("documents = %d", len(res.Documents))
	}
	if res.Documents[0].String("metadata_storage_name") != "a.pdf" || res.Documents[0].Score() != 1.2 {
		t.Errorf("doc 0 = %v", res.Documents[0])
	}
	if got := res.Documents[1].Strings("locations"); got != nil {
		t.Errorf("null collection = %v", got)
	}
	if got := res.Documents[2].Strings("locations"); len(got) != 2 || got[1] != "Rome" {
		t.Errorf("locations = %v", got)
	}
}

func TestSearch_MaxPages(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{
			"value":                      []map[string]any{{"id": "x"}},
			"@search.nextPageParameters": map[string]any{"skip": calls},
		})
	}))
	defer srv.Close()

	client := search.NewClient(srv.URL, "idx", "k")
	res, err := client.Search(context.Background(), &search.Options{Search: "*", MaxPages: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if calls != 2 || len(res.Documents) != 2 {
		t.Errorf("calls = %d, documents = %d", calls, len(res.Documents))
	}
	if res.Count != nil {
		t.Errorf("Count = %v, want nil", *res.Count)
	}
}

func TestSearch_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := search.NewClient(srv.URL, "idx", "bad")
	if _, err := client.Search(context.Background(), &search.Options{Search: "x"}); !errors.Is(err, azureai.ErrAuth) {
		t.Errorf("err = %v, want ErrAuth", err)
	}
}

func TestDocument_String(t *testing.T) {
	d := search.Document{"n": float64(4), "s": "x"}
	if d.String("n") != "4" || d.String("s") != "x" || d.String("missing") != "" {
		t.Errorf("String: %q %q %q", d.String("n"), d.String("s"), d.String("missing"))
	}
}
