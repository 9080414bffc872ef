// Copyright (c) Microsoft. All rights reserved.

package language_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/language"
)

func newJobServer(t *testing.T, final map[string]any) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var polls atomic.Int32
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	mux.HandleFunc("POST /language/analyze-text/jobs", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AnalysisInput struct {
				Documents []struct {
					ID       string `json:"id"`
					Text     string `json:"text"`
					Language string `json:"language"`
				} `json:"documents"`
			} `json:"analysisInput"`
			Tasks []struct {
				Kind       string            `json:"kind"`
				Parameters map[string]string `json:"parameters"`
			} `json:"tasks"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		docs := body.AnalysisInput.Documents
		if len(docs) != 3 || docs[0].ID != "0" || docs[2].ID != "2" || docs[1].Language != "en" {
			t.Errorf("documents = %+v", docs)
		}
		if len(body.Tasks) != 1 || body.Tasks[0].Kind != "CustomSingleLabelClassification" ||
			body.Tasks[0].Parameters["projectName"] != "ClassifyLab" || body.Tasks[0].Parameters["deploymentName"] != "articles" {
			t.Errorf("tasks = %+v", body.Tasks)
		}
		w.Header().Set(azureai.HeaderOperationLocation, srv.URL+"/language/analyze-text/jobs/job-1?api-version=2022-05-01")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /language/analyze-text/jobs/job-1", func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) == 1 {
			json.NewEncoder(w).Encode(map[string]any{"jobId": "job-1", "status": "running"})
			return
		}
		json.NewEncoder(w).Encode(final)
	})
	t.Cleanup(srv.Close)
	return srv, &polls
}

func TestBeginSingleLabelClassify(t *testing.T) {
	srv, polls := newJobServer(t, map[string]any{
		"jobId":  "job-1",
		"status": "succeeded",
		"tasks": map[string]any{"items": []map[string]any{{
			"kind":   "CustomSingleLabelClassificationLROResults",
			"status": "succeeded",
			"results": map[string]any{
				"documents": []map[string]any{
					{"id": "0", "class": []map[string]any{{"category": "Sports", "confidenceScore": 0.92}}},
					{"id": "2", "class": []map[string]any{{"category": "News", "confidenceScore": 0.61}}},
				},
				"errors": []map[string]any{
					{"id": "1", "error": map[string]any{
						"code": "InvalidArgument", "message": "Invalid document",
						"innererror": map[string]any{"code": "InvalidDocument", "message": "Document text is empty."},
					}},
				},
			},
		}}},
	})

	client := language.NewTextAnalyticsClient(srv.URL, "key")
	op, err := client.BeginSingleLabelClassify(context.Background(),
		[]string{"match report", "", "election"}, "ClassifyLab", "articles",
		&language.ClassifyOptions{Poller: &azureai.PollerOptions{Interval: 5 * time.Millisecond}})
	if err != nil {
		t.Fatalf("BeginSingleLabelClassify: %v", err)
	}
	results, err := op.PollUntilDone(context.Background())
	if err != nil {
		t.Fatalf("PollUntilDone: %v", err)
	}
	if polls.Load() != 2 {
		t.Errorf("polls = %d, want 2", polls.Load())
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	for i, r := range results {
		if (r.Error == nil) == (len(r.Classifications) == 0) {
			t.Errorf("result %d must have exactly one of classification or error: %+v", i, r)
		}
	}
	if results[0].Classifications[0].Category != "Sports" {
		t.Errorf("result 0 = %+v", results[0])
	}
	if !results[1].IsError() || results[1].Error.Code != "InvalidDocument" || results[1].Error.Message != "Document text is empty." {
		t.Errorf("result 1 = %+v", results[1].Error)
	}
	if results[2].Classifications[0].ConfidenceScore != 0.61 {
		t.Errorf("result 2 = %+v", results[2])
	}
	if op.Status() != azureai.StatusSucceeded {
		t.Errorf("Status() = %q", op.Status())
	}
}

func TestBeginSingleLabelClassify_MissingResults(t *testing.T) {
	srv, _ := newJobServer(t, map[string]any{
		"jobId":  "job-1",
		"status": "partiallyCompleted",
		"tasks": map[string]any{"items": []map[string]any{{
			"status": "failed",
		}}},
	})

	client := language.NewTextAnalyticsClient(srv.URL, "key")
	op, err := client.BeginSingleLabelClassify(context.Background(), []string{"a", "b", "c"}, "ClassifyLab", "articles",
		&language.ClassifyOptions{Poller: &azureai.PollerOptions{Interval: time.Millisecond}})
	if err != nil {
		t.Fatalf("BeginSingleLabelClassify: %v", err)
	}
	results, err := op.PollUntilDone(context.Background())
	if err != nil {
		t.Fatalf("PollUntilDone: %v", err)
	}
	for i, r := range results {
		if !r.IsError() || r.ID != []string{"0", "1", "2"}[i] {
			t.Errorf("result %d = %+v", i, r)
		}
	}
}

func TestBeginSingleLabelClassify_JobFailed(t *testing.T) {
	srv, _ := newJobServer(t, map[string]any{
		"jobId":  "job-1",
		"status": "failed",
		"errors": []map[string]any{{"code": "ProjectNotFound", "message": "project ClassifyLab not found"}},
	})

	client := language.NewTextAnalyticsClient(srv.URL, "key")
	op, err := client.BeginSingleLabelClassify(context.Background(), []string{"a", "b", "c"}, "ClassifyLab", "articles",
		&language.ClassifyOptions{Poller: &azureai.PollerOptions{Interval: time.Millisecond}})
	if err != nil {
		t.Fatalf("BeginSingleLabelClassify: %v", err)
	}
	_, err = op.PollUntilDone(context.Background())
	var opErr *azureai.OperationError
	if !errors.As(err, &opErr) || opErr.Code != "ProjectNotFound" {
		t.Errorf("err = %v, want OperationError ProjectNotFound", err)
	}
}

func TestBeginSingleLabelClassify_NoDocuments(t *testing.T) {
	client := language.NewTextAnalyticsClient("https://example.invalid", "key")
	_, err := client.BeginSingleLabelClassify(context.Background(), nil, "p", "d", nil)
	if !errors.Is(err, azureai.ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
}
