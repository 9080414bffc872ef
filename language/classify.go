// Copyright (c) Microsoft. All rights reserved.

package language

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/microsoft/azure-ai-playground/go/azureai"
)

// TextAnalysisAPIVersion is the analyze-text jobs API version.
const TextAnalysisAPIVersion = "2022-05-01"

const taskKindSingleLabel = "CustomSingleLabelClassification"

// TextAnalyticsClient submits analyze-text jobs.
type TextAnalyticsClient struct {
	core *azureai.Client
}

// NewTextAnalyticsClient creates a client for a Language resource
// authenticated with its key.
func NewTextAnalyticsClient(endpoint, key string, opts ...azureai.ClientOption) *TextAnalyticsClient {
	opts = append([]azureai.ClientOption{azureai.WithAPIVersion(TextAnalysisAPIVersion)}, opts...)
	return &TextAnalyticsClient{
		core: azureai.NewClient(endpoint, azureai.KeyAuth(azureai.HeaderSubscriptionKey, key), opts...),
	}
}

// ClassifyOptions tunes [TextAnalyticsClient.BeginSingleLabelClassify].
type ClassifyOptions struct {
	// Language is the ISO 639-1 code of the documents. Defaults to "en".
	Language    string
	DisplayName string
	Poller      *azureai.PollerOptions
}

// Classification is a predicted class.
type Classification struct {
	Category        string  `json:"category"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

// DocumentError explains why a document was not classified.
type DocumentError struct {
	Code    string
	Message string
}

func (e *DocumentError) Error() string { return e.Code + ": " + e.Message }

// ClassificationResult is the outcome for one input document. Exactly one of
// Classifications and Error is set.
type ClassificationResult struct {
	ID              string
	Classifications []Classification
	Error           *DocumentError
	Warnings        []string
}

// IsError reports whether the document failed.
func (r *ClassificationResult) IsError() bool { return r.Error != nil }

type detailedError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	InnerError *detailedError `json:"innererror"`
}

// innermost returns the most specific error in the chain.
func (e *detailedError) innermost() *detailedError {
	for e.InnerError != nil {
		e = e.InnerError
	}
	return e
}

type classifiedDocument struct {
	ID       string           `json:"id"`
	Class    []Classification `json:"class"`
	Warnings []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"warnings"`
}

type documentFailure struct {
	ID    string        `json:"id"`
	Error detailedError `json:"error"`
}

type analyzeTask struct {
	Kind    string `json:"kind"`
	Status  string `json:"status"`
	Results struct {
		Documents []classifiedDocument `json:"documents"`
		Errors    []documentFailure    `json:"errors"`
	} `json:"results"`
}

type analyzeJob struct {
	JobID string `json:"jobId"`
	Tasks struct {
		Items []analyzeTask `json:"items"`
	} `json:"tasks"`
}

// ClassifyOperation tracks a submitted classification job.
type ClassifyOperation struct {
	poller *azureai.Poller[analyzeJob]
	ids    []string
}

// BeginSingleLabelClassify submits docs for custom single-label
// classification by the given project deployment.
func (c *TextAnalyticsClient) BeginSingleLabelClassify(ctx context.Context, docs []string, project, deployment string, opts *ClassifyOptions) (*ClassifyOperation, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents", azureai.ErrInvalidRequest)
	}
	if opts == nil {
		opts = &ClassifyOptions{}
	}
	lang := opts.Language
	if lang == "" {
		lang = "en"
	}

	type document struct {
		ID       string `json:"id"`
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	type task struct {
		Kind       string            `json:"kind"`
		TaskName   string            `json:"taskName,omitempty"`
		Parameters map[string]string `json:"parameters"`
	}
	body := struct {
		DisplayName   string `json:"displayName,omitempty"`
		AnalysisInput struct {
			Documents []document `json:"documents"`
		} `json:"analysisInput"`
		Tasks []task `json:"tasks"`
	}{DisplayName: opts.DisplayName}

	ids := make([]string, len(docs))
	for i, text := range docs {
		ids[i] = strconv.Itoa(i)
		body.AnalysisInput.Documents = append(body.AnalysisInput.Documents, document{ID: ids[i], Text: text, Language: lang})
	}
	body.Tasks = []task{{
		Kind:       taskKindSingleLabel,
		Parameters: map[string]string{"projectName": project, "deploymentName": deployment},
	}}

	resp, err := c.core.Do(ctx, &azureai.Request{
		Method: http.MethodPost,
		Path:   "/language/analyze-text/jobs",
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("submit classification: %w", err)
	}
	p, err := azureai.NewPoller[analyzeJob](c.core, resp, opts.Poller)
	if err != nil {
		return nil, fmt.Errorf("submit classification: %w", err)
	}
	return &ClassifyOperation{poller: p, ids: ids}, nil
}

// Status returns the last observed job status.
func (op *ClassifyOperation) Status() azureai.OperationStatus { return op.poller.Status() }

// PollUntilDone waits for the job and returns one result per submitted
// document, in submission order.
func (op *ClassifyOperation) PollUntilDone(ctx context.Context) ([]ClassificationResult, error) {
	job, err := op.poller.PollUntilDone(ctx)
	if err != nil {
		return nil, fmt.Errorf("classification job: %w", err)
	}
	return collectResults(op.ids, &job), nil
}

// collectResults aligns the service's per-document results with ids.
// Documents the service did not report on get an error result.
func collectResults(ids []string, job *analyzeJob) []ClassificationResult {
	byID := make(map[string]ClassificationResult, len(ids))
	for _, t := range job.Tasks.Items {
		for _, d := range t.Results.Documents {
			r := ClassificationResult{ID: d.ID}
			for _, w := range d.Warnings {
				r.Warnings = append(r.Warnings, w.Message)
			}
			if len(d.Class) > 0 {
				r.Classifications = d.Class
			} else {
				r.Error = &DocumentError{Code: "NoClassification", Message: "the service returned no class for this document"}
			}
			byID[d.ID] = r
		}
		for _, f := range t.Results.Errors {
			e := f.Error.innermost()
			byID[f.ID] = ClassificationResult{ID: f.ID, Error: &DocumentError{Code: e.Code, Message: e.Message}}
		}
	}

	out := make([]ClassificationResult, len(ids))
	for i, id := range ids {
		r, ok := byID[id]
		if !ok {
			r = ClassificationResult{ID: id, Error: &DocumentError{Code: "MissingResult", Message: "the service returned no result for this document"}}
		}
		out[i] = r
	}
	return out
}
