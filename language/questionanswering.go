// Copyright (c) Microsoft. All rights reserved.

package language

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/microsoft/azure-ai-playground/go/azureai"
)

// QuestionAnsweringAPIVersion is the question answering API version.
const QuestionAnsweringAPIVersion = "2021-10-01"

// QuestionAnsweringClient queries deployed question answering projects.
type QuestionAnsweringClient struct {
	core *azureai.Client
}

// NewQuestionAnsweringClient creates a client for a Language resource
// authenticated with its key.
func NewQuestionAnsweringClient(endpoint, key string, opts ...azureai.ClientOption) *QuestionAnsweringClient {
	opts = append([]azureai.ClientOption{azureai.WithAPIVersion(QuestionAnsweringAPIVersion)}, opts...)
	return &QuestionAnsweringClient{
		core: azureai.NewClient(endpoint, azureai.KeyAuth(azureai.HeaderSubscriptionKey, key), opts...),
	}
}

// AnswersOptions tunes [QuestionAnsweringClient.GetAnswers].
type AnswersOptions struct {
	// Top caps the number of answers. The service default is 3.
	Top int

	// ConfidenceThreshold drops answers scored below it (0 to 1).
	ConfidenceThreshold float64
}

// Answer is one candidate answer.
type Answer struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidenceScore"`
	Source     string   `json:"source"`
	QnAID      int      `json:"id"`
	Questions  []string `json:"questions,omitempty"`
}

// AnswersResult holds the candidate answers, best first.
type AnswersResult struct {
	Answers []Answer `json:"answers"`
}

// GetAnswers asks question of the given project deployment.
func (c *QuestionAnsweringClient) GetAnswers(ctx context.Context, question, project, deployment string, opts *AnswersOptions) (*AnswersResult, error) {
	body := struct {
		Question            string  `json:"question"`
		Top                 int     `json:"top,omitempty"`
		ConfidenceThreshold float64 `json:"confidenceScoreThreshold,omitempty"`
	}{Question: question}
	if opts != nil {
		body.Top = opts.Top
		body.ConfidenceThreshold = opts.ConfidenceThreshold
	}

	var res AnswersResult
	if _, err := c.core.DoJSON(ctx, &azureai.Request{
		Method: http.MethodPost,
		Path:   "/language/:query-knowledgebases",
		Query:  url.Values{"projectName": {project}, "deploymentName": {deployment}},
		Body:   body,
	}, &res); err != nil {
		return nil, fmt.Errorf("get answers: %w", err)
	}
	return &res, nil
}
