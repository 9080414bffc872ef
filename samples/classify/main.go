// Copyright (c) Microsoft. All rights reserved.

// Command classify labels each article in a folder with a custom
// single-label text classification model.
//
//	export AI_SERVICE_ENDPOINT=https://<resource>.cognitiveservices.azure.com/
//	export AI_SERVICE_KEY=<key>
//	export PROJECT=ClassifyLab
//	export DEPLOYMENT=articles
//	go run . --articles articles
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/internal/cli"
	"github.com/microsoft/azure-ai-playground/go/internal/config"
	"github.com/microsoft/azure-ai-playground/go/language"
)

var articlesDir string

var command = cli.Command{
	Name:        "classify",
	Description: "classify the articles in a folder",
	Flags: func(fs *pflag.FlagSet) {
		fs.StringVar(&articlesDir, "articles", "articles", "folder of text files to classify")
	},
	Run: run,
}

func main() { cli.Main(command) }

func run(ctx context.Context, env *cli.Env) error {
	client := language.NewTextAnalyticsClient(config.Get("AI_SERVICE_ENDPOINT"), config.Get("AI_SERVICE_KEY"), env.ClientOptions()...)
	return classify(ctx, env.Stdout, client, articlesDir, config.Get("PROJECT"), config.Get("DEPLOYMENT"), env.PollInterval())
}

func classify(ctx context.Context, w io.Writer, client *language.TextAnalyticsClient, dir, project, deployment string, interval time.Duration) error {
	names, texts, err := readArticles(dir)
	if err != nil {
		return err
	}
	op, err := client.BeginSingleLabelClassify(ctx, texts, project, deployment, &language.ClassifyOptions{
		Poller: &azureai.PollerOptions{Interval: interval},
	})
	if err != nil {
		return err
	}
	results, err := op.PollUntilDone(ctx)
	if err != nil {
		return err
	}
	printResults(w, names, results)
	return nil
}

// readArticles returns the names and contents of the regular files in dir,
// sorted by name.
func readArticles(dir string) (names, texts []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, nil, err
		}
		names = append(names, e.Name())
		texts = append(texts, string(b))
	}
	return names, texts, nil
}

func printResults(w io.Writer, names []string, results []language.ClassificationResult) {
	for i, r := range results {
		if r.IsError() {
			fmt.Fprintf(w, "%s has an error with code '%s' and message '%s'\n", names[i], r.Error.Code, r.Error.Message)
			continue
		}
		c := r.Classifications[0]
		fmt.Fprintf(w, "%s was classified as '%s' with confidence score %v.\n", names[i], c.Category, c.ConfidenceScore)
	}
}
