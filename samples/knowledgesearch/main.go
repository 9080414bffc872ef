// Copyright (c) Microsoft. All rights reserved.

// Command knowledgesearch queries an Azure AI Search knowledge store index
// and lists the locations, people and key phrases of each match.
//
//	export SEARCH_ENDPOINT=https://<service>.search.windows.net
//	export QUERY_KEY=<query key>
//	export INDEX_NAME=margies-index
//	go run .
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/microsoft/azure-ai-playground/go/internal/cli"
	"github.com/microsoft/azure-ai-playground/go/internal/config"
	"github.com/microsoft/azure-ai-playground/go/search"
)

var command = cli.Command{
	Name:        "knowledgesearch",
	Description: "search an enriched document index",
	Run:         run,
}

func main() { cli.Main(command) }

func run(ctx context.Context, env *cli.Env) error {
	client := search.NewClient(config.Get("SEARCH_ENDPOINT"), config.Get("INDEX_NAME"), config.Get("QUERY_KEY"), env.ClientOptions()...)
	q := &querier{client: client, out: env.Stdout}
	loop := cli.Loop{
		In:       env.Stdin,
		Out:      env.Stdout,
		Prompt:   "Enter a query (or type 'quit' to exit): ",
		Reminder: "Please enter a query.",
	}
	return loop.Run(ctx, q.query)
}

type querier struct {
	client *search.Client
	out    io.Writer
}

func (q *querier) query(ctx context.Context, text string) error {
	cli.ClearScreen(q.out)
	results, err := q.client.Search(ctx, &search.Options{
		Search:            text,
		Select:            []string{"metadata_storage_name", "locations", "people", "keyphrases"},
		OrderBy:           []string{"metadata_storage_name"},
		IncludeTotalCount: true,
	})
	if err != nil {
		return err
	}
	printResults(q.out, results)
	return nil
}

func printResults(w io.Writer, results *search.Results) {
	count := int64(len(results.Documents))
	if results.Count != nil {
		count = *results.Count
	}
	fmt.Fprintf(w, "\nSearch returned %d documents:\n", count)
	for _, doc := range results.Documents {
		fmt.Fprintf(w, "\nDocument: %s\n", doc.String("metadata_storage_name"))
		printList(w, " - Locations:", doc.Strings("locations"))
		printList(w, " - People:", doc.Strings("people"))
		printList(w, " - Key phrases:", doc.Strings("keyphrases"))
	}
}

func printList(w io.Writer, heading string, items []string) {
	fmt.Fprintln(w, heading)
	for _, item := range items {
		fmt.Fprintf(w, "   - %s\n", item)
	}
}
