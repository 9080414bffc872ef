// Copyright (c) Microsoft. All rights reserved.

// Command docanalysis extracts vendor, customer and total from a sample
// invoice with the Document Intelligence prebuilt invoice model.
//
//	export ENDPOINT=https://<resource>.cognitiveservices.azure.com/
//	export KEY=<key>
//	go run .
package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/docintel"
	"github.com/microsoft/azure-ai-playground/go/internal/cli"
	"github.com/microsoft/azure-ai-playground/go/internal/config"
)

const (
	defaultInvoiceURL = "https://github.com/MicrosoftLearning/mslearn-ai-information-extraction/blob/main/Labfiles/prebuilt-doc-intelligence/sample-invoice/sample-invoice.pdf?raw=true"
	invoiceModel      = "prebuilt-invoice"
	invoiceLocale     = "en-US"
)

var invoiceURL string

var command = cli.Command{
	Name:        "docanalysis",
	Description: "analyze an invoice with a prebuilt model",
	Flags: func(fs *pflag.FlagSet) {
		fs.StringVar(&invoiceURL, "invoice", defaultInvoiceURL, "URL of the invoice to analyze")
	},
	Run: run,
}

func main() { cli.Main(command) }

func run(ctx context.Context, env *cli.Env) error {
	cli.ClearScreen(env.Stdout)

	endpoint := config.Get("ENDPOINT")
	client := docintel.NewClient(endpoint, config.Get("KEY"), env.ClientOptions()...)

	fmt.Fprintf(env.Stdout, "\nConnecting to Forms Recognizer at: %s\n", endpoint)
	fmt.Fprintf(env.Stdout, "Analyzing invoice at: %s\n", invoiceURL)

	err := analyzeInvoice(ctx, env.Stdout, client, invoiceURL, env.PollInterval())
	fmt.Fprint(env.Stdout, "\nAnalysis complete.\n\n")
	return err
}

func analyzeInvoice(ctx context.Context, w io.Writer, client *docintel.Client, url string, interval time.Duration) error {
	poller, err := client.BeginAnalyzeDocumentFromURL(ctx, invoiceModel, url, &docintel.AnalyzeOptions{
		Locale: invoiceLocale,
		Poller: &azureai.PollerOptions{Interval: interval},
	})
	if err != nil {
		return err
	}
	op, err := poller.PollUntilDone(ctx)
	if err != nil {
		return err
	}
	if op.AnalyzeResult == nil {
		return fmt.Errorf("analyze operation returned no result")
	}
	printInvoice(w, op.AnalyzeResult)
	return nil
}

func printInvoice(w io.Writer, result *docintel.AnalyzeResult) {
	for i := range result.Documents {
		doc := &result.Documents[i]
		if f := doc.Field("VendorName"); f != nil {
			fmt.Fprintf(w, "\nVendor Name: %v, with confidence %v.\n", f.Value(), f.Confidence)
		}
		if f := doc.Field("CustomerName"); f != nil {
			fmt.Fprintf(w, "Customer Name: %v, with confidence %v.\n", f.Value(), f.Confidence)
		}
		if f := doc.Field("InvoiceTotal"); f != nil {
			total := f.Content
			if c := f.Currency(); c != nil {
				total = c.String()
			}
			fmt.Fprintf(w, "Invoice Total: %s, with confidence %v.\n", total, f.Confidence)
		}
	}
}
