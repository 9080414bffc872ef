// Copyright (c) Microsoft. All rights reserved.

// Command qna answers questions from a deployed Azure AI Language question
// answering project.
//
//	export AI_SERVICE_ENDPOINT=https://<resource>.cognitiveservices.azure.com/
//	export AI_SERVICE_KEY=<key>
//	export QA_PROJECT_NAME=LearnFAQ
//	export QA_DEPLOYMENT_NAME=production
//	go run .
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/microsoft/azure-ai-playground/go/internal/cli"
	"github.com/microsoft/azure-ai-playground/go/internal/config"
	"github.com/microsoft/azure-ai-playground/go/language"
)

var command = cli.Command{
	Name:        "qna",
	Description: "ask questions of a question answering knowledge base",
	Run:         run,
}

func main() { cli.Main(command) }

func run(ctx context.Context, env *cli.Env) error {
	client := language.NewQuestionAnsweringClient(config.Get("AI_SERVICE_ENDPOINT"), config.Get("AI_SERVICE_KEY"), env.ClientOptions()...)
	kb := &knowledgeBase{
		client:     client,
		project:    config.Get("QA_PROJECT_NAME"),
		deployment: config.Get("QA_DEPLOYMENT_NAME"),
		out:        env.Stdout,
	}
	loop := cli.Loop{
		In:       env.Stdin,
		Out:      env.Stdout,
		Prompt:   "\nQuestion:\n",
		Reminder: "Please enter a question.",
	}
	return loop.Run(ctx, kb.ask)
}

type knowledgeBase struct {
	client     *language.QuestionAnsweringClient
	project    string
	deployment string
	out        io.Writer
}

func (kb *knowledgeBase) ask(ctx context.Context, question string) error {
	res, err := kb.client.GetAnswers(ctx, question, kb.project, kb.deployment, nil)
	if err != nil {
		return err
	}
	printAnswers(kb.out, res.Answers)
	return nil
}

func printAnswers(w io.Writer, answers []language.Answer) {
	for _, a := range answers {
		fmt.Fprintln(w, a.Answer)
		fmt.Fprintf(w, "Confidence: %v\n", a.Confidence)
		fmt.Fprintf(w, "Source: %s\n", a.Source)
	}
}
