// Copyright (c) Microsoft. All rights reserved.

// Command simpleagent asks an existing Azure AI Foundry agent what it can
// help with.
//
//	export PROJECT_ENDPOINT=https://<resource>.services.ai.azure.com/api/projects/<project>
//	export AGENT_NAME=expense-agent   # optional
//	az login
//	go run .
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/microsoft/azure-ai-playground/go/internal/cli"
	"github.com/microsoft/azure-ai-playground/go/internal/config"
	"github.com/microsoft/azure-ai-playground/go/openai"
	"github.com/microsoft/azure-ai-playground/go/projects"
)

const (
	defaultAgentName = "expense-agent"
	question         = "Tell me what you can help with."
)

var agentFlag string

var command = cli.Command{
	Name:        "simpleagent",
	Description: "ask an existing agent what it can help with",
	Flags: func(fs *pflag.FlagSet) {
		fs.StringVar(&agentFlag, "agent", "", "agent name (default $AGENT_NAME or "+defaultAgentName+")")
	},
	Run: run,
}

func main() { cli.Main(command) }

func run(ctx context.Context, env *cli.Env) error {
	cred, err := env.Credential()
	if err != nil {
		return err
	}
	client := projects.NewClient(config.Get("PROJECT_ENDPOINT"), cred,
		projects.WithHTTPClient(env.HTTPClient()),
		projects.WithLogger(env.Logger),
	)
	name := agentFlag
	if name == "" {
		name = config.GetOr("AGENT_NAME", defaultAgentName)
	}
	return askAgent(ctx, env.Stdout, client, name)
}

func askAgent(ctx context.Context, w io.Writer, client *projects.Client, name string) error {
	agent, err := client.GetAgent(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Retrieved agent: %s\n", agent.Name)

	resp, err := client.OpenAIClient().CreateResponse(ctx, &openai.ResponseRequest{
		Input: []openai.InputItem{openai.NewUserInput(question)},
		Agent: agent.Reference(),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Response output: %s\n", resp.OutputText())
	return nil
}
