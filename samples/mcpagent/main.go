// Copyright (c) Microsoft. All rights reserved.

// Command mcpagent creates an agent connected to the Microsoft Learn MCP
// server, approves its tool calls, and prints the answer.
//
//	export PROJECT_ENDPOINT=https://<resource>.services.ai.azure.com/api/projects/<project>
//	export MODEL_DEPLOYMENT_NAME=gpt-4o
//	go run .
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/internal/cli"
	"github.com/microsoft/azure-ai-playground/go/internal/config"
	"github.com/microsoft/azure-ai-playground/go/openai"
	"github.com/microsoft/azure-ai-playground/go/projects"
)

const (
	agentName    = "MyAgent"
	serverLabel  = "api-specs"
	serverURL    = "https://learn.microsoft.com/api/mcp"
	instructions = "You are a helpful agent that can use MCP tools to assist users. Use the available MCP tools to answer questions and perform tasks."

	defaultQuestion = "Give me the Azure CLI commands to create an Azure Container App with a managed identity."
)

var question string

var command = cli.Command{
	Name:        "mcpagent",
	Description: "answer a question with an agent backed by a remote MCP server",
	Flags: func(fs *pflag.FlagSet) {
		fs.StringVar(&question, "question", defaultQuestion, "question to send to the agent")
	},
	Run: run,
}

func main() { cli.Main(command) }

func run(ctx context.Context, env *cli.Env) error {
	cred, err := env.Credential()
	if err != nil {
		return err
	}
	project := projects.NewClient(config.Get("PROJECT_ENDPOINT"), cred,
		projects.WithHTTPClient(env.HTTPClient()),
		projects.WithLogger(env.Logger),
	)
	return runAgent(ctx, env.Stdout, env.Logger, project, config.Get("MODEL_DEPLOYMENT_NAME"), question)
}

func runAgent(ctx context.Context, w io.Writer, logger *slog.Logger, project *projects.Client, model, question string) (err error) {
	oc := project.OpenAIClient()
	cleanup := azureai.NewCleanup(logger)
	defer func() {
		err = errors.Join(err, cleanup.Run(context.WithoutCancel(ctx)))
	}()

	agent, err := project.CreateAgentVersion(ctx, agentName, projects.PromptAgentDefinition{
		Model:        model,
		Instructions: instructions,
		Tools: []projects.Tool{&projects.MCPTool{
			ServerLabel:     serverLabel,
			ServerURL:       serverURL,
			RequireApproval: projects.ApprovalAlways,
		}},
	})
	if err != nil {
		return err
	}
	cleanup.Add("agent", agent.Name+":"+agent.Version, func(ctx context.Context) error {
		if err := project.DeleteAgentVersion(ctx, agent.Name, agent.Version); err != nil {
			return err
		}
		fmt.Fprintln(w, "Agent deleted")
		return nil
	})
	fmt.Fprintf(w, "Agent created (id: %s, name: %s, version: %s)\n", agent.ID, agent.Name, agent.Version)

	conv, err := oc.CreateConversation(ctx)
	if err != nil {
		return err
	}
	cleanup.Add("conversation", conv.ID, func(ctx context.Context) error {
		if err := oc.DeleteConversation(ctx, conv.ID); err != nil {
			return err
		}
		fmt.Fprintln(w, "Conversation deleted")
		return nil
	})
	fmt.Fprintf(w, "Created conversation (id: %s)\n", conv.ID)

	resp, err := oc.CreateResponse(ctx, &openai.ResponseRequest{
		Conversation: conv.ID,
		Input:        question,
		Agent:        agent.Reference(),
	})
	if err != nil {
		return err
	}

	approvals := approveRequests(resp, serverLabel)
	input, err := json.Marshal(approvals)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Final input:")
	fmt.Fprintln(w, string(input))

	resp, err = oc.CreateResponse(ctx, &openai.ResponseRequest{
		Input:              approvals,
		PreviousResponseID: resp.ID,
		Agent:              agent.Reference(),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nAgent response: %s\n", resp.OutputText())
	return nil
}

// approveRequests approves every pending tool call on the given MCP server.
// Requests for other servers are left unanswered.
func approveRequests(resp *openai.Response, label string) []openai.InputItem {
	items := []openai.InputItem{}
	for _, req := range resp.MCPApprovalRequests() {
		if req.ServerLabel != label || req.RequestID == "" {
			continue
		}
		items = append(items, openai.NewMCPApprovalResponse(req.Approve(true)))
	}
	return items
}
