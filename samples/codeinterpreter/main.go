// Copyright (c) Microsoft. All rights reserved.

// Command codeinterpreter uploads a data file and chats with an agent that
// analyzes it using the code interpreter tool. The agent and conversation
// are deleted on exit.
//
//	export PROJECT_ENDPOINT=https://<resource>.services.ai.azure.com/api/projects/<project>
//	export MODEL_DEPLOYMENT_NAME=gpt-4o
//	go run . --data data.txt
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/internal/cli"
	"github.com/microsoft/azure-ai-playground/go/internal/config"
	"github.com/microsoft/azure-ai-playground/go/openai"
	"github.com/microsoft/azure-ai-playground/go/projects"
)

const (
	agentName    = "data-agent"
	instructions = "You are an AI agent that analyzes the data in the file that has been uploaded. Use Python to calculate statistical metrics as necessary."
)

var dataPath string

var command = cli.Command{
	Name:        "codeinterpreter",
	Description: "analyze a data file with a code interpreter agent",
	Flags: func(fs *pflag.FlagSet) {
		fs.StringVar(&dataPath, "data", "data.txt", "data file to upload and analyze")
	},
	Run: run,
}

func main() { cli.Main(command) }

func run(ctx context.Context, env *cli.Env) error {
	cli.ClearScreen(env.Stdout)

	cred, err := env.Credential()
	if err != nil {
		return err
	}
	project := projects.NewClient(config.Get("PROJECT_ENDPOINT"), cred,
		projects.WithHTTPClient(env.HTTPClient()),
		projects.WithLogger(env.Logger),
	)
	s := &session{
		project: project,
		openai:  project.OpenAIClient(),
		out:     env.Stdout,
		logger:  env.Logger,
	}
	return s.run(ctx, env.Stdin, dataPath, config.Get("MODEL_DEPLOYMENT_NAME"))
}

// session holds the remote state of one chat run.
type session struct {
	project *projects.Client
	openai  *openai.Client
	out     io.Writer
	logger  *slog.Logger

	agent          *projects.AgentVersion
	conversationID string
}

func (s *session) run(ctx context.Context, in io.Reader, dataPath, model string) (err error) {
	cleanup := azureai.NewCleanup(s.logger)
	defer func() {
		err = errors.Join(err, cleanup.Run(context.WithoutCancel(ctx)))
	}()

	data, err := os.ReadFile(dataPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, string(data)+"\n")

	file, err := s.openai.UploadFile(ctx, dataPath, openai.PurposeAssistants)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Uploaded %s\n", file.Filename)

	agent, err := s.project.CreateAgentVersion(ctx, agentName, projects.PromptAgentDefinition{
		Model:        model,
		Instructions: instructions,
		Tools:        []projects.Tool{projects.NewCodeInterpreterTool(file.ID)},
	})
	if err != nil {
		return err
	}
	s.agent = agent
	cleanup.Add("agent", agent.Name+":"+agent.Version, func(ctx context.Context) error {
		if err := s.project.DeleteAgentVersion(ctx, agent.Name, agent.Version); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Agent deleted")
		return nil
	})
	fmt.Fprintf(s.out, "Using agent: %s\n", agent.Name)

	conv, err := s.openai.CreateConversation(ctx)
	if err != nil {
		return err
	}
	s.conversationID = conv.ID
	cleanup.Add("conversation", conv.ID, func(ctx context.Context) error {
		if err := s.openai.DeleteConversation(ctx, conv.ID); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Conversation deleted")
		return nil
	})

	loop := cli.Loop{
		In:       in,
		Out:      s.out,
		Prompt:   "Enter a prompt (or type 'quit' to exit): ",
		Reminder: "Please enter a prompt.",
	}
	if err := loop.Run(ctx, s.ask); err != nil {
		return err
	}
	return s.printLog(ctx)
}

func (s *session) ask(ctx context.Context, prompt string) error {
	if _, err := s.openai.AddConversationItems(ctx, s.conversationID, openai.NewUserInput(prompt)); err != nil {
		return err
	}
	resp, err := s.openai.CreateResponse(ctx, &openai.ResponseRequest{
		Conversation: s.conversationID,
		Agent:        s.agent.Reference(),
		Input:        "",
	})
	switch {
	case resp != nil && resp.Status == openai.ResponseFailed:
		fmt.Fprintf(s.out, "Response failed: %s\n", describeFailure(resp))
	case err != nil:
		return err
	}
	fmt.Fprintf(s.out, "Agent: %s\n", resp.OutputText())
	return nil
}

func describeFailure(resp *openai.Response) string {
	if resp.Error == nil {
		return "unknown error"
	}
	return resp.Error.Error()
}

func (s *session) printLog(ctx context.Context) error {
	fmt.Fprint(s.out, "\nConversation Log:\n\n")
	items, err := s.openai.ListConversationItems(ctx, s.conversationID, nil)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.Type != openai.ItemTypeMessage || len(it.Content) == 0 {
			continue
		}
		s.logger.DebugContext(ctx, "conversation item", "id", it.ID, "content_type", it.Content[0].Type)
		fmt.Fprintf(s.out, "%s: %s\n\n", strings.ToUpper(it.Role), it.Content[0].Text)
	}
	return nil
}
