// Copyright (c) Microsoft. All rights reserved.

// Command visionchat answers questions about an image with a multimodal
// chat model deployed in an Azure AI Foundry project.
//
//	export PROJECT_CONNECTION=https://<resource>.services.ai.azure.com/api/projects/<project>
//	export MODEL_DEPLOYMENT=Phi-4-multimodal-instruct
//	go run .
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/pflag"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/internal/cli"
	"github.com/microsoft/azure-ai-playground/go/internal/config"
	"github.com/microsoft/azure-ai-playground/go/openai"
	"github.com/microsoft/azure-ai-playground/go/projects"
)

const (
	systemMessage = "You are an AI assistant in a grocery store that sells fruit. You provide detailed answers to questions about produce."

	defaultImageURL   = "https://github.com/MicrosoftLearning/mslearn-ai-vision/raw/refs/heads/main/Labfiles/gen-ai-vision/orange.jpeg"
	defaultAPIVersion = "2024-10-21"
)

var flags struct {
	imageURL    string
	imageFormat string
	apiVersion  string
}

var command = cli.Command{
	Name:        "visionchat",
	Description: "chat about an image with a multimodal model",
	Flags: func(fs *pflag.FlagSet) {
		fs.StringVar(&flags.imageURL, "image", defaultImageURL, "URL of the image to discuss")
		fs.StringVar(&flags.imageFormat, "image-format", "jpeg", "image media subtype used in the data URL")
		fs.StringVar(&flags.apiVersion, "api-version", defaultAPIVersion, "OpenAI API version")
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
	project := projects.NewClient(config.Get("PROJECT_CONNECTION"), cred,
		projects.WithHTTPClient(env.HTTPClient()),
		projects.WithLogger(env.Logger),
	)
	chat := &visionChat{
		client:      project.OpenAIClient(openai.WithAPIVersion(flags.apiVersion)),
		httpClient:  env.HTTPClient(),
		model:       config.Get("MODEL_DEPLOYMENT"),
		imageURL:    flags.imageURL,
		imageFormat: flags.imageFormat,
		out:         env.Stdout,
	}
	loop := cli.Loop{
		In:       env.Stdin,
		Out:      env.Stdout,
		Prompt:   "\nAsk a question about the image\n(or type 'quit' to exit)\n",
		Reminder: "Please enter a question.\n",
	}
	return loop.Run(ctx, chat.ask)
}

type visionChat struct {
	client      *openai.Client
	httpClient  *http.Client
	model       string
	imageURL    string
	imageFormat string
	out         io.Writer
}

func (v *visionChat) ask(ctx context.Context, prompt string) error {
	fmt.Fprint(v.out, "Getting a response ...\n\n")

	dataURL, err := openai.FetchImageDataURL(ctx, v.httpClient, v.imageURL, v.imageFormat)
	if err != nil {
		return err
	}
	resp, err := v.client.ChatCompletion(ctx, []azureai.Message{
		azureai.NewSystemMessage(systemMessage),
		azureai.NewUserMessageWithImage(prompt, dataURL),
	}, &openai.ChatOptions{Model: v.model})
	if err != nil {
		return err
	}
	fmt.Fprintln(v.out, resp.Text())
	return nil
}
