// Copyright (c) Microsoft. All rights reserved.

// Command imagegen generates images from prompts with a DALL-E deployment
// and saves them as images/image_<n>.png.
//
//	export ENDPOINT=https://<resource>.openai.azure.com/
//	export MODEL_DEPLOYMENT=dall-e-3
//	export API_VERSION=2024-02-01
//	go run .
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/microsoft/azure-ai-playground/go/internal/cli"
	"github.com/microsoft/azure-ai-playground/go/internal/config"
	"github.com/microsoft/azure-ai-playground/go/openai"
)

var outDir string

var command = cli.Command{
	Name:        "imagegen",
	Description: "generate images from prompts",
	Flags: func(fs *pflag.FlagSet) {
		fs.StringVar(&outDir, "out", "images", "directory for generated images")
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
	dir, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}
	client := openai.New("",
		openai.WithBaseURL(strings.TrimRight(config.Get("ENDPOINT"), "/")+"/openai"),
		openai.WithAPIVersion(config.Get("API_VERSION")),
		openai.WithAzureCredential(cred),
		openai.WithAzureDeployments(),
		openai.WithModel(config.Get("MODEL_DEPLOYMENT")),
		openai.WithHTTPClient(env.HTTPClient()),
		openai.WithLogger(env.Logger),
	)
	g := &generator{
		client:     client,
		httpClient: env.HTTPClient(),
		store:      &imageStore{dir: dir},
		out:        env.Stdout,
	}
	loop := cli.Loop{
		In:       env.Stdin,
		Out:      env.Stdout,
		Prompt:   "Enter the prompt (or type 'quit' to exit): ",
		Reminder: "Please enter a prompt.",
	}
	return loop.Run(ctx, g.generate)
}

type generator struct {
	client     *openai.Client
	httpClient *http.Client
	store      *imageStore
	out        io.Writer
}

func (g *generator) generate(ctx context.Context, prompt string) error {
	resp, err := g.client.GenerateImage(ctx, &openai.ImageRequest{Prompt: prompt, N: 1})
	if err != nil {
		return err
	}
	if len(resp.Data) == 0 {
		return fmt.Errorf("no image returned for prompt %q", prompt)
	}
	data, err := resp.Data[0].Bytes(ctx, g.httpClient)
	if err != nil {
		return err
	}
	path, err := g.store.save(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out, "Image saved as %s\n", path)
	return nil
}

// imageStore writes images as image_1.png, image_2.png, ... in dir,
// numbering from 1 for each run.
type imageStore struct {
	dir  string
	next int
}

func (s *imageStore) save(data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	path := filepath.Join(s.dir, fmt.Sprintf("image_%d.png", s.next+1))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	s.next++
	return path, nil
}
