// Copyright (c) Microsoft. All rights reserved.

// Package cli holds the scaffolding shared by the sample commands: flag
// parsing, configuration and logger setup, the single top-level error
// boundary, and the interactive prompt loop.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/spf13/pflag"

	"github.com/microsoft/azure-ai-playground/go/azureai"
	"github.com/microsoft/azure-ai-playground/go/internal/config"
)

// Command describes one sample program.
type Command struct {
	Name        string
	Description string

	// Flags registers command-specific flags. May be nil.
	Flags func(fs *pflag.FlagSet)

	// Run performs the work. Its error is the only failure path.
	Run func(ctx context.Context, env *Env) error
}

// Env is what a command needs from its surroundings.
type Env struct {
	Settings *config.Settings
	Logger   *slog.Logger
	Stdin    io.Reader
	Stdout   io.Writer
	Args     []string
}

// HTTPClient returns a client honouring the configured request timeout.
func (e *Env) HTTPClient() *http.Client {
	return &http.Client{Timeout: e.Settings.Timeout}
}

// PollInterval returns the configured operation poll interval, or zero for
// the library default.
func (e *Env) PollInterval() time.Duration {
	return e.Settings.PollInterval
}

// Credential builds the token credential selected by the settings.
func (e *Env) Credential() (azcore.TokenCredential, error) {
	return azureai.NewCredential(azureai.CredentialKind(e.Settings.Credential))
}

// ClientOptions returns the azureai options every service client shares.
func (e *Env) ClientOptions() []azureai.ClientOption {
	return []azureai.ClientOption{
		azureai.WithHTTPClient(e.HTTPClient()),
		azureai.WithLogger(e.Logger),
	}
}

// Main runs cmd with the process arguments and exits with its status.
func Main(cmd Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := Execute(ctx, cmd, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Execute parses args, loads configuration, runs cmd, and reports any
// failure on stderr. It returns the process exit status.
func Execute(ctx context.Context, cmd Command, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var envFile, configFile string
	var debug bool
	var timeout time.Duration

	fs := pflag.NewFlagSet(cmd.Name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file with endpoints and keys")
	fs.StringVar(&configFile, "config", "", "YAML settings file (default $"+config.EnvConfigPath+")")
	fs.BoolVar(&debug, "debug", false, "log HTTP exchanges and operation progress")
	fs.DurationVar(&timeout, "timeout", 0, "per-request timeout (0 = none)")
	if cmd.Flags != nil {
		cmd.Flags(fs)
	}
	fs.Usage = func() {
		fmt.Fprintf(stderr, "%s: %s\n\nUsage:\n  %s [flags]\n\nFlags:\n%s", cmd.Name, cmd.Description, cmd.Name, fs.FlagUsages())
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	settings, err := config.Load(config.Options{EnvFile: envFile, ConfigFile: configFile})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if debug {
		settings.Debug = true
	}
	if timeout > 0 {
		settings.Timeout = timeout
	}

	logger := NewLogger(stderr, settings.Debug).With("command", cmd.Name)
	slog.SetDefault(logger)

	env := &Env{
		Settings: settings,
		Logger:   logger,
		Stdin:    stdin,
		Stdout:   stdout,
		Args:     fs.Args(),
	}
	if err := cmd.Run(ctx, env); err != nil {
		logger.DebugContext(ctx, "command failed", "error", err)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
