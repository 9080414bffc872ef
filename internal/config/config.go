// Copyright (c) Microsoft. All rights reserved.

// Package config loads the settings shared by the sample commands.
//
// Values come from three places, highest precedence first: the process
// environment, a .env file, and the env section of an optional YAML file.
// Lower-precedence sources only fill variables that are still unset.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the variable that points at a YAML settings file
// when no --config flag is given.
const EnvConfigPath = "PLAYGROUND_CONFIG"

// DefaultEnvFile is read when no other .env path is given.
const DefaultEnvFile = ".env"

// Settings holds process-wide options. Service endpoints and keys are not
// part of it; commands read those with [Get].
type Settings struct {
	Debug        bool              `yaml:"debug"`
	PollInterval time.Duration     `yaml:"poll_interval"`
	Timeout      time.Duration     `yaml:"timeout"`
	Credential   string            `yaml:"credential"`
	Env          map[string]string `yaml:"env"`
}

// Options selects the files [Load] reads.
type Options struct {
	// EnvFile is a dotenv file. A missing file is ignored.
	EnvFile string

	// ConfigFile is a YAML settings file. When empty, PLAYGROUND_CONFIG is
	// consulted; when both are empty no YAML is read. A named file that
	// does not exist is an error.
	ConfigFile string
}

// Load reads the .env and YAML files and applies their variables to the
// process environment without overriding anything already set.
func Load(opts Options) (*Settings, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	s := &Settings{}
	path := firstNonEmpty(opts.ConfigFile, os.Getenv(EnvConfigPath))
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	for k, v := range s.Env {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return nil, fmt.Errorf("set %s: %w", k, err)
		}
	}

	if Bool("DEBUG") {
		s.Debug = true
	}
	if v := os.Getenv("AZURE_CREDENTIAL"); v != "" {
		s.Credential = v
	}
	return s, nil
}

// Get returns the value of an environment variable. Missing values are not
// an error here: the request that needs them fails instead.
func Get(key string) string {
	return os.Getenv(key)
}

// GetOr returns the value of key, or fallback when it is unset or empty.
func GetOr(key, fallback string) string {
	return firstNonEmpty(os.Getenv(key), fallback)
}

// Bool reports whether key holds a true value (1, true, yes, on).
func Bool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	switch strings.ToLower(v) {
	case "yes", "y", "on":
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
