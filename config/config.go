/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads the settings of the demo service from the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/registry"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prefix is the environment variable prefix, e.g. APIERRORS_HTTP_ADDR.
const Prefix = "APIERRORS"

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ErrSessionKeyTooShort is returned for a session key under 32 bytes.
var ErrSessionKeyTooShort = errors.New("config: SESSION_KEY must be at least 32 bytes")

// Config holds the demo service settings.
type Config struct {
	Service     string      `envconfig:"SERVICE" default:"apierrors-demo"`
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	HTTPAddr          string `envconfig:"HTTP_ADDR" default:":8080"`
	CorrelationHeader string `envconfig:"CORRELATION_HEADER" default:"X-Request-ID"`

	// Pages enables HTML error pages for browsers; off serves JSON only.
	Pages bool `envconfig:"PAGES" default:"true"`
	// ViewsDir holds application error pages (errors/<status>.html). Empty
	// uses only the built-in pages.
	ViewsDir      string `envconfig:"VIEWS_DIR" default:""`
	ViewNamespace string `envconfig:"VIEW_NAMESPACE" default:"apierrors"`

	// RulesFile is a YAML registry rules document; empty uses the defaults.
	RulesFile string `envconfig:"RULES_FILE" default:""`

	// SessionKey signs the flash cookie; empty disables flashing.
	SessionKey  string `envconfig:"SESSION_KEY" default:""`
	SessionName string `envconfig:"SESSION_NAME" default:"apierrors"`
}

// New creates a Config by parsing APIERRORS_* environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("service", cfg.Service).
		Str("environment", string(cfg.Environment)).
		Str("http_addr", cfg.HTTPAddr).
		Str("views_dir", cfg.ViewsDir).
		Str("rules_file", cfg.RulesFile).
		Bool("flash", cfg.SessionKey != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	switch c.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("config: unsupported ENVIRONMENT: %s", c.Environment)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	if c.SessionKey != "" && len(c.SessionKey) < 32 {
		return ErrSessionKeyTooShort
	}
	return nil
}

// Level returns the parsed log level, info when unparsable.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Registry builds the status registry, applying RulesFile when set.
func (c *Config) Registry() (apis.Registry, error) {
	if c.RulesFile == "" {
		return registry.Default(), nil
	}
	f, err := os.Open(c.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("config: rules file: %w", err)
	}
	defer f.Close()

	opt, err := registry.LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("config: rules file %s: %w", c.RulesFile, err)
	}
	return registry.New(opt)
}
