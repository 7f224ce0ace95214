// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL of the OpenAI-compatible chat API.
	// Example: "http://localhost:11434/v1" for a local server
	Host string

	// Model is the chat model used for summarization.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	Model string

	// MaxContentLength is the number of characters of a document sent to the
	// model. Longer content is cut and marked with "...".
	// Default: 8000
	MaxContentLength int

	// MinKeyPoints is how many grounded key points a model summary needs
	// before it is accepted. Below it the extractive summary is used.
	// Default: 3
	MinKeyPoints int

	// Verbatim skips the model and uses the document text as its own summary.
	Verbatim bool
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the chat service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the summarization model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithMaxContentLength sets how many characters are sent to the model.
func WithMaxContentLength(n int) ConfigOption {
	return func(c *Config) {
		c.MaxContentLength = n
	}
}

// WithMinKeyPoints sets the number of grounded key points a summary needs.
func WithMinKeyPoints(n int) ConfigOption {
	return func(c *Config) {
		c.MinKeyPoints = n
	}
}

// WithVerbatim turns verbatim summaries on or off.
func WithVerbatim(verbatim bool) ConfigOption {
	return func(c *Config) {
		c.Verbatim = verbatim
	}
}

// DefaultConfig returns a Config with sensible defaults for a local OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Host:             "http://localhost:11434/v1",
		Model:            "qwen2.5:3b",
		MaxContentLength: 8000,
		MinKeyPoints:     3,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434/v1"),
//	    WithModel("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the host if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		// Remove trailing slash if present before adding /v1
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.MaxContentLength < 1 {
		return errors.New("ai config: MaxContentLength must be positive")
	}
	if c.MinKeyPoints < 0 || c.MinKeyPoints > MaxKeyPoints {
		return errors.New("ai config: MinKeyPoints must be between 0 and 6")
	}
	return nil
}
