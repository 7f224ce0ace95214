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


package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/ingestion"
	"github.com/poiesic/docsift/resummarize"
	"github.com/poiesic/docsift/search"
)

// DefaultDatabasePath is used when neither the file nor a flag names a database.
const DefaultDatabasePath = "docsift.db"

// ErrInvalidConfig is returned when a configuration file cannot be decoded
// or holds values out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// File is the on-disk TOML configuration. Missing keys keep their defaults.
type File struct {
	Database    Database    `toml:"database"`
	Search      Search      `toml:"search"`
	AI          AI          `toml:"ai"`
	Ingestion   Ingestion   `toml:"ingestion"`
	Resummarize Resummarize `toml:"resummarize"`
}

type Database struct {
	Path string `toml:"path"`
}

type Search struct {
	SemanticLatency Duration `toml:"semantic_latency"`
	Concurrency     int      `toml:"concurrency"`
	Stemming        bool     `toml:"stemming"`

	// Synonyms replaces the built-in synonym table when non-empty.
	Synonyms map[string][]string `toml:"synonyms"`
}

type AI struct {
	Host             string `toml:"host"`
	Model            string `toml:"model"`
	MaxContentLength int    `toml:"max_content_length"`
	MinKeyPoints     int    `toml:"min_key_points"`
	Verbatim         bool   `toml:"verbatim"`
}

type Ingestion struct {
	PoolSize int      `toml:"pool_size"`
	MaxChars int      `toml:"max_chars"`
	Include  string   `toml:"include"`
	Debounce Duration `toml:"debounce"`
}

type Resummarize struct {
	BatchSize  int      `toml:"batch_size"`
	MaxRetries int      `toml:"max_retries"`
	RetryDelay Duration `toml:"retry_delay"`
}

// Duration is a time.Duration written as a Go duration string ("1.5s").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() *File {
	aiDefaults := ai.DefaultConfig()
	rsDefaults := resummarize.DefaultConfig()
	return &File{
		Database: Database{Path: DefaultDatabasePath},
		Search: Search{
			SemanticLatency: Duration{search.DefaultSemanticLatency},
			Concurrency:     search.DefaultConcurrency,
		},
		AI: AI{
			Host:             aiDefaults.Host,
			Model:            aiDefaults.Model,
			MaxContentLength: aiDefaults.MaxContentLength,
			MinKeyPoints:     aiDefaults.MinKeyPoints,
		},
		Ingestion: Ingestion{
			MaxChars: ingestion.DefaultMaxChars,
			Include:  ingestion.DefaultInclude,
			Debounce: Duration{ingestion.DefaultDebounce},
		},
		Resummarize: Resummarize{
			BatchSize:  rsDefaults.BatchSize,
			MaxRetries: rsDefaults.MaxRetries,
			RetryDelay: Duration{rsDefaults.RetryDelay},
		},
	}
}

// Load reads a TOML file over the defaults. Unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*File, error) {
	f := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks value ranges. A zero pool size means "pick from CPU count".
func (f *File) Validate() error {
	switch {
	case f.Database.Path == "":
		return fmt.Errorf("%w: database path is required", ErrInvalidConfig)
	case f.Search.SemanticLatency.Duration < 0:
		return fmt.Errorf("%w: %w", ErrInvalidConfig, search.ErrInvalidLatency)
	case f.Search.Concurrency < 1:
		return fmt.Errorf("%w: %w", ErrInvalidConfig, search.ErrInvalidConcurrency)
	case f.Ingestion.PoolSize < 0:
		return fmt.Errorf("%w: pool size cannot be negative", ErrInvalidConfig)
	case f.Ingestion.MaxChars < 1:
		return fmt.Errorf("%w: max chars must be positive", ErrInvalidConfig)
	case f.Ingestion.Debounce.Duration <= 0:
		return fmt.Errorf("%w: debounce must be positive", ErrInvalidConfig)
	case !doublestar.ValidatePattern(f.Ingestion.Include):
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ingestion.ErrInvalidPattern, f.Ingestion.Include)
	case f.Resummarize.BatchSize < 1:
		return fmt.Errorf("%w: batch size must be positive", ErrInvalidConfig)
	case f.Resummarize.MaxRetries < 1:
		return fmt.Errorf("%w: %w", ErrInvalidConfig, resummarize.ErrInvalidMaxAttempts)
	}
	if err := f.AIConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// AIConfig converts the [ai] section.
func (f *File) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithHost(f.AI.Host),
		ai.WithModel(f.AI.Model),
		ai.WithMaxContentLength(f.AI.MaxContentLength),
		ai.WithMinKeyPoints(f.AI.MinKeyPoints),
		ai.WithVerbatim(f.AI.Verbatim),
	)
}

// SearchOptions converts the [search] section.
func (f *File) SearchOptions() []search.Option {
	opts := []search.Option{
		search.WithSemanticLatency(f.Search.SemanticLatency.Duration),
		search.WithConcurrency(f.Search.Concurrency),
	}
	if len(f.Search.Synonyms) > 0 {
		opts = append(opts, search.WithSynonyms(search.NewSynonymTable(f.Search.Synonyms)))
	}
	if f.Search.Stemming {
		opts = append(opts, search.WithStemming())
	}
	return opts
}

// PipelineOptions converts the [ingestion] section.
func (f *File) PipelineOptions() []ingestion.Option {
	opts := []ingestion.Option{ingestion.WithMaxChars(f.Ingestion.MaxChars)}
	if f.Ingestion.PoolSize > 0 {
		opts = append(opts, ingestion.WithPoolSize(f.Ingestion.PoolSize))
	}
	return opts
}

// WatcherOptions converts the watcher settings of the [ingestion] section.
func (f *File) WatcherOptions() []ingestion.WatcherOption {
	return []ingestion.WatcherOption{
		ingestion.WithInclude(f.Ingestion.Include),
		ingestion.WithDebounce(f.Ingestion.Debounce.Duration),
	}
}

// ResummarizeConfig converts the [resummarize] section.
func (f *File) ResummarizeConfig() *resummarize.Config {
	cfg := resummarize.DefaultConfig()
	cfg.BatchSize = f.Resummarize.BatchSize
	cfg.MaxRetries = f.Resummarize.MaxRetries
	cfg.RetryDelay = f.Resummarize.RetryDelay.Duration
	return cfg
}
