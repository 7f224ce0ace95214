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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/poiesic/docsift"
	"github.com/poiesic/docsift/config"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "docsift",
		Usage: "Document library with keyword and semantic in-document search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Ingest files and summarize them",
				ArgsUsage: "PATH|GLOB...",
				Action:    addCommand,
				Flags:     append([]cli.Flag{dbFlag(), poolSizeFlag()}, aiFlags()...),
			},
			{
				Name:   "list",
				Usage:  "List stored documents",
				Action: listCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:      "search",
				Usage:     "Search inside one document, or inside every document when --id is omitted",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.Uint64Flag{
						Name:  "id",
						Usage: "Document ID to search",
					},
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Search mode (keyword, semantic)",
						Value:   "keyword",
					},
					&cli.DurationFlag{
						Name:  "latency",
						Usage: "Simulated semantic scoring delay (overrides the configuration)",
					},
				},
			},
			{
				Name:      "find",
				Usage:     "Find documents by name, summary or key point",
				ArgsUsage: "[QUERY]",
				Action:    findCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringSliceFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Keep documents matching any filter (pdf, docx, txt, processed, recent)",
					},
				},
			},
			{
				Name:   "summary",
				Usage:  "Show the summary of a document",
				Action: summaryCommand,
				Flags:  []cli.Flag{dbFlag(), idFlag()},
			},
			{
				Name:   "resummarize",
				Usage:  "Regenerate the summaries of all documents",
				Action: resummarizeCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to process in each batch (overrides the configuration)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per summary request (overrides the configuration)",
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff (overrides the configuration)",
					},
					&cli.BoolFlag{
						Name:  "resume",
						Usage: "Continue after the last checkpointed document",
					},
				}, aiFlags()...),
			},
			{
				Name:   "watch",
				Usage:  "Ingest files as they appear in a directory",
				Action: watchCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					poolSizeFlag(),
					&cli.StringFlag{
						Name:     "dir",
						Usage:    "Directory to watch",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "include",
						Usage: "Doublestar pattern of files to ingest (overrides the configuration)",
					},
					&cli.BoolFlag{
						Name:  "scan",
						Usage: "Ingest matching files that already exist",
					},
				}, aiFlags()...),
			},
			{
				Name:   "delete",
				Usage:  "Delete a document and its summary",
				Action: deleteCommand,
				Flags:  []cli.Flag{dbFlag(), idFlag()},
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to BadgerDB database directory (overrides the configuration)",
	}
}

func idFlag() cli.Flag {
	return &cli.Uint64Flag{
		Name:     "id",
		Usage:    "Document ID",
		Required: true,
	}
}

func poolSizeFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "pool-size",
		Usage: "Number of concurrent summarization workers (overrides the configuration)",
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "Chat service host URL (overrides the configuration)",
		},
		&cli.StringFlag{
			Name:  "ai-model",
			Usage: "Summarization model name (overrides the configuration)",
		},
		&cli.BoolFlag{
			Name:  "verbatim",
			Usage: "Use document text as its own summary instead of calling the model",
		},
	}
}

// loadConfig reads the --config file, if any, and applies command flags over it.
func loadConfig(c *cli.Context) (*config.File, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	if c.IsSet("db") {
		cfg.Database.Path = c.String("db")
	}
	if c.IsSet("pool-size") {
		cfg.Ingestion.PoolSize = c.Int("pool-size")
	}
	if c.IsSet("include") {
		cfg.Ingestion.Include = c.String("include")
	}
	if c.IsSet("latency") {
		cfg.Search.SemanticLatency.Duration = c.Duration("latency")
	}
	if c.IsSet("ai-host") {
		cfg.AI.Host = c.String("ai-host")
	}
	if c.IsSet("ai-model") {
		cfg.AI.Model = c.String("ai-model")
	}
	if c.IsSet("verbatim") {
		cfg.AI.Verbatim = c.Bool("verbatim")
	}
	if c.IsSet("batch-size") {
		cfg.Resummarize.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("max-retries") {
		cfg.Resummarize.MaxRetries = c.Int("max-retries")
	}
	if c.IsSet("retry-delay") {
		cfg.Resummarize.RetryDelay.Duration = c.Duration("retry-delay")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openDatabase(cfg *config.File) (*docsift.Database, error) {
	db, err := docsift.NewDatabase(cfg.Database.Path, docsift.WithAIConfig(cfg.AIConfig()))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
