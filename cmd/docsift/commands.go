package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/ingestion"
	"github.com/poiesic/docsift/search"
	"github.com/urfave/cli/v2"
)

const timeLayout = "2006-01-02 15:04"

func addCommand(c *cli.Context) error {
	ctx := c.Context
	if c.NArg() == 0 {
		return fmt.Errorf("at least one path or pattern is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	files, err := ingestion.ExpandPatterns(c.Args().Slice()...)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match %s", strings.Join(c.Args().Slice(), " "))
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(cfg.PipelineOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}

	var added, unchanged, failed int
	for _, path := range files {
		doc, err := pipeline.IngestFile(ctx, path)
		switch {
		case errors.Is(err, ingestion.ErrUnchanged):
			unchanged++
			fmt.Fprintf(c.App.ErrWriter, "%s: unchanged (id %d)\n", path, doc.Id)
		case errors.Is(err, ingestion.ErrNoText):
			failed++
			fmt.Fprintf(c.App.ErrWriter, "%s: no text could be extracted (id %d)\n", path, doc.Id)
		case err != nil:
			failed++
			fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", path, err)
		default:
			added++
			fmt.Fprintf(c.App.Writer, "%d\t%s\n", doc.Id, doc.Name)
		}
	}

	// Waits for the queued summaries.
	pipeline.Release()

	fmt.Fprintf(c.App.ErrWriter, "Added %d document(s), %d unchanged, %d failed\n", added, unchanged, failed)
	if added == 0 && unchanged == 0 {
		return fmt.Errorf("no documents were added")
	}
	return nil
}

func listCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	docs, err := db.DocumentRepository().ListDocuments(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	printDocuments(c.App.Writer, docs)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := c.Context
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a query is required")
	}
	mode, err := core.ParseSearchMode(c.String("mode"))
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher(cfg.SearchOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	if !c.IsSet("id") {
		hits, err := searcher.SearchDocuments(ctx, query, mode)
		if err != nil {
			return err
		}
		for _, hit := range hits {
			fmt.Fprintf(c.App.Writer, "%d\t%s\t%d match(es)\n", hit.Document.Id, hit.Document.Name, len(hit.Results))
			printResults(c.App.Writer, hit.Results)
		}
		return nil
	}

	doc, err := db.DocumentRepository().GetDocument(ctx, core.ID(c.Uint64("id")))
	if err != nil {
		return fmt.Errorf("failed to load document %d: %w", c.Uint64("id"), err)
	}
	results, err := searcher.Search(ctx, doc.Content, doc.Title, query, mode)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(c.App.ErrWriter, "No matches")
		return nil
	}
	printResults(c.App.Writer, results)
	return nil
}

func findCommand(c *cli.Context) error {
	var filters []search.LibraryFilter
	for _, name := range c.StringSlice("filter") {
		f, err := search.ParseLibraryFilter(name)
		if err != nil {
			return err
		}
		filters = append(filters, f)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher(cfg.SearchOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	docs, err := searcher.FindDocuments(c.Context, strings.Join(c.Args().Slice(), " "), filters...)
	if err != nil {
		return err
	}
	printDocuments(c.App.Writer, docs)
	return nil
}

func summaryCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id := core.ID(c.Uint64("id"))
	summary, err := db.SummaryRepository().GetSummary(c.Context, id)
	if err != nil {
		return fmt.Errorf("failed to load summary of document %d: %w", id, err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "%s\n\n", summary.Title)
	for _, point := range summary.KeyPoints {
		fmt.Fprintf(w, "  - %s\n", point)
	}
	fmt.Fprintf(w, "\nWords: %d  Reading time: %s  Sentiment: %s\n", summary.WordCount, summary.ReadingTime, summary.Sentiment)
	fmt.Fprintf(w, "Categories: %s\n\n%s\n", strings.Join(summary.Categories, ", "), summary.FullSummary)
	return nil
}

func resummarizeCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.Int("report-interval") <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	rsConfig := cfg.ResummarizeConfig()
	rsConfig.ReportInterval = c.Int("report-interval")
	rsConfig.Resume = c.Bool("resume")

	resummarizer, err := db.NewResummarizer(rsConfig, c.App.ErrWriter)
	if err != nil {
		return fmt.Errorf("failed to create resummarizer: %w", err)
	}

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", cfg.Database.Path)
	fmt.Fprintf(c.App.ErrWriter, "Model: %s\n\n", cfg.AI.Model)

	result, err := resummarizer.Run(c.Context)
	if err != nil {
		return fmt.Errorf("resummarizing failed: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Summarized %d, skipped %d, failed %d of %d document(s) in %s\n",
		result.Summarized, result.Skipped, result.Failed, result.Total, result.Elapsed.Round(time.Millisecond))
	return nil
}

func watchCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(cfg.PipelineOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	opts := append(cfg.WatcherOptions(), ingestion.WithInitialScan(c.Bool("scan")))
	watcher, err := ingestion.NewWatcher(pipeline, c.String("dir"), opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.ErrWriter, "Watching %s for %s\n", c.String("dir"), cfg.Ingestion.Include)
	return watcher.Run(c.Context)
}

func deleteCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id := core.ID(c.Uint64("id"))
	if err := db.DeleteDocument(c.Context, id); err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "Deleted document %d\n", id)
	return nil
}

func printDocuments(w io.Writer, docs []*core.Document) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tUPLOADED\tNAME")
	for _, doc := range docs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", doc.Id, doc.Status, doc.UploadedAt.Local().Format(timeLayout), doc.Name)
	}
	tw.Flush()
}

func printResults(w io.Writer, results []core.SearchResult) {
	for _, r := range results {
		fmt.Fprintf(w, "  [%d:%d] %s\n", r.StartIndex, r.EndIndex, r.Context)
	}
}
