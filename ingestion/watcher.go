package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/poiesic/docsift/core"
)

// DefaultInclude selects the file types the extractor reads well.
const DefaultInclude = "**/*.{txt,md,csv,json,docx}"

// DefaultDebounce is how long a file must stay unchanged before it is ingested.
const DefaultDebounce = 500 * time.Millisecond

// FileIngester ingests a file from disk. *Pipeline implements it.
type FileIngester interface {
	IngestFile(ctx context.Context, path string) (*core.Document, error)
}

// Watcher ingests files as they appear or change below a directory.
// Bursts of write events for one file are collapsed into a single ingestion.
type Watcher struct {
	ingester    FileIngester
	root        string
	include     string
	debounce    time.Duration
	initialScan bool
	logger      *slog.Logger

	mu      sync.Mutex
	pending map[string]time.Time
	seen    map[string]core.ID // content fingerprint of the last ingested version
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher) error

// WithInclude sets the doublestar pattern, relative to the watched
// directory, that files must match.
func WithInclude(pattern string) WatcherOption {
	return func(w *Watcher) error {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
		w.include = pattern
		return nil
	}
}

// WithDebounce sets the quiet period before a changed file is ingested.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) error {
		if d <= 0 {
			return fmt.Errorf("debounce must be positive, got %s", d)
		}
		w.debounce = d
		return nil
	}
}

// WithInitialScan ingests matching files that already exist when Run starts.
func WithInitialScan(scan bool) WatcherOption {
	return func(w *Watcher) error {
		w.initialScan = scan
		return nil
	}
}

// WithWatcherLogger sets a custom logger.
// Default is slog.Default().
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
		return nil
	}
}

// NewWatcher creates a watcher for root. Run starts it.
func NewWatcher(ingester FileIngester, root string, opts ...WatcherOption) (*Watcher, error) {
	if ingester == nil {
		return nil, errors.New("file ingester required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	w := &Watcher{
		ingester: ingester,
		root:     filepath.Clean(root),
		include:  DefaultInclude,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		pending:  make(map[string]time.Time),
		seen:     make(map[string]core.ID),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	w.logger = w.logger.With("component", "watcher", "dir", w.root)
	return w, nil
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := w.addTree(fw, w.root); err != nil {
		return err
	}

	if w.initialScan {
		if err := w.scan(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(max(w.debounce/2, time.Millisecond))
	defer ticker.Stop()

	w.logger.Info("watching for documents", "include", w.include)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(fw, ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) handle(fw *fsnotify.Watcher, ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(ev.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if ev.Has(fsnotify.Create) {
			if err := w.addTree(fw, ev.Name); err != nil {
				w.logger.Warn("error watching directory", "path", ev.Name, "err", err)
			}
		}
		return
	}

	if w.matches(ev.Name) {
		w.touch(ev.Name, time.Now())
	}
}

// touch records a change to path at t, restarting its quiet period.
func (w *Watcher) touch(path string, t time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = t
}

// ready removes and returns the paths that have been quiet since before now-debounce.
func (w *Watcher) ready(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var paths []string
	for path, changed := range w.pending {
		if now.Sub(changed) >= w.debounce {
			paths = append(paths, path)
			delete(w.pending, path)
		}
	}
	return paths
}

func (w *Watcher) flush(ctx context.Context, now time.Time) {
	for _, path := range w.ready(now) {
		w.ingest(ctx, path)
	}
}

// ingest hands path to the ingester unless its content is unchanged since
// the last successful ingestion. Editors often rewrite identical bytes.
func (w *Watcher) ingest(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("error reading file", "path", path, "err", err)
		return
	}
	fingerprint := core.IDFromContent(string(data))

	w.mu.Lock()
	last, ok := w.seen[path]
	w.mu.Unlock()
	if ok && last == fingerprint {
		w.logger.Debug("file unchanged, skipping", "path", path)
		return
	}

	doc, err := w.ingester.IngestFile(ctx, path)
	if err != nil && !errors.Is(err, ErrUnchanged) {
		w.logger.Error("error ingesting file", "path", path, "err", err)
		return
	}

	w.mu.Lock()
	w.seen[path] = fingerprint
	w.mu.Unlock()
	if err != nil {
		w.logger.Debug("document already stored", "path", path, "id", doc.Id)
		return
	}
	w.logger.Info("ingested file", "path", path, "id", doc.Id)
}

func (w *Watcher) scan(ctx context.Context) error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() && w.matches(path) {
			w.ingest(ctx, path)
		}
		return nil
	})
}

// matches reports whether path, taken relative to the watched directory,
// matches the include pattern.
func (w *Watcher) matches(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	ok, err := doublestar.Match(w.include, filepath.ToSlash(rel))
	return err == nil && ok
}
