package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const reportText = "Quarterly revenue grew by ten percent.\n\nCosts stayed flat across the year."

// runApp runs the CLI with args and returns what it wrote to stdout and stderr.
func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"docsift"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db")
	docsDir := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "report.txt"), []byte(reportText), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "empty.txt"), []byte("   \n"), 0o644))

	out, errOut, err := runApp(t, "add", "--db", dbPath, "--verbatim", filepath.Join(docsDir, "*.txt"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "Added 1 document(s), 0 unchanged, 1 failed")
	fields := strings.Fields(out)
	require.Len(t, fields, 2)
	id := fields[0]
	assert.Equal(t, "report.txt", fields[1])

	t.Run("list", func(t *testing.T) {
		out, _, err := runApp(t, "list", "--db", dbPath)
		require.NoError(t, err)
		assert.Contains(t, out, "report.txt")
		assert.Contains(t, out, "completed")
		assert.Contains(t, out, "empty.txt")
		assert.Contains(t, out, "failed")
	})

	t.Run("search one document", func(t *testing.T) {
		out, _, err := runApp(t, "search", "--db", dbPath, "--id", id, "revenue")
		require.NoError(t, err)
		assert.Contains(t, out, "[10:17]")
	})

	t.Run("search all documents", func(t *testing.T) {
		out, _, err := runApp(t, "search", "--db", dbPath, "--mode", "semantic", "--latency", "0s", "revenue")
		require.NoError(t, err)
		assert.Contains(t, out, "report.txt")
	})

	t.Run("search with no matches", func(t *testing.T) {
		out, errOut, err := runApp(t, "search", "--db", dbPath, "--id", id, "zebra")
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "No matches")
	})

	t.Run("find with filter", func(t *testing.T) {
		out, _, err := runApp(t, "find", "--db", dbPath, "--filter", "processed", "report")
		require.NoError(t, err)
		assert.Contains(t, out, "report.txt")
		assert.NotContains(t, out, "empty.txt")
	})

	t.Run("find rejects unknown filter", func(t *testing.T) {
		_, _, err := runApp(t, "find", "--db", dbPath, "--filter", "xlsx", "report")
		assert.Error(t, err)
	})

	t.Run("summary", func(t *testing.T) {
		out, _, err := runApp(t, "summary", "--db", dbPath, "--id", id)
		require.NoError(t, err)
		assert.Contains(t, out, "report")
		assert.Contains(t, out, "Quarterly revenue grew")
	})

	t.Run("re-add unchanged file", func(t *testing.T) {
		out, errOut, err := runApp(t, "add", "--db", dbPath, "--verbatim", filepath.Join(docsDir, "report.txt"))
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "unchanged (id "+id+")")
		assert.Contains(t, errOut, "Added 0 document(s), 1 unchanged, 0 failed")
	})

	t.Run("delete", func(t *testing.T) {
		_, errOut, err := runApp(t, "delete", "--db", dbPath, "--id", id)
		require.NoError(t, err)
		assert.Contains(t, errOut, "Deleted document "+id)

		_, _, err = runApp(t, "summary", "--db", dbPath, "--id", id)
		assert.Error(t, err)
	})
}

func TestCommandValidation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db")

	t.Run("summary requires id", func(t *testing.T) {
		_, _, err := runApp(t, "summary", "--db", dbPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "id")
	})

	t.Run("watch requires dir", func(t *testing.T) {
		_, _, err := runApp(t, "watch", "--db", dbPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dir")
	})

	t.Run("search requires query", func(t *testing.T) {
		_, _, err := runApp(t, "search", "--db", dbPath)
		assert.Error(t, err)
	})

	t.Run("search rejects unknown mode", func(t *testing.T) {
		_, _, err := runApp(t, "search", "--db", dbPath, "--mode", "fuzzy", "revenue")
		assert.Error(t, err)
	})

	t.Run("add without matches fails", func(t *testing.T) {
		_, _, err := runApp(t, "add", "--db", dbPath, filepath.Join(t.TempDir(), "*.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no files match")
	})

	t.Run("resummarize rejects zero retries", func(t *testing.T) {
		_, _, err := runApp(t, "resummarize", "--db", dbPath, "--max-retries", "0")
		assert.Error(t, err)
	})
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsift.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[database]
path = "from-file"

[ai]
model = "file-model"
`), 0o644))

	var got struct {
		db, model string
		verbatim  bool
	}
	app := &cli.App{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
		},
		Commands: []*cli.Command{
			{
				Name:  "inspect",
				Flags: append([]cli.Flag{dbFlag()}, aiFlags()...),
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					got.db = cfg.Database.Path
					got.model = cfg.AI.Model
					got.verbatim = cfg.AI.Verbatim
					return nil
				},
			},
		},
	}

	require.NoError(t, app.Run([]string{"test", "--config", cfgPath, "inspect", "--db", "from-flag", "--verbatim"}))
	assert.Equal(t, "from-flag", got.db)
	assert.Equal(t, "file-model", got.model)
	assert.True(t, got.verbatim)

	err := app.Run([]string{"test", "--config", filepath.Join(dir, "missing.toml"), "inspect"})
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
