// Package cli implements the program2mass command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gduarte0/program2mass/pkg/buildinfo"
	"github.com/gduarte0/program2mass/pkg/cache"
	"github.com/gduarte0/program2mass/pkg/config"
	"github.com/gduarte0/program2mass/pkg/pipeline"
	"github.com/gduarte0/program2mass/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// cachePrefix scopes CLI cache keys away from server entries when both
	// share one Redis.
	cachePrefix = "cli:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by --config; empty means the XDG default.
	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Defaults(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "program2mass turns a room program into dimensioned massing",
		Long: `program2mass reads a list of rooms with target areas, gives every room
grid-aligned wall lengths within its type's proportions, and aligns walls
between rooms so they can share them. Results come out as JSON, an
optimization log, a plan drawing, GeoJSON footprints and a wall graph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/program2mass/config.toml)")

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.moduleCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default file when it exists.
func (c *CLI) loadConfig() error {
	if c.configPath != "" {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
		return nil
	}
	path, err := config.Path()
	if err != nil {
		return nil
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, cachePrefix), c.Logger), nil
}

// newCache prefers the configured Redis, then the file cache. A file cache
// that cannot be created disables caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := c.cfg.Cache.RedisURL; url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			if cache.IsRetryable(err) {
				c.Logger.Warn("redis unavailable, caching disabled", "err", err)
				return cache.NewNullCache(), nil
			}
			return nil, err
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openStore opens the configured run store, defaulting to SQLite in the
// XDG data directory.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	uri := c.cfg.Store.URI
	if uri == "" {
		var err error
		if uri, err = config.DefaultStoreURI(); err != nil {
			return nil, err
		}
	}
	return store.Open(ctx, uri)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the XDG default
// (~/.cache/program2mass/).
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// options returns pipeline options from the loaded config.
func (c *CLI) options() (pipeline.Options, error) {
	opts, err := c.cfg.Options()
	if err != nil {
		return opts, err
	}
	opts.Logger = c.Logger
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON, pipeline.FormatLog}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
