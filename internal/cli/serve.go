package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gduarte0/program2mass/internal/server"
	"github.com/gduarte0/program2mass/pkg/buildinfo"
	"github.com/gduarte0/program2mass/pkg/cache"
	"github.com/gduarte0/program2mass/pkg/pipeline"
)

// serveFlags holds the command-line flags for the serve command.
type serveFlags struct {
	addr    string
	noCache bool
	store   string
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Routes:
  GET  /healthz        liveness check
  POST /v1/solve       dimension a program (JSON rooms or CSV)
  GET  /v1/runs        list saved runs
  GET  /v1/runs/{id}   fetch a saved run
  GET  /v1/catalog     room type catalog

Requests start from the options in the config file. Results are cached in
Redis when cache.redis_url is set, otherwise in the file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default from config, then :8080)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().StringVar(&flags.store, "store", "", "run store URI: memory:, sqlite://path or mongodb://... (default from config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags serveFlags) error {
	defaults, err := c.options()
	if err != nil {
		return err
	}
	// Validate a copy: requests are merged onto the unvalidated defaults
	// and must still go through validation themselves.
	check := defaults
	if err := check.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	ch, err := c.newCache(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(ch, cache.NewDefaultKeyer(), c.Logger)
	defer runner.Close()

	if flags.store != "" {
		c.cfg.Store.URI = flags.store
	}
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	addr := flags.addr
	if addr == "" {
		addr = c.cfg.Server.Addr
	}

	c.Logger.Info(buildinfo.Banner())
	return server.New(runner, st, defaults, c.Logger).ListenAndServe(ctx, addr)
}
