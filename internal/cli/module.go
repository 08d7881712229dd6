package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gduarte0/program2mass/pkg/pipeline"
)

// moduleFlags holds the command-line flags for the module command.
type moduleFlags struct {
	top                int
	noCache            bool
	refresh            bool
	includeCirculation bool
	json               bool
}

// moduleCommand creates the module command, which runs only the module
// search and reports the ranked candidates.
func (c *CLI) moduleCommand() *cobra.Command {
	var flags moduleFlags

	cmd := &cobra.Command{
		Use:   "module [program.csv]",
		Short: "Find the grid module that fits every room best",
		Long: `Sweep the configured module bands, dimension every room on each candidate
module and rank the modules where every room fits by average area error.

When no module fits every room the configured default module is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runModule(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.top, "top", 5, "number of candidates to show")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even when a cached search exists")
	cmd.Flags().BoolVar(&flags.includeCirculation, "include-circulation", false, "dimension circulation rooms too")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the search result as JSON")

	return cmd
}

func (c *CLI) runModule(ctx context.Context, input string, flags moduleFlags) error {
	reqs, warnings, err := pipeline.Load(input)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		c.Logger.Warn(w)
	}

	opts, err := c.options()
	if err != nil {
		return err
	}
	opts.Strategy = pipeline.StrategyModule
	opts.Refresh = flags.refresh
	opts.IncludeCirculation = opts.IncludeCirculation || flags.includeCirculation

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Searching modules...")
	opts.OnCandidate = spinner.Observe
	spinner.Start()
	search, cached, err := runner.SearchModule(ctx, reqs, opts)
	if err != nil {
		spinner.Stop()
		return err
	}
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}

	if flags.json {
		spinner.Stop()
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(search)
	}

	if search.Fallback {
		spinner.StopWithError(fmt.Sprintf("No module fits every room, using %d cm", search.Module))
	} else {
		spinner.StopWithSuccess(fmt.Sprintf("Best module: %s", StyleNumber.Render(fmt.Sprintf("%d cm", search.Module))))
	}
	status := iconFresh
	if cached {
		status = iconCached
	}
	printDetail("%d modules evaluated · %d viable · %s", search.Evaluated, search.Viable, status)
	if len(search.Top) > 0 {
		fmt.Println(candidateTable(search.Top, search.Module, flags.top))
	}
	printNewline()
	printNextStep("Dimension on this module", fmt.Sprintf("%s solve %s --module %d", appName, input, search.Module))
	return nil
}
