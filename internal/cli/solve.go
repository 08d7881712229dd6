package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gduarte0/program2mass/pkg/pipeline"
	"github.com/gduarte0/program2mass/pkg/room"
	"github.com/gduarte0/program2mass/pkg/store"
)

// solveFlags holds the command-line flags for the solve command.
// Zero values keep the config file's settings.
type solveFlags struct {
	output             string // base path for output files
	formats            string // comma-separated output formats
	strategy           string
	unit               int
	minWall            int
	passes             int
	module             int
	includeCirculation bool
	spacing            int
	noCache            bool
	refresh            bool
	noSave             bool
	interactive        bool
}

// apply overrides opts with the flags that were set.
func (f solveFlags) apply(opts *pipeline.Options) {
	if f.strategy != "" {
		opts.Strategy = f.strategy
	}
	if f.unit != 0 {
		opts.Unit = f.unit
	}
	if f.minWall != 0 {
		opts.MinWall = f.minWall
	}
	if f.passes != 0 {
		opts.Passes = f.passes
	}
	if f.module != 0 {
		opts.Strategy = pipeline.StrategyModule
		opts.Module = f.module
	}
	if f.includeCirculation {
		opts.IncludeCirculation = true
	}
	if f.spacing != 0 {
		opts.Spacing = f.spacing
	}
	opts.Refresh = f.refresh
	opts.Formats = parseFormats(f.formats)
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "solve [program.csv]",
		Short: "Dimension every room of a program and align shared walls",
		Long: `Dimension every room of a CSV room program and align shared walls.

The CSV needs a header row followed by rows of name and area in square metres.
Circulation rooms (halls, corridors) are skipped unless --include-circulation
is given. Results are written next to the input unless -o is set, and the run
is saved to the history store.

Strategies:
  multipass  cluster wall lengths and refine over several passes (default)
  module     pick one grid module every room fits
  common     one pass onto the most frequent wall lengths
  none       solver output only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output base path (default: <input> without extension)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): json, log (default), svg, png, geojson, dot, graph (comma-separated)")
	cmd.Flags().StringVarP(&flags.strategy, "strategy", "s", "", "optimization strategy: multipass (default), module, common, none")
	cmd.Flags().IntVar(&flags.unit, "unit", 0, "snapping unit in cm (default 50)")
	cmd.Flags().IntVar(&flags.minWall, "min-wall", 0, "minimum wall length in cm (default 120)")
	cmd.Flags().IntVar(&flags.passes, "passes", 0, "multipass optimizer passes (default 3)")
	cmd.Flags().IntVar(&flags.module, "module", 0, "fix the grid module in cm (implies --strategy module)")
	cmd.Flags().BoolVar(&flags.includeCirculation, "include-circulation", false, "dimension circulation rooms too")
	cmd.Flags().IntVar(&flags.spacing, "spacing", 0, "gap between massing boxes in cm (negative: edge to edge)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().BoolVar(&flags.noSave, "no-save", false, "do not save the run to history")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "browse the solved rooms")
	_ = cmd.RegisterFlagCompletionFunc("strategy", completeFrom(pipeline.ValidStrategies))
	_ = cmd.RegisterFlagCompletionFunc("format", completeFrom(pipeline.ValidFormats))

	return cmd
}

// runSolve loads the program, runs the pipeline and writes outputs.
func (c *CLI) runSolve(ctx context.Context, input string, flags solveFlags) error {
	reqs, warnings, err := pipeline.Load(input)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		c.Logger.Warn(w)
	}
	c.Logger.Info("Loaded program", "rooms", len(reqs), "file", input)

	opts, err := c.options()
	if err != nil {
		return err
	}
	flags.apply(&opts)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	reporter := newOptimizerProgress(c.Logger)
	opts.OnPass = reporter.onPass
	opts.OnCandidate = reporter.onCandidate

	res, err := runner.Execute(ctx, reqs, opts)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	reporter.done(res)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputs, err := pipeline.Render(res, opts)
	if err != nil {
		return err
	}
	base := flags.output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}
	paths, err := writeOutputs(base, outputs)
	if err != nil {
		return err
	}

	var runID string
	if !flags.noSave {
		runID, err = c.saveRun(ctx, input, reqs, res)
		if err != nil {
			c.Logger.Warn("run not saved", "err", err)
		}
	}

	if flags.interactive {
		return browseRooms(res, opts.Catalog)
	}

	printSuccess("Solved %d rooms", len(res.Rooms))
	fmt.Println(roomTable(res.Rooms, opts.Catalog))
	for _, w := range res.Warnings {
		printWarning("%s", w)
	}
	printResultStats(res)
	for _, p := range paths {
		printFile(p)
	}
	if runID != "" {
		printNewline()
		printNextStep("Show again", appName+" history show "+runID)
	}
	return nil
}

// writeOutputs writes each rendered format to base + its extension, in a
// stable order.
func writeOutputs(base string, outputs map[string][]byte) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	formats := make([]string, 0, len(outputs))
	for f := range outputs {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + pipeline.Extensions[f]
		if err := os.WriteFile(path, outputs[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (c *CLI) saveRun(ctx context.Context, source string, reqs []room.Request, res *pipeline.Result) (string, error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return "", err
	}
	defer st.Close()
	run := store.NewRun(source, reqs, res)
	if err := st.Save(ctx, run); err != nil {
		return "", err
	}
	loggerFromContext(ctx).Debug("saved run", "id", run.ID)
	return run.ID, nil
}

// browseRooms opens the interactive room browser.
func browseRooms(res *pipeline.Result, cat *room.Catalog) error {
	_, err := tea.NewProgram(newRoomListModel(res, cat)).Run()
	return err
}
