package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	perrors "github.com/gduarte0/program2mass/pkg/errors"
	"github.com/gduarte0/program2mass/pkg/store"
)

// historyCommand creates the history command for saved runs.
func (c *CLI) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved runs",
		Long:  `List runs saved by solve, newest first. Use "history show <id>" for one run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHistoryList(cmd.Context(), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum runs to list")
	cmd.AddCommand(c.historyShowCommand())

	return cmd
}

func (c *CLI) historyShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHistoryShow(cmd.Context(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the run as JSON")

	return cmd
}

func (c *CLI) runHistoryList(ctx context.Context, limit int) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		printInfo("No saved runs")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rooms, module := 0, "-"
		if r.Result != nil {
			rooms = len(r.Result.Rooms)
			if r.Result.Module > 0 {
				module = fmt.Sprintf("%d", r.Result.Module)
			}
		}
		rows = append(rows, []string{
			r.ID,
			formatRelativeTime(r.CreatedAt),
			r.Source,
			r.Strategy(),
			fmt.Sprintf("%d", rooms),
			module,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Created", "Source", "Strategy", "Rooms", "Module").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if col == 0 {
				return tableCellStyle.Foreground(colorCyan)
			}
			if col == 1 {
				return tableCellStyle.Foreground(colorGray)
			}
			return tableCellStyle
		})
	fmt.Println(t.Render())
	return nil
}

func (c *CLI) runHistoryShow(ctx context.Context, id string, asJSON bool) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return perrors.New(perrors.ErrCodeNotFound, "no saved run %q", id)
	}
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}

	printKeyValue("ID", StyleHighlight.Render(run.ID))
	printKeyValue("Created", run.CreatedAt.Local().Format("Jan 2, 2006 15:04"))
	printKeyValue("Source", run.Source)
	printKeyValue("Strategy", run.Strategy())
	if run.Result == nil {
		return nil
	}
	if run.Result.Module > 0 {
		printKeyValue("Module", fmt.Sprintf("%d cm", run.Result.Module))
	}
	cat, err := c.cfg.Catalog()
	if err != nil {
		return err
	}
	fmt.Println(roomTable(run.Result.Rooms, cat))
	printResultStats(run.Result)
	return nil
}

// formatRelativeTime formats t relative to now, switching to a date after
// a week.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}
