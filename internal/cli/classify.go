package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gduarte0/program2mass/pkg/room"
)

// classifyCommand creates the classify command.
func (c *CLI) classifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <room name>...",
		Short: "Show which room type a name maps to",
		Long: `Classify free-text room names the way the solver does: the first type
with a keyword contained in the lower-cased name wins, and names without a
match fall back to the default type.`,
		Example: `  program2mass classify "Master Bedroom" "Cozinha" "WC"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.cfg.Catalog()
			if err != nil {
				return err
			}
			width := 0
			for _, name := range args {
				width = max(width, len(name))
			}
			for _, name := range args {
				t := cat.Classify(name)
				fmt.Printf("%-*s %s %s %s\n", width, name, StyleDim.Render(iconArrow),
					StyleHighlight.Render(t.String()), StyleDim.Render("("+string(cat.Category(t))+")"))
			}
			return nil
		},
	}
}

// catalogCommand creates the catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List room types with their keywords, ratios and aspect limits",
		Long: `List the room type catalog in effect, including any [catalog] overrides
from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.cfg.Catalog()
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(cat)
			}
			fmt.Println(catalogTable(cat))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")

	return cmd
}

// catalogTable renders one row per room type.
func catalogTable(cat *room.Catalog) string {
	rows := make([][]string, 0, room.NumTypes)
	for _, t := range room.Types() {
		p := cat.Profile(t)
		ratios := make([]string, len(p.Ratios))
		for i, r := range p.Ratios {
			ratios[i] = r.String()
		}
		keywords := strings.Join(p.Keywords, ", ")
		if keywords == "" {
			keywords = "-"
		}
		rows = append(rows, []string{
			t.String(),
			string(p.Category),
			strings.Join(ratios, " "),
			fmt.Sprintf("%.2f-%.2f", p.Aspect.Min, p.Aspect.Max),
			keywords,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Category", "Ratios", "Aspect", "Keywords").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if col == 0 {
				return tableCellStyle.Foreground(colorCyan)
			}
			if col == 4 {
				return tableCellStyle.Foreground(colorGray)
			}
			return tableCellStyle
		}).
		Render()
}
