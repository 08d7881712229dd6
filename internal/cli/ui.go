package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gduarte0/program2mass/pkg/optimize"
	"github.com/gduarte0/program2mass/pkg/pipeline"
	"github.com/gduarte0/program2mass/pkg/room"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Result Display
// =============================================================================

// printResultStats prints the result statistics on a single line.
func printResultStats(res *pipeline.Result) {
	st := res.Stats
	parts := []string{
		fmt.Sprintf("%d rooms", st.Rooms),
		fmt.Sprintf("%d unique walls", st.UniqueLengths),
		fmt.Sprintf("%.0f%% shared", st.SharingPct),
		fmt.Sprintf("%+.1f%% area", st.VariancePct),
	}
	if st.Optimized > 0 {
		parts = append(parts, fmt.Sprintf("%d optimized", st.Optimized))
	}
	if res.Module > 0 {
		parts = append(parts, fmt.Sprintf("module %d cm", res.Module))
	}

	status := iconFresh
	statusStyle := styleComputed
	if res.CacheHit {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line + StyleDim.Render(" · ") + statusStyle.Render(status))
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// roomTable renders one row per room: type, dimensions, areas and whether
// an optimizer changed it.
func roomTable(rooms []room.Room, cat *room.Catalog) string {
	if cat == nil {
		cat = room.DefaultCatalog()
	}
	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		optimized := ""
		if r.Optimized {
			optimized = iconSuccess
		}
		rows = append(rows, []string{
			r.Name,
			r.Type.String(),
			string(cat.Category(r.Type)),
			r.Dimensions.String(),
			fmt.Sprintf("%.1f", r.RequestedArea),
			fmt.Sprintf("%.2f", r.ActualArea()),
			fmt.Sprintf("%.2f", r.AreaError()),
			optimized,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Room", "Type", "Category", "L x W (cm)", "Req m²", "Act m²", "Err m²", "Opt").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if col == 3 {
				return tableCellStyle.Foreground(colorCyan)
			}
			if col == 7 {
				return tableCellStyle.Inherit(StyleSuccess)
			}
			return tableCellStyle
		}).
		Render()
}

// candidateTable renders module candidates, best first. Rows past limit
// are dropped; limit <= 0 keeps them all.
func candidateTable(cands []optimize.Candidate, chosen, limit int) string {
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	rows := make([][]string, 0, len(cands))
	for _, c := range cands {
		failed := "-"
		if !c.Viable() {
			failed = strings.Join(c.Failed, ", ")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.Module),
			fmt.Sprintf("%.0f%%", c.SuccessRate*100),
			fmt.Sprintf("%.2f", c.AvgError),
			fmt.Sprintf("%.2f", c.TotalError),
			failed,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Module (cm)", "Success", "Avg err m²", "Total err m²", "Failed").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if row < len(cands) && cands[row].Module == chosen {
				return tableCellStyle.Foreground(colorGreen).Bold(true)
			}
			if row < len(cands) && !cands[row].Viable() {
				return tableCellStyle.Foreground(colorDim)
			}
			return tableCellStyle
		}).
		Render()
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Utilities
// =============================================================================

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
