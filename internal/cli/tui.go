package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gduarte0/program2mass/pkg/pipeline"
	"github.com/gduarte0/program2mass/pkg/room"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listDetailStyle   = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Padding(0, 1)
)

// =============================================================================
// RoomListModel - Interactive room browser
// =============================================================================

// RoomListModel is the bubbletea model for browsing a solved program.
// The table lists every room; the panel below it details the room under
// the cursor.
type RoomListModel struct {
	Rooms   []room.Room
	Catalog *room.Catalog
	Module  int
	Cursor  int
	Height  int
	Offset  int
}

// newRoomListModel creates a room browser for res.
func newRoomListModel(res *pipeline.Result, cat *room.Catalog) RoomListModel {
	if cat == nil {
		cat = room.DefaultCatalog()
	}
	return RoomListModel{
		Rooms:   res.Rooms,
		Catalog: cat,
		Module:  res.Module,
		Height:  12,
	}
}

func (m RoomListModel) Init() tea.Cmd {
	return nil
}

func (m RoomListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rooms)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Rooms); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		}
	case tea.WindowSizeMsg:
		// Leave room for the title and the detail panel.
		m.Height = max(msg.Height-16, 3)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m RoomListModel) View() string {
	var b strings.Builder

	title := "Rooms"
	if m.Module > 0 {
		title = fmt.Sprintf("Rooms on a %d cm module", m.Module)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Rooms) == 0 {
		b.WriteString(listDimStyle.Render("  No rooms"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rooms))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := m.Rooms[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		opt := ""
		if r.Optimized {
			opt = iconSuccess
		}
		rows = append(rows, []string{cursor, r.Name, r.Type.String(), r.Dimensions.String(), fmt.Sprintf("%.2f", r.ActualArea()), opt})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Room", "Type", "L x W (cm)", "m²", "Opt").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 5 {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDetailStyle.Render(m.detail(m.Rooms[m.Cursor])))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rooms))))

	return b.String()
}

// detail describes one room against its catalog profile.
func (m RoomListModel) detail(r room.Room) string {
	p := m.Catalog.Profile(r.Type)
	bounds := p.Aspect

	aspect := fmt.Sprintf("%.2f", r.Dimensions.Aspect())
	if !bounds.Contains(r.Dimensions.Aspect()) {
		aspect = StyleWarning.Render(aspect + " (outside range)")
	}
	ratios := make([]string, len(p.Ratios))
	for i, ratio := range p.Ratios {
		ratios[i] = ratio.String()
	}

	lines := []string{
		listSelectedStyle.Render(r.Name),
		fmt.Sprintf("Type       %s (%s)", r.Type, p.Category),
		fmt.Sprintf("Size       %s cm", r.Dimensions),
		fmt.Sprintf("Area       %.2f m² for %.2f m² requested (%+.2f)", r.ActualArea(), r.RequestedArea, r.ActualArea()-r.RequestedArea),
		fmt.Sprintf("Aspect     %s, allowed %.2f to %.2f", aspect, bounds.Min, bounds.Max),
		fmt.Sprintf("Ratios     %s", strings.Join(ratios, "  ")),
	}
	if adj, ok := m.Catalog.Adjacency(r.Type); ok {
		lines = append(lines, fmt.Sprintf("Adjacency  near %s, away from %s", typeList(adj.Preferred), typeList(adj.Avoided)))
	}
	return strings.Join(lines, "\n")
}

func typeList(types []room.Type) string {
	if len(types) == 0 {
		return "-"
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
