package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfeldt/renderbox/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// treeRow is one flattened node of the rendered tree.
type treeRow struct {
	node  *layout.RenderedNode
	depth int
}

// flattenTree walks the rendered tree depth-first into display rows.
func flattenTree(root *layout.RenderedNode) []treeRow {
	var rows []treeRow
	var walk func(n *layout.RenderedNode, depth int)
	walk = func(n *layout.RenderedNode, depth int) {
		rows = append(rows, treeRow{node: n, depth: depth})
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	walk(root, 0)
	return rows
}

// TreeModel is the bubbletea model for browsing a rendered layout tree.
type TreeModel struct {
	Rows   []treeRow
	Cursor int
	Height int
	Offset int
}

// NewTreeModel creates a tree browser over a rendered layout.
func NewTreeModel(root *layout.RenderedNode) TreeModel {
	return TreeModel{
		Rows:   flattenTree(root),
		Height: 15,
	}
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor, m.Offset = 0, 0
		case "G":
			m.Cursor = len(m.Rows) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.Rows[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(rowLabel(row)))
		b.WriteString("\n")
	}

	if len(m.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(nodeDetail(m.Rows[m.Cursor].node))
	}
	return b.String()
}

// rowLabel renders one tree line: indentation, type, frame, and text.
func rowLabel(row treeRow) string {
	label := fmt.Sprintf("%s%s  %s",
		strings.Repeat("  ", row.depth),
		row.node.Type,
		frameLabel(row.node.Frame))
	if row.node.Text != "" {
		label += "  " + listDimStyle.Render(fmt.Sprintf("%q", row.node.Text))
	}
	return label
}

func frameLabel(f layout.Frame) string {
	return fmt.Sprintf("(%g,%g) %gx%g", f.X, f.Y, f.Width, f.Height)
}

// nodeDetail renders the detail panel for the selected node.
func nodeDetail(n *layout.RenderedNode) string {
	var b strings.Builder
	detail := func(key, value string) {
		b.WriteString("  " + listDimStyle.Render(key+":") + " " + StyleValue.Render(value) + "\n")
	}

	detail("type", string(n.Type))
	detail("frame", frameLabel(n.Frame))
	detail("margin", insetsLabel(n.Margin))
	detail("padding", insetsLabel(n.Padding))
	if n.Orientation != "" {
		detail("orientation", string(n.Orientation))
	}
	if n.Text != "" {
		detail("text", fmt.Sprintf("%q", n.Text))
	}
	if n.Background != nil {
		detail("background", colorLabel(*n.Background))
	}
	if n.Font != nil {
		detail("font", fmt.Sprintf("%gx%g", n.Font.CharWidth, n.Font.LineHeight))
	}
	detail("views", fmt.Sprintf("%d", n.Count()))
	return b.String()
}

func insetsLabel(in layout.EdgeInsets) string {
	return fmt.Sprintf("%g,%g,%g,%g", in.Left, in.Top, in.Right, in.Bottom)
}

func colorLabel(c layout.Color) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
