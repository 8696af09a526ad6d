package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
)

const (
	defaultCellWidth = 60
	minCellWidth     = 12
)

// Table collects rows and renders them as an aligned, lightly bordered table.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// Row appends a row. Missing trailing cells render empty.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Render lays the table out for a terminal width columns wide. Long cells
// are truncated with an ellipsis. width <= 0 means unknown.
func (t *Table) Render(width int) string {
	limit := cellWidth(width, len(t.headers))

	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		row := make([]string, len(t.headers))
		for j := range row {
			if j < len(r) {
				row[j] = ansi.Truncate(r[j], limit, "…")
			}
		}
		rows[i] = row
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Headers(t.headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return nameStyle
			default:
				return cellStyle
			}
		})
	return tbl.Render() + "\n"
}

func cellWidth(width, columns int) int {
	if width <= 0 || columns == 0 {
		return defaultCellWidth
	}
	// The last column usually holds free text; give it half the line.
	limit := width / 2
	if limit < minCellWidth {
		limit = minCellWidth
	}
	if limit > defaultCellWidth {
		limit = defaultCellWidth
	}
	return limit
}

// Width returns the terminal width of w, or 0 when w is not a terminal.
func Width(w io.Writer) int {
	if !isTerminal(w) {
		return 0
	}
	width, _, err := term.GetSize(w.(interface{ Fd() uintptr }).Fd())
	if err != nil {
		return 0
	}
	return width
}
