// Package style provides CLI output formatting: aligned tables and the
// color policy shared by all commands.
package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Alignment controls how cell text is padded within a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// Column defines a table column.
type Column struct {
	Name  string
	Width int
	Align Alignment
}

// Table renders rows of fixed-width columns with an optional header
// separator. Methods chain.
type Table struct {
	columns   []Column
	rows      [][]string
	headerSep bool
	indent    string
}

// NewTable creates a table with the given columns.
func NewTable(columns ...Column) *Table {
	return &Table{
		columns:   columns,
		headerSep: true,
		indent:    "  ",
	}
}

// SetIndent sets the prefix for every rendered line.
func (t *Table) SetIndent(indent string) *Table {
	t.indent = indent
	return t
}

// SetHeaderSeparator toggles the rule between header and rows.
func (t *Table) SetHeaderSeparator(on bool) *Table {
	t.headerSep = on
	return t
}

// AddRow appends a row. Missing cells are padded with empty strings;
// extra cells are dropped.
func (t *Table) AddRow(cells ...string) *Table {
	row := make([]string, len(t.columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	t.rows = append(t.rows, row)
	return t
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// Render returns the formatted table, one line per row, each line
// newline-terminated. An empty table (no columns) renders as "".
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	var b strings.Builder

	// Header
	b.WriteString(t.indent)
	for i, col := range t.columns {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(t.pad(headerStyle.Render(col.Name), col.Name, col.Width, col.Align))
	}
	b.WriteString("\n")

	if t.headerSep {
		b.WriteString(t.indent)
		for i, col := range t.columns {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(strings.Repeat("─", col.Width))
		}
		b.WriteString("\n")
	}

	for _, row := range t.rows {
		b.WriteString(t.indent)
		for i, col := range t.columns {
			if i > 0 {
				b.WriteString("  ")
			}
			cell := row[i]
			plain := stripAnsi(cell)
			if len(plain) > col.Width && col.Width > 3 {
				// Truncation drops any styling in the cell.
				cell = plain[:col.Width-3] + "..."
				plain = cell
			}
			b.WriteString(t.pad(cell, plain, col.Width, col.Align))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pad aligns styled text within width using the plain (ANSI-stripped)
// length for measurement. Text at or beyond width is returned unchanged.
func (t *Table) pad(styled, plain string, width int, align Alignment) string {
	gap := width - len(plain)
	if gap <= 0 {
		return styled
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + styled
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + styled + strings.Repeat(" ", gap-left)
	default:
		return styled + strings.Repeat(" ", gap)
	}
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripAnsi removes ANSI SGR sequences for width measurement.
func stripAnsi(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}
