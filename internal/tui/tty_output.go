package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TTYOutput writes human-readable, lipgloss-styled lines.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
	table  *TableStyles
}

// NewTTYOutput returns a TTYOutput writing to w. Color is dropped when
// NO_COLOR is set or TERM=dumb.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()
	return &TTYOutput{w: w, styles: NewOutputStyles(), table: NewTableStyles()}
}

func (o *TTYOutput) line(style lipgloss.Style, icon, msg string) {
	_, _ = fmt.Fprintln(o.w, style.Render(icon+" "+msg))
}

// Success prints "✓ msg".
func (o *TTYOutput) Success(msg string) { o.line(o.styles.Success, "✓", msg) }

// Warning prints "⚠ msg".
func (o *TTYOutput) Warning(msg string) { o.line(o.styles.Warning, "⚠", msg) }

// Info prints "ℹ msg".
func (o *TTYOutput) Info(msg string) { o.line(o.styles.Info, "ℹ", msg) }

// Error prints "✗ err". An ActionableError with a suggestion adds a dim
// "▸ Try:" line beneath it.
func (o *TTYOutput) Error(err error) {
	o.line(o.styles.Error, "✗", err.Error())

	var ae *ActionableError
	if errors.As(err, &ae) && ae.Suggestion != "" {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  ▸ Try: "+ae.Suggestion))
	}
}

// Value prints v unstyled so it can be piped.
func (o *TTYOutput) Value(v string) {
	_, _ = fmt.Fprintln(o.w, v)
}

// Table prints rows in aligned columns under a bold header row. Short rows
// are padded with empty cells; extra cells are dropped.
func (o *TTYOutput) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, headers)
	for _, row := range rows {
		norm := make([]string, len(headers))
		copy(norm, row)
		cells = append(cells, norm)
	}

	widths := make([]int, len(headers))
	for _, row := range cells {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for n, row := range cells {
		style := o.table.Cell
		if n == 0 {
			style = o.table.Header
		}
		parts := make([]string, len(row))
		for i, cell := range row {
			parts[i] = style.Render(padRight(cell, widths[i]))
		}
		_, _ = fmt.Fprintln(o.w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

// JSON prints v as indented JSON.
func (o *TTYOutput) JSON(v any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
