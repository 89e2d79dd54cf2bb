// Package tabular aligns rows of text into columns for CLI listings.
package tabular

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table is a header plus rows. Columns listed in Right are right-aligned.
type Table struct {
	Headers []string
	Rows    [][]string
	Right   map[int]bool
}

// Lines renders the table. When maxWidth is positive every line is truncated
// to that many cells.
func (t Table) Lines(maxWidth int) []string {
	widths := t.widths()
	if len(widths) == 0 {
		return nil
	}
	lines := make([]string, 0, len(t.Rows)+1)
	if len(t.Headers) > 0 {
		lines = append(lines, t.line(t.Headers, widths, maxWidth))
	}
	for _, row := range t.Rows {
		lines = append(lines, t.line(row, widths, maxWidth))
	}
	return lines
}

// String renders the table with one trailing newline per line.
func (t Table) String() string {
	var b strings.Builder
	for _, line := range t.Lines(0) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func (t Table) widths() []int {
	cols := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}
	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	return widths
}

func (t Table) line(row []string, widths []int, maxWidth int) string {
	var b strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(pad(cell, w, t.Right[i]))
	}
	out := strings.TrimRight(b.String(), " ")
	if maxWidth > 0 && runewidth.StringWidth(out) > maxWidth {
		out = runewidth.Truncate(out, maxWidth, "…")
	}
	return out
}

func pad(value string, width int, right bool) string {
	if right {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}
