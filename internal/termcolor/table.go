package termcolor

import (
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// VisibleLen returns the number of runes in s once SGR escape sequences are
// stripped.
func VisibleLen(s string) int {
	return utf8.RuneCountInString(ansiSeq.ReplaceAllString(s, ""))
}

// Table lays out painted cells in columns, measuring visible width so color
// codes do not skew alignment.
type Table struct {
	rows  [][]string
	gap   int
	right map[int]bool
}

// NewTable creates a Table with gap spaces between columns.
func NewTable(gap int) *Table {
	return &Table{gap: gap, right: map[int]bool{}}
}

// AlignRight right-aligns the given zero-based columns.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// AddRow appends a row of cells.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the table to w. Trailing padding is never emitted.
func (t *Table) Render(w io.Writer) error {
	if len(t.rows) == 0 {
		return nil
	}

	widths := t.widths()
	var b strings.Builder
	for _, row := range t.rows {
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				line.WriteString(strings.Repeat(" ", t.gap))
			}
			fill := strings.Repeat(" ", widths[i]-VisibleLen(cell))
			if t.right[i] {
				line.WriteString(fill + cell)
			} else {
				line.WriteString(cell + fill)
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Table) widths() []int {
	cols := lo.Max(lo.Map(t.rows, func(row []string, _ int) int { return len(row) }))
	widths := make([]int, cols)
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], VisibleLen(cell))
		}
	}
	return widths
}
