package format

import "strings"

// WriteTable writes a markdown table to b. Columns listed in right are right
// aligned. Pipes inside cells are escaped.
func WriteTable(b *strings.Builder, header []string, rows [][]string, right ...int) {
	aligned := make(map[int]bool, len(right))
	for _, i := range right {
		aligned[i] = true
	}
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|")
	for i := range header {
		if aligned[i] {
			b.WriteString("---:|")
		} else {
			b.WriteString("---|")
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString("\n")
}
