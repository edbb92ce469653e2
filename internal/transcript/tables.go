package transcript

import "strings"

// ReflowTables realigns markdown tables in finalized assistant text so
// columns line up in a monospace terminal. It runs exactly once, when a
// streaming text block is finalized by Done; intermediate renders leave
// the text untouched so the pass is never applied twice.
func ReflowTables(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	for i := 0; i < len(lines); {
		if !isTableRow(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}
		j := i
		for j < len(lines) && isTableRow(lines[j]) {
			j++
		}
		if j-i < 2 {
			out = append(out, lines[i:j]...)
		} else {
			out = append(out, alignTable(lines[i:j])...)
		}
		i = j
	}
	return strings.Join(out, "\n")
}

func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && strings.Count(trimmed, "|") >= 2
}

func alignTable(rows []string) []string {
	cells := make([][]string, len(rows))
	cols := 0
	for i, row := range rows {
		cells[i] = splitTableRow(row)
		if len(cells[i]) > cols {
			cols = len(cells[i])
		}
	}

	widths := make([]int, cols)
	for _, row := range cells {
		for c, cell := range row {
			if isSeparatorCell(cell) {
				continue
			}
			if len(cell) > widths[c] {
				widths[c] = len(cell)
			}
		}
	}

	out := make([]string, 0, len(rows))
	for _, row := range cells {
		var b strings.Builder
		b.WriteString("|")
		for c := 0; c < cols; c++ {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if isSeparatorCell(cell) && cell != "" {
				b.WriteString(" " + strings.Repeat("-", max(widths[c], 3)) + " |")
				continue
			}
			b.WriteString(" " + cell + strings.Repeat(" ", widths[c]-len(cell)) + " |")
		}
		out = append(out, b.String())
	}
	return out
}

func splitTableRow(row string) []string {
	trimmed := strings.TrimSpace(row)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isSeparatorCell(cell string) bool {
	if cell == "" {
		return false
	}
	for _, r := range cell {
		if r != '-' && r != ':' {
			return false
		}
	}
	return true
}
