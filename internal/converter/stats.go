package converter

import "github.com/nconklindev/sheetpeek/internal/types"

func DeriveStats(t *types.Table, totalSheets int) types.Stats {
	return types.Stats{
		TotalRows:    len(t.Rows),
		TotalColumns: len(t.Headers),
		TotalSheets:  totalSheets,
	}
}

// DisplayGrid lays the table out as text for rendering. The grid is as wide
// as the header row or the longest data row, whichever is wider. Short rows
// are padded with blanks; columns past the header row get a blank label.
func DisplayGrid(t *types.Table) (columns []string, rows [][]string) {
	width := len(t.Headers)
	for _, row := range t.Rows {
		width = max(width, len(row))
	}

	columns = make([]string, width)
	copy(columns, t.Headers)

	rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		line := make([]string, width)
		for j, cell := range row {
			line[j] = cell.String()
		}
		rows[i] = line
	}

	return columns, rows
}
