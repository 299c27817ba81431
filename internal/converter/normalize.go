package converter

import (
	"slices"

	"github.com/nconklindev/sheetpeek/internal/types"
)

// Normalize splits a raw sheet into a header row and data rows. The header
// cells become their display strings; blank headers stay blank. Data rows
// keep their original order and length, so ragged rows survive untouched.
func Normalize(raw types.RawSheet) *types.Table {
	if len(raw) == 0 {
		return &types.Table{Headers: []string{}, Rows: [][]types.CellValue{}}
	}

	headers := make([]string, len(raw[0]))
	for i, cell := range raw[0] {
		headers[i] = cell.String()
	}

	rows := make([][]types.CellValue, len(raw)-1)
	for i, row := range raw[1:] {
		rows[i] = slices.Clone(row)
		if rows[i] == nil {
			rows[i] = []types.CellValue{}
		}
	}

	return &types.Table{Headers: headers, Rows: rows}
}
