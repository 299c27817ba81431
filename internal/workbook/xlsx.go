package workbook

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/nconklindev/sheetpeek/internal/types"

	"github.com/xuri/excelize/v2"
)

type xlsxDecoder struct{}

func (xlsxDecoder) Decode(data []byte) (Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, newDecodeError(FormatXLSX, "", err)
	}

	return &xlsxWorkbook{f: f, names: f.GetSheetList()}, nil
}

// xlsxWorkbook keeps the parsed file open and reads sheets on demand.
type xlsxWorkbook struct {
	f     *excelize.File
	names []string
}

func (w *xlsxWorkbook) SheetNames() []string {
	return slices.Clone(w.names)
}

func (w *xlsxWorkbook) Sheet(name string) (types.RawSheet, error) {
	if !slices.Contains(w.names, name) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}

	raw, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, newDecodeError(FormatXLSX, name, err)
	}
	formatted, err := w.f.GetRows(name)
	if err != nil {
		return nil, newDecodeError(FormatXLSX, name, err)
	}

	sheet := make(types.RawSheet, len(raw))
	for r, row := range raw {
		cells := make([]types.CellValue, len(row))
		for c, value := range row {
			display := ""
			if r < len(formatted) && c < len(formatted[r]) {
				display = formatted[r][c]
			}
			cells[c] = w.cell(name, c+1, r+1, value, display)
		}
		sheet[r] = cells
	}

	return sheet, nil
}

// cell resolves one cell to a typed value. Numbers keep their raw value,
// text keeps what the spreadsheet would display.
func (w *xlsxWorkbook) cell(sheet string, col, row int, raw, display string) types.CellValue {
	if raw == "" {
		return types.StringOrEmpty(display)
	}

	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return types.String(raw)
	}
	cellType, _ := w.f.GetCellType(sheet, ref)

	switch cellType {
	case excelize.CellTypeBool:
		return types.Bool(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return types.Number(f)
		}
	}

	if display != "" {
		return types.String(display)
	}
	return types.String(raw)
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}
