package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/nconklindev/sheetpeek/internal/types"

	"github.com/extrame/xls"
)

const xlsCharset = "utf-8"

type xlsDecoder struct{}

func (xlsDecoder) Decode(data []byte) (wb Workbook, err error) {
	defer recoverDecode(FormatXLS, "", &err)

	book, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return nil, newDecodeError(FormatXLS, "", err)
	}
	if book == nil {
		return nil, newDecodeError(FormatXLS, "", errors.New("no workbook stream"))
	}

	w := &xlsWorkbook{book: book, index: make(map[string]int)}
	for i := 0; i < book.NumSheets(); i++ {
		sheet := book.GetSheet(i)
		if sheet == nil {
			continue
		}
		if _, dup := w.index[sheet.Name]; dup {
			continue
		}
		w.index[sheet.Name] = i
		w.names = append(w.names, sheet.Name)
	}

	return w, nil
}

type xlsWorkbook struct {
	book  *xls.WorkBook
	names []string
	index map[string]int
}

func (w *xlsWorkbook) SheetNames() []string {
	return slices.Clone(w.names)
}

// Sheet reads every row of the named sheet. BIFF records carry no useful
// type information once formatted, so every non-blank cell is text.
func (w *xlsWorkbook) Sheet(name string) (sheet types.RawSheet, err error) {
	idx, ok := w.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	defer recoverDecode(FormatXLS, name, &err)

	ws := w.book.GetSheet(idx)
	if ws == nil {
		return nil, newDecodeError(FormatXLS, name, errors.New("sheet stream missing"))
	}

	sheet = make(types.RawSheet, 0, int(ws.MaxRow)+1)
	for r := 0; r <= int(ws.MaxRow); r++ {
		row := xlsRow(ws, r)
		if row == nil {
			sheet = append(sheet, nil)
			continue
		}
		cells := make([]types.CellValue, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells[c] = types.StringOrEmpty(row.Col(c))
		}
		sheet = append(sheet, cells)
	}

	return trimTrailingEmptyRows(sheet), nil
}

// xlsRow returns nil for indexes without a ROW record. WorkSheet.Row
// dereferences the missing entry instead of returning nil.
func xlsRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

func (w *xlsWorkbook) Close() error {
	w.book = nil
	return nil
}
