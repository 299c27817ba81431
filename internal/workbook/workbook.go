// Package workbook decodes spreadsheet files into named sheets of typed cells.
package workbook

import (
	"fmt"
	"slices"

	"github.com/nconklindev/sheetpeek/internal/types"
)

// Workbook gives access to the sheets of a decoded file. Implementations may
// read sheets lazily, so Sheet can fail with a DecodeError.
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (types.RawSheet, error)
	Close() error
}

type Decoder interface {
	Decode(data []byte) (Workbook, error)
}

type Registry struct {
	decoders map[Format]Decoder
}

func NewRegistry() *Registry {
	r := &Registry{decoders: make(map[Format]Decoder)}
	r.Register(FormatXLSX, xlsxDecoder{})
	r.Register(FormatXLS, xlsDecoder{})
	r.Register(FormatCSV, csvDecoder{})
	return r
}

func (r *Registry) Register(format Format, d Decoder) {
	r.decoders[format] = d
}

func (r *Registry) Get(format Format) (Decoder, error) {
	d, ok := r.decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: no decoder for %s", ErrUnsupportedFileType, format)
	}
	return d, nil
}

// Decode detects the format of the named file and decodes data with the
// matching decoder.
func (r *Registry) Decode(name, mimeType string, data []byte) (Format, Workbook, error) {
	format, err := DetectFormat(name, mimeType)
	if err != nil {
		return "", nil, err
	}

	d, err := r.Get(format)
	if err != nil {
		return "", nil, err
	}

	wb, err := d.Decode(data)
	if err != nil {
		return format, nil, err
	}
	return format, wb, nil
}

// memoryWorkbook holds fully decoded sheets.
type memoryWorkbook struct {
	names  []string
	sheets map[string]types.RawSheet
}

func (w *memoryWorkbook) SheetNames() []string {
	return slices.Clone(w.names)
}

func (w *memoryWorkbook) Sheet(name string) (types.RawSheet, error) {
	sheet, ok := w.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return sheet, nil
}

func (w *memoryWorkbook) Close() error {
	w.sheets = nil
	return nil
}

// trimTrailingEmptyRows drops blank rows at the bottom of a sheet.
func trimTrailingEmptyRows(sheet types.RawSheet) types.RawSheet {
	end := len(sheet)
	for end > 0 && rowIsEmpty(sheet[end-1]) {
		end--
	}
	return sheet[:end]
}

func rowIsEmpty(row []types.CellValue) bool {
	for _, c := range row {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
