package workbook

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/nconklindev/sheetpeek/internal/types"

	"golang.org/x/text/encoding/charmap"
)

// CSVSheetName is the name given to the single sheet of a CSV file.
const CSVSheetName = "Sheet1"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type csvDecoder struct{}

func (csvDecoder) Decode(data []byte) (Workbook, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	// Files exported by older Excel builds are often Windows-1252.
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, newDecodeError(FormatCSV, "", err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var sheet types.RawSheet
	var offset int64
	consumed, nextLine := 0, 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newDecodeError(FormatCSV, "", err)
		}

		// The reader skips blank lines. Keep them as empty rows so row
		// numbers line up with what a spreadsheet shows.
		line, _ := reader.FieldPos(0)
		for ; nextLine < line; nextLine++ {
			sheet = append(sheet, nil)
		}

		cells := make([]types.CellValue, len(record))
		for j, field := range record {
			cells[j] = types.StringOrEmpty(field)
		}
		sheet = append(sheet, cells)

		end := reader.InputOffset()
		consumed += bytes.Count(data[offset:end], []byte("\n"))
		offset = end
		nextLine = consumed + 1
	}

	return &memoryWorkbook{
		names:  []string{CSVSheetName},
		sheets: map[string]types.RawSheet{CSVSheetName: sheet},
	}, nil
}
