package converter

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"

	"github.com/nconklindev/sheetpeek/internal/types"
)

// ToCSV joins headers and cells with commas and lines with "\n". Nothing is
// quoted or escaped: a cell holding a comma or newline produces a broken
// line, matching what users of the export already rely on.
func ToCSV(t *types.Table) string {
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, strings.Join(t.Headers, ","))

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell.String()
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return strings.Join(lines, "\n")
}

// Record maps header names to the cells of one data row. Keys keep the order
// in which headers first appear.
type Record struct {
	keys   []string
	values map[string]types.CellValue
}

func (r Record) Keys() []string {
	return slices.Clone(r.keys)
}

func (r Record) Get(key string) (types.CellValue, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r Record) Len() int {
	return len(r.keys)
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := types.MarshalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ToRecords turns every data row into a Record keyed by header. Every header
// gets a key; cells a short row lacks are empty and encode as null. With
// duplicate headers the rightmost column wins. Cells past the last header
// have no key and are left out.
func ToRecords(t *types.Table) []Record {
	keys := make([]string, 0, len(t.Headers))
	seen := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		if !seen[h] {
			seen[h] = true
			keys = append(keys, h)
		}
	}

	records := make([]Record, len(t.Rows))
	for i, row := range t.Rows {
		values := make(map[string]types.CellValue, len(keys))
		for j, h := range t.Headers {
			if j < len(row) {
				values[h] = row[j]
			} else {
				values[h] = types.Empty()
			}
		}
		records[i] = Record{keys: keys, values: values}
	}

	return records
}

// MarshalRecords encodes ToRecords(t) as a JSON array indented by two spaces.
func MarshalRecords(t *types.Table) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(ToRecords(t)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
