package converter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nconklindev/sheetpeek/internal/types"
)

func rawFromStrings(rows [][]string) types.RawSheet {
	sheet := make(types.RawSheet, len(rows))
	for i, row := range rows {
		cells := make([]types.CellValue, len(row))
		for j, v := range row {
			cells[j] = types.StringOrEmpty(v)
		}
		sheet[i] = cells
	}
	return sheet
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name            string
		input           [][]string
		expectedHeaders []string
		expectedRows    int
	}{
		{"Empty sheet", nil, []string{}, 0},
		{"Header only", [][]string{{"A", "B"}}, []string{"A", "B"}, 0},
		{"Name and age", [][]string{{"Name", "Age"}, {"Alice", "30"}, {"Bob", "25"}}, []string{"Name", "Age"}, 2},
		{"Blank header stays blank", [][]string{{"A", "", "C"}, {"1", "2", "3"}}, []string{"A", "", "C"}, 1},
		{"Ragged rows", [][]string{{"A", "B"}, {"x"}, {"1", "2", "3"}, {}}, []string{"A", "B"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawFromStrings(tt.input)
			got := Normalize(raw)

			if len(got.Headers) != len(tt.expectedHeaders) {
				t.Fatalf("Normalize() headers = %v; want %v", got.Headers, tt.expectedHeaders)
			}
			for i, h := range tt.expectedHeaders {
				if got.Headers[i] != h {
					t.Errorf("header %d = %q; want %q", i, got.Headers[i], h)
				}
			}
			if len(got.Rows) != tt.expectedRows {
				t.Fatalf("Normalize() rows = %d; want %d", len(got.Rows), tt.expectedRows)
			}

			// Rows keep their source length and values.
			for i, row := range got.Rows {
				src := raw[i+1]
				if len(row) != len(src) {
					t.Errorf("row %d has %d cells; want %d", i, len(row), len(src))
					continue
				}
				for j := range row {
					if row[j] != src[j] {
						t.Errorf("row %d cell %d = %v; want %v", i, j, row[j], src[j])
					}
				}
			}
		})
	}
}

func TestNormalizeTypedHeaders(t *testing.T) {
	raw := types.RawSheet{
		{types.Number(2024), types.Bool(true), types.Empty(), types.String("Name")},
	}
	got := Normalize(raw)
	expected := []string{"2024", "true", "", "Name"}
	for i, h := range expected {
		if got.Headers[i] != h {
			t.Errorf("header %d = %q; want %q", i, got.Headers[i], h)
		}
	}
}

func TestNormalizeDoesNotAliasInput(t *testing.T) {
	raw := rawFromStrings([][]string{{"A"}, {"x"}})
	got := Normalize(raw)
	raw[1][0] = types.String("changed")
	if got.Rows[0][0].String() != "x" {
		t.Errorf("normalized row changed with its source: %q", got.Rows[0][0].String())
	}
}

func TestDeriveStats(t *testing.T) {
	table := Normalize(rawFromStrings([][]string{{"Name", "Age"}, {"Alice", "30"}, {"Bob", "25"}}))
	got := DeriveStats(table, 1)
	want := types.Stats{TotalRows: 2, TotalColumns: 2, TotalSheets: 1}
	if got != want {
		t.Errorf("DeriveStats() = %+v; want %+v", got, want)
	}

	empty := DeriveStats(Normalize(nil), 3)
	if empty != (types.Stats{TotalSheets: 3}) {
		t.Errorf("DeriveStats(empty) = %+v", empty)
	}
}

func TestDisplayGrid(t *testing.T) {
	table := &types.Table{
		Headers: []string{"A", "B"},
		Rows: [][]types.CellValue{
			{types.String("x")},
			{types.Number(1), types.Bool(false), types.String("extra")},
			{types.Empty(), types.String("y")},
		},
	}

	columns, rows := DisplayGrid(table)

	expectedColumns := []string{"A", "B", ""}
	if strings.Join(columns, "|") != strings.Join(expectedColumns, "|") {
		t.Errorf("columns = %q; want %q", columns, expectedColumns)
	}

	expectedRows := [][]string{
		{"x", "", ""},
		{"1", "false", "extra"},
		{"", "y", ""},
	}
	for i, want := range expectedRows {
		if strings.Join(rows[i], "|") != strings.Join(want, "|") {
			t.Errorf("row %d = %q; want %q", i, rows[i], want)
		}
	}
}

func TestToCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    [][]string
		expected string
	}{
		{"Name and age", [][]string{{"Name", "Age"}, {"Alice", "30"}, {"Bob", "25"}}, "Name,Age\nAlice,30\nBob,25"},
		{"Header only", [][]string{{"A", "B"}}, "A,B"},
		{"Ragged rows are not padded", [][]string{{"A", "B"}, {"x"}, {"1", "2", "3"}}, "A,B\nx\n1,2,3"},
		{"Blank cells", [][]string{{"A", "B"}, {"", "y"}}, "A,B\n,y"},
		{"Commas are not quoted", [][]string{{"A"}, {"x,y"}}, "A\nx,y"},
		{"Empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToCSV(Normalize(rawFromStrings(tt.input)))
			if got != tt.expected {
				t.Errorf("ToCSV() = %q; want %q", got, tt.expected)
			}
		})
	}
}

func TestToCSVTypedCells(t *testing.T) {
	table := &types.Table{
		Headers: []string{"n", "b", "e"},
		Rows:    [][]types.CellValue{{types.Number(1.25), types.Bool(true), types.Empty()}},
	}
	if got := ToCSV(table); got != "n,b,e\n1.25,true," {
		t.Errorf("ToCSV() = %q", got)
	}
}

func TestToCSVReparses(t *testing.T) {
	input := [][]string{
		{"Name", "City", "Score"},
		{"Alice", "Lisbon", "9"},
		{"Bob", "Oslo", "7.5"},
		{"Carol", "Quito", "8"},
	}
	table := Normalize(rawFromStrings(input))

	r := csv.NewReader(strings.NewReader(ToCSV(table)))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("re-reading CSV failed: %v", err)
	}

	if len(records) != len(input) {
		t.Fatalf("got %d records; want %d", len(records), len(input))
	}
	for i := range input {
		if strings.Join(records[i], "|") != strings.Join(input[i], "|") {
			t.Errorf("record %d = %q; want %q", i, records[i], input[i])
		}
	}
}

func TestToRecords(t *testing.T) {
	input := [][]string{{"Name", "Age"}, {"Alice", "30"}, {"Bob", "25"}}
	table := Normalize(rawFromStrings(input))
	records := ToRecords(table)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for i, rec := range records {
		for j, h := range table.Headers {
			v, ok := rec.Get(h)
			if !ok {
				t.Errorf("record %d missing key %q", i, h)
				continue
			}
			if v.String() != input[i+1][j] {
				t.Errorf("record %d[%q] = %q; want %q", i, h, v.String(), input[i+1][j])
			}
		}
	}
}

func TestRecordKeysAreCopied(t *testing.T) {
	table := Normalize(rawFromStrings([][]string{{"A", "B"}, {"1", "2"}, {"3", "4"}}))
	records := ToRecords(table)

	keys := records[0].Keys()
	keys[0] = "changed"

	for i, rec := range records {
		if got := rec.Keys(); got[0] != "A" {
			t.Errorf("record %d keys = %v; want [A B]", i, got)
		}
		if _, ok := rec.Get("A"); !ok {
			t.Errorf("record %d lost key A", i)
		}
	}
}

func TestToRecordsShortRow(t *testing.T) {
	table := Normalize(rawFromStrings([][]string{{"A", "B"}, {"x"}}))
	records := ToRecords(table)

	a, _ := records[0].Get("A")
	if a.String() != "x" {
		t.Errorf("A = %q; want x", a.String())
	}
	b, ok := records[0].Get("B")
	if !ok {
		t.Fatal("expected key B to be present")
	}
	if !b.IsEmpty() {
		t.Errorf("B = %v; want empty", b)
	}
}

func TestToRecordsDuplicateHeaders(t *testing.T) {
	table := Normalize(rawFromStrings([][]string{{"id", "name", "id"}, {"1", "Alice", "2"}}))
	records := ToRecords(table)

	if records[0].Len() != 2 {
		t.Fatalf("expected 2 keys, got %v", records[0].Keys())
	}
	id, _ := records[0].Get("id")
	if id.String() != "2" {
		t.Errorf("id = %q; want the later column's value 2", id.String())
	}
	if keys := records[0].Keys(); keys[0] != "id" || keys[1] != "name" {
		t.Errorf("Keys() = %v; want [id name]", keys)
	}
}

func TestToRecordsDropsCellsPastHeaders(t *testing.T) {
	table := Normalize(rawFromStrings([][]string{{"A"}, {"x", "extra"}}))
	records := ToRecords(table)
	if records[0].Len() != 1 {
		t.Errorf("Keys() = %v; want only A", records[0].Keys())
	}
}

func TestMarshalRecords(t *testing.T) {
	table := &types.Table{
		Headers: []string{"Name", "Age", "Member", "Note"},
		Rows: [][]types.CellValue{
			{types.String("Alice"), types.Number(30), types.Bool(true), types.String("a<b")},
			{types.String("Bob")},
		},
	}

	got, err := MarshalRecords(table)
	if err != nil {
		t.Fatalf("MarshalRecords failed: %v", err)
	}

	expected := `[
  {
    "Name": "Alice",
    "Age": 30,
    "Member": true,
    "Note": "a<b"
  },
  {
    "Name": "Bob",
    "Age": null,
    "Member": null,
    "Note": null
  }
]
`
	if string(got) != expected {
		t.Errorf("MarshalRecords() =\n%s\nwant\n%s", got, expected)
	}
}

func TestMarshalRecordsEmpty(t *testing.T) {
	got, err := MarshalRecords(Normalize(rawFromStrings([][]string{{"A"}})))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[]\n" {
		t.Errorf("MarshalRecords() = %q; want []", got)
	}
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		sheet    string
		kind     ExportKind
		expected string
	}{
		{"csv", "/tmp/report.xlsx", "Sheet1", ExportCSV, "report_Sheet1.csv"},
		{"json", "people.csv", "Sheet1", ExportJSON, "people_Sheet1.json"},
		{"only last extension dropped", "q1.backup.xls", "Totals", ExportCSV, "q1.backup_Totals.csv"},
		{"no extension", "data", "Main", ExportJSON, "data_Main.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExportFileName(tt.source, tt.sheet, tt.kind)
			if got != tt.expected {
				t.Errorf("ExportFileName(%q, %q, %s) = %s; want %s", tt.source, tt.sheet, tt.kind, got, tt.expected)
			}
		})
	}
}

func TestParseExportKind(t *testing.T) {
	if k, err := ParseExportKind(" JSON "); err != nil || k != ExportJSON {
		t.Errorf("ParseExportKind(JSON) = %s, %v", k, err)
	}
	if k, err := ParseExportKind("csv"); err != nil || k != ExportCSV {
		t.Errorf("ParseExportKind(csv) = %s, %v", k, err)
	}
	if _, err := ParseExportKind("xml"); err == nil {
		t.Error("expected an error for xml")
	}
}

func TestExport(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")
	table := Normalize(rawFromStrings([][]string{{"Name", "Hours"}, {"Alice", "1.5"}, {"Bob", "2.0"}}))

	result, err := Export(table, "/data/timesheet.xlsx", "Week 1", ExportCSV, outDir)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	expectedPath := filepath.Join(outDir, "timesheet_Week 1.csv")
	if result.OutputFile != expectedPath {
		t.Errorf("OutputFile = %s; want %s", result.OutputFile, expectedPath)
	}
	if result.RowsWritten != 2 {
		t.Errorf("RowsWritten = %d; want 2", result.RowsWritten)
	}

	data, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Name,Hours\nAlice,1.5\nBob,2.0" {
		t.Errorf("file content = %q", data)
	}

	result, err = Export(table, "/data/timesheet.xlsx", "Week 1", ExportJSON, outDir)
	if err != nil {
		t.Fatalf("Export json failed: %v", err)
	}
	if filepath.Ext(result.OutputFile) != ".json" {
		t.Errorf("OutputFile = %s; want a .json file", result.OutputFile)
	}
}
