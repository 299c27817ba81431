package types

// RawSheet is a decoded sheet as rows of cells. The first row conventionally
// holds the column names.
type RawSheet [][]CellValue

// Table is a sheet split into its header row and data rows. A row may hold
// fewer or more cells than there are headers.
type Table struct {
	Headers []string
	Rows    [][]CellValue
}

type Stats struct {
	TotalRows    int `json:"totalRows"`
	TotalColumns int `json:"totalColumns"`
	TotalSheets  int `json:"totalSheets"`
}

// ExportResult describes an export written to disk.
type ExportResult struct {
	InputFile   string
	OutputFile  string
	Sheet       string
	RowsWritten int
}
