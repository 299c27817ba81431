package workbook

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatCSV  Format = "csv"
)

// Extensions lists the file extensions the file picker should offer.
var Extensions = []string{".xlsx", ".xls", ".csv"}

var extensionFormats = map[string]Format{
	".xlsx": FormatXLSX,
	".xls":  FormatXLS,
	".csv":  FormatCSV,
}

var mimeFormats = map[string]Format{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FormatXLSX,
	"application/vnd.ms-excel": FormatXLS,
	"text/csv":                 FormatCSV,
	"application/csv":          FormatCSV,
}

// DetectFormat picks a format from the file name, falling back to the MIME
// type when the extension is missing or unknown.
func DetectFormat(name, mimeType string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}

	if mimeType != "" {
		if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
			if f, ok := mimeFormats[strings.ToLower(mt)]; ok {
				return f, nil
			}
		}
	}

	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFileType, filepath.Base(name))
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
}
