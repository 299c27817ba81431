package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/sheetpeek/internal/types"
)

type ExportKind string

const (
	ExportCSV  ExportKind = "csv"
	ExportJSON ExportKind = "json"
)

// ParseExportKind accepts "csv" or "json" in any case.
func ParseExportKind(s string) (ExportKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return ExportCSV, nil
	case "json":
		return ExportJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
	}
}

func (k ExportKind) MIMEType() string {
	if k == ExportJSON {
		return "application/json"
	}
	return "text/csv"
}

// Artifact is an export ready to be written somewhere.
type Artifact struct {
	FileName string
	MIMEType string
	Content  []byte
	Rows     int
}

// ExportFileName builds "{base}_{sheet}.{ext}" where base is the source file
// name without its last extension.
func ExportFileName(sourceFile, sheet string, kind ExportKind) string {
	name := filepath.Base(sourceFile)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return fmt.Sprintf("%s_%s.%s", base, sheet, kind)
}

// BuildArtifact serializes the table in the requested format.
func BuildArtifact(t *types.Table, sourceFile, sheet string, kind ExportKind) (Artifact, error) {
	var content []byte

	switch kind {
	case ExportCSV:
		content = []byte(ToCSV(t))
	case ExportJSON:
		data, err := MarshalRecords(t)
		if err != nil {
			return Artifact{}, fmt.Errorf("encode records: %w", err)
		}
		content = data
	default:
		return Artifact{}, fmt.Errorf("unknown export format %q", kind)
	}

	return Artifact{
		FileName: ExportFileName(sourceFile, sheet, kind),
		MIMEType: kind.MIMEType(),
		Content:  content,
		Rows:     len(t.Rows),
	}, nil
}

// WriteArtifact writes the artifact into dir, creating dir if needed, and
// returns the path written.
func WriteArtifact(a Artifact, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	outputFile := filepath.Join(dir, a.FileName)
	if err := os.WriteFile(outputFile, a.Content, 0o644); err != nil {
		return "", err
	}
	return outputFile, nil
}

// Export serializes the table and writes it into outDir.
func Export(t *types.Table, inputFile, sheet string, kind ExportKind, outDir string) (*types.ExportResult, error) {
	artifact, err := BuildArtifact(t, inputFile, sheet, kind)
	if err != nil {
		return nil, err
	}

	outputFile, err := WriteArtifact(artifact, outDir)
	if err != nil {
		return nil, err
	}

	return &types.ExportResult{
		InputFile:   inputFile,
		OutputFile:  outputFile,
		Sheet:       sheet,
		RowsWritten: artifact.Rows,
	}, nil
}
