// Package session holds the state of one loaded spreadsheet: the file bytes,
// the decoded workbook, the active sheet and its normalized table.
//
// A Session is not safe for concurrent use. Callers run one operation at a
// time; the UI enforces this by ignoring input while a load or sheet switch
// is in flight.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/nconklindev/sheetpeek/internal/converter"
	"github.com/nconklindev/sheetpeek/internal/logging"
	"github.com/nconklindev/sheetpeek/internal/types"
	"github.com/nconklindev/sheetpeek/internal/workbook"

	"github.com/google/uuid"
)

type State int

const (
	StateEmpty State = iota
	StateLoaded
)

func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "empty"
}

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithRegistry(r *workbook.Registry) Option {
	return func(s *Session) { s.registry = r }
}

type Session struct {
	registry *workbook.Registry
	logger   *slog.Logger

	id         uuid.UUID
	state      State
	fileName   string
	data       []byte
	format     workbook.Format
	wb         workbook.Workbook
	sheetNames []string
	active     string
	table      *types.Table
	stats      types.Stats
	err        error
}

func New(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = workbook.NewRegistry()
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	return s
}

// LoadFile reads path from disk and loads it.
func (s *Session) LoadFile(path string) error {
	// Reject unsupported types before reading a possibly large file.
	if _, err := workbook.DetectFormat(path, ""); err != nil {
		s.Reset()
		return s.fail(s.fileLogger(path), err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.Reset()
		return s.fail(s.fileLogger(path), fmt.Errorf("read %s: %w", filepath.Base(path), err))
	}
	return s.Load(path, "", data)
}

// Load decodes data, activates the first sheet and normalizes it. Whatever
// was loaded before is released first. On failure the session is left empty
// with the error recorded.
func (s *Session) Load(name, mimeType string, data []byte) error {
	s.Reset()
	s.id = uuid.New()
	log := s.fileLogger(name)

	format, wb, err := s.registry.Decode(name, mimeType, data)
	if err != nil {
		return s.fail(log, s.mapErr(format, "", err))
	}

	names := wb.SheetNames()
	if len(names) == 0 {
		wb.Close()
		return s.fail(log, fmt.Errorf("%w: workbook has no sheets", ErrEmptySheet))
	}

	first := names[0]
	raw, err := wb.Sheet(first)
	if err != nil {
		wb.Close()
		return s.fail(log, s.mapErr(format, first, err))
	}
	if len(raw) == 0 {
		wb.Close()
		return s.fail(log, fmt.Errorf("%w: %q", ErrEmptySheet, first))
	}

	s.state = StateLoaded
	s.fileName = name
	s.data = data
	s.format = format
	s.wb = wb
	s.sheetNames = names
	s.apply(first, raw, len(names))

	log.Info("file loaded",
		"format", format,
		"bytes", len(data),
		"sheets", len(names),
		"sheet", first,
		"rows", s.stats.TotalRows,
		"columns", s.stats.TotalColumns,
	)
	return nil
}

// SwitchSheet makes name the active sheet. The sheet count is carried over;
// row and column counts are recomputed. If the target sheet is empty the
// current sheet stays active.
func (s *Session) SwitchSheet(name string) error {
	if s.state != StateLoaded {
		return ErrNoFile
	}
	log := s.fileLogger(s.fileName).With("sheet", name)

	if !slices.Contains(s.sheetNames, name) {
		s.err = fmt.Errorf("%w: %q", ErrUnknownSheet, name)
		log.Warn("switch sheet failed", "error", s.err)
		return s.err
	}

	raw, err := s.wb.Sheet(name)
	if err != nil {
		s.err = s.mapErr(s.format, name, err)
		log.Warn("switch sheet failed", "error", s.err)
		return s.err
	}
	if len(raw) == 0 {
		s.err = fmt.Errorf("%w: %q", ErrEmptySheet, name)
		log.Warn("switch sheet failed", "error", s.err)
		return s.err
	}

	s.apply(name, raw, s.stats.TotalSheets)
	log.Info("sheet switched", "rows", s.stats.TotalRows, "columns", s.stats.TotalColumns)
	return nil
}

// Reset releases the file and returns the session to the empty state.
func (s *Session) Reset() {
	if s.wb != nil {
		if err := s.wb.Close(); err != nil {
			s.logger.Warn("close workbook", "session_id", s.id.String(), "error", err)
		}
	}

	s.id = uuid.UUID{}
	s.state = StateEmpty
	s.fileName = ""
	s.data = nil
	s.format = ""
	s.wb = nil
	s.sheetNames = nil
	s.active = ""
	s.table = nil
	s.stats = types.Stats{}
	s.err = nil
}

// Export serializes the active sheet.
func (s *Session) Export(kind converter.ExportKind) (converter.Artifact, error) {
	if s.state != StateLoaded {
		return converter.Artifact{}, ErrNoFile
	}

	a, err := converter.BuildArtifact(s.table, s.fileName, s.active, kind)
	if err != nil {
		return converter.Artifact{}, err
	}
	s.fileLogger(s.fileName).Info("export built", "sheet", s.active, "format", kind, "file", a.FileName, "bytes", len(a.Content))
	return a, nil
}

// ExportTo serializes the active sheet and writes it into dir.
func (s *Session) ExportTo(kind converter.ExportKind, dir string) (*types.ExportResult, error) {
	if s.state != StateLoaded {
		return nil, ErrNoFile
	}

	result, err := converter.Export(s.table, s.fileName, s.active, kind, dir)
	if err != nil {
		s.fileLogger(s.fileName).Warn("export failed", "format", kind, "error", err)
		return nil, err
	}
	s.fileLogger(s.fileName).Info("export written", "sheet", s.active, "format", kind, "output", result.OutputFile, "rows", result.RowsWritten)
	return result, nil
}

func (s *Session) ID() string {
	if s.state != StateLoaded {
		return ""
	}
	return s.id.String()
}

func (s *Session) State() State { return s.state }
func (s *Session) FileName() string { return s.fileName }
func (s *Session) Format() workbook.Format { return s.format }
func (s *Session) Size() int { return len(s.data) }
func (s *Session) SheetNames() []string { return slices.Clone(s.sheetNames) }
func (s *Session) ActiveSheet() string { return s.active }
func (s *Session) Table() *types.Table { return s.table }
func (s *Session) Stats() types.Stats { return s.stats }
func (s *Session) Err() error { return s.err }

func (s *Session) apply(name string, raw types.RawSheet, totalSheets int) {
	s.active = name
	s.table = converter.Normalize(raw)
	s.stats = converter.DeriveStats(s.table, totalSheets)
	s.err = nil
}

func (s *Session) fail(log *slog.Logger, err error) error {
	s.err = err
	log.Warn("load failed", "error", err)
	return err
}

// mapErr makes sure nothing leaves the session without one of the known
// error kinds attached.
func (s *Session) mapErr(format workbook.Format, sheet string, err error) error {
	switch {
	case errors.Is(err, workbook.ErrUnsupportedFileType),
		errors.Is(err, workbook.ErrDecodeFailure),
		errors.Is(err, ErrEmptySheet),
		errors.Is(err, ErrUnknownSheet):
		return err
	case errors.Is(err, workbook.ErrSheetNotFound):
		return fmt.Errorf("%w: %w", ErrUnknownSheet, err)
	default:
		return &workbook.DecodeError{Format: format, Sheet: sheet, Err: err}
	}
}

func (s *Session) fileLogger(name string) *slog.Logger {
	return logging.WithFields(s.logger, "session_id", s.id.String(), "file", filepath.Base(name))
}
