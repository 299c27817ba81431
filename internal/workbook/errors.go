package workbook

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFileType is returned when neither the file extension nor
	// the MIME type names a spreadsheet format we can decode.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrDecodeFailure is matched by every *DecodeError.
	ErrDecodeFailure = errors.New("could not decode workbook")

	// ErrSheetNotFound is returned by Workbook.Sheet for a name the workbook
	// does not contain.
	ErrSheetNotFound = errors.New("sheet not found")
)

// DecodeError wraps a failure raised by an underlying spreadsheet library.
type DecodeError struct {
	Format Format
	Sheet  string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("decode %s sheet %q: %v", e.Format, e.Sheet, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecodeFailure
}

func newDecodeError(format Format, sheet string, err error) *DecodeError {
	return &DecodeError{Format: format, Sheet: sheet, Err: err}
}

// recoverDecode turns a panic inside a decoder into a DecodeError. Some
// legacy readers index into malformed records without bounds checks.
func recoverDecode(format Format, sheet string, errp *error) {
	if r := recover(); r != nil {
		*errp = newDecodeError(format, sheet, fmt.Errorf("decoder panic: %v", r))
	}
}
