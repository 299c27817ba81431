package session

import (
	"errors"
	"io/fs"

	"github.com/nconklindev/sheetpeek/internal/workbook"
)

var (
	// ErrEmptySheet means the sheet holds no rows at all, not even a header.
	ErrEmptySheet = errors.New("sheet is empty")

	ErrNoFile       = errors.New("no file loaded")
	ErrUnknownSheet = errors.New("unknown sheet")
)

// Message turns any error produced by a Session into one line suitable for
// showing to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, workbook.ErrUnsupportedFileType):
		return "Unsupported file type. Please choose an .xlsx, .xls or .csv file."
	case errors.Is(err, ErrEmptySheet):
		return "The file is empty or contains no data."
	case errors.Is(err, workbook.ErrDecodeFailure):
		return "The file could not be read. It may be damaged or not a valid spreadsheet."
	case errors.Is(err, ErrUnknownSheet):
		return "That sheet does not exist in this workbook."
	case errors.Is(err, ErrNoFile):
		return "No file is loaded."
	case errors.Is(err, fs.ErrNotExist):
		return "The file could not be found."
	case errors.Is(err, fs.ErrPermission):
		return "The file could not be opened: permission denied."
	default:
		return "Something went wrong: " + err.Error()
	}
}
