package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername    = errors.New("username must be 1-64 characters without whitespace")
	ErrInvalidPassword    = errors.New("password must be 1-256 characters")
	ErrInvalidPrinterID   = errors.New("printer_id must be 1-128 characters of letters, digits, '.', '_' or '-'")
	ErrInvalidDocID       = errors.New("doc_id must be a UUID")
	ErrInvalidFileName    = errors.New("file name is empty or longer than 255 characters")
	ErrInvalidExtension   = errors.New("file extension must be alphanumeric and at most 16 characters")
	ErrInvalidCopies      = errors.New("copies must be between 1 and 100")
	ErrInvalidDoubleSided = errors.New("double_sided must be none, long_edge or short_edge")
	ErrInvalidProgress    = errors.New("progress must be between 0 and 1")
)
