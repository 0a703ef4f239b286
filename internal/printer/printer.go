// Package printer hands downloaded documents to the operating system's print
// spooler.
package printer

import (
	"context"

	"github.com/printzz/printzz/models"
)

//go:generate mockgen -source=printer.go -destination=../mock/printer.go -package=mock

// Printer prints the file at path with the given settings.
type Printer interface {
	Print(ctx context.Context, path string, settings models.PrintSettings) error
}
