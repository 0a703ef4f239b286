// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/printzz/printzz/internal/utils"
	"github.com/printzz/printzz/models"
)

// Field names understood by [DocumentValidator].
const (
	FieldPrinterID   = "printer_id"
	FieldDocID       = "doc_id"
	FieldFileName    = "file_name"
	FieldExtension   = "ext"
	FieldCopies      = "copies"
	FieldDoubleSided = "double_sided"
	FieldProgress    = "progress"
)

const (
	maxPrinterIDLength = 128
	// maxFileNameLength matches printer_slots.name, counted in characters.
	maxFileNameLength = 255
	MaxCopies         = 100
)

// DocumentValidator validates print job input: [models.SubmitRequest],
// [models.ProgressRequest], [models.PrintSettings] and [models.Document].
// A bare string is validated as a printer_id.
type DocumentValidator struct{}

func NewDocumentValidator() Validator {
	return &DocumentValidator{}
}

func (v *DocumentValidator) Validate(ctx context.Context, value any, fields ...string) error {
	switch t := value.(type) {
	case string:
		return validatePrinterID(t)
	case models.SubmitRequest:
		return v.validateSubmitRequest(t, fields...)
	case *models.SubmitRequest:
		if t == nil {
			return fmt.Errorf("%w: nil *models.SubmitRequest", ErrUnsupportedType)
		}
		return v.validateSubmitRequest(*t, fields...)
	case models.ProgressRequest:
		return v.validateProgressRequest(t, fields...)
	case *models.ProgressRequest:
		if t == nil {
			return fmt.Errorf("%w: nil *models.ProgressRequest", ErrUnsupportedType)
		}
		return v.validateProgressRequest(*t, fields...)
	case models.PrintSettings:
		return v.validateSettings(t, fields...)
	case models.Document:
		return v.validateDocument(t, fields...)
	case *models.Document:
		if t == nil {
			return fmt.Errorf("%w: nil *models.Document", ErrUnsupportedType)
		}
		return v.validateDocument(*t, fields...)
	}

	return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
}

func (v *DocumentValidator) validateSubmitRequest(req models.SubmitRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPrinterID, FieldFileName, FieldExtension, FieldCopies, FieldDoubleSided}
	}

	_, ext := utils.SplitFileName(req.FileName)
	for _, field := range fields {
		var err error
		switch field {
		case FieldPrinterID:
			err = validatePrinterID(req.PrinterID)
		case FieldFileName:
			name, _ := utils.SplitFileName(req.FileName)
			err = validateFileName(name)
		case FieldExtension:
			err = validateExtension(ext)
		case FieldCopies, FieldDoubleSided:
			err = v.validateSettings(req.Settings, field)
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *DocumentValidator) validateProgressRequest(req models.ProgressRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPrinterID, FieldDocID, FieldProgress}
	}

	for _, field := range fields {
		var err error
		switch field {
		case FieldPrinterID:
			err = validatePrinterID(req.PrinterID)
		case FieldDocID:
			err = validateDocID(req.DocID)
		case FieldProgress:
			err = validateProgress(req.Progress)
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *DocumentValidator) validateSettings(settings models.PrintSettings, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCopies, FieldDoubleSided}
	}

	for _, field := range fields {
		switch field {
		case FieldCopies:
			if settings.Copies < 1 || settings.Copies > MaxCopies {
				return ErrInvalidCopies
			}
		case FieldDoubleSided:
			if !settings.DoubleSided.Valid() {
				return ErrInvalidDoubleSided
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *DocumentValidator) validateDocument(doc models.Document, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPrinterID, FieldDocID, FieldExtension, FieldCopies, FieldDoubleSided, FieldProgress}
	}

	for _, field := range fields {
		var err error
		switch field {
		case FieldPrinterID:
			err = validatePrinterID(doc.PrinterID)
		case FieldDocID:
			err = validateDocID(doc.DocID)
		case FieldFileName:
			err = validateFileName(doc.Name)
		case FieldExtension:
			err = validateExtension(doc.Extension)
		case FieldCopies, FieldDoubleSided:
			err = v.validateSettings(doc.Settings, field)
		case FieldProgress:
			err = validateProgress(doc.Progress)
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func validatePrinterID(printerID string) error {
	if printerID == "" || len(printerID) > maxPrinterIDLength {
		return ErrInvalidPrinterID
	}
	for _, r := range printerID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-':
		default:
			return ErrInvalidPrinterID
		}
	}
	return nil
}

func validateDocID(docID string) error {
	if !utils.IsUUID(docID) {
		return ErrInvalidDocID
	}
	return nil
}

func validateFileName(name string) error {
	if name == "" || utf8.RuneCountInString(name) > maxFileNameLength {
		return ErrInvalidFileName
	}
	return nil
}

func validateExtension(ext string) error {
	if !utils.ValidExtension(ext) {
		return ErrInvalidExtension
	}
	return nil
}

func validateProgress(progress float64) error {
	// NaN fails both comparisons
	if !(progress >= 0 && progress <= 1) {
		return ErrInvalidProgress
	}
	return nil
}
