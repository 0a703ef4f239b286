// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself.
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrMissingFile is returned when a submit form has no "file" part.
	ErrMissingFile = errors.New("multipart form has no file")

	ErrInvalidFormValue = errors.New("invalid form value")

	ErrMissingPrinterID = errors.New("printer_id is required")

	// ErrPrinterIDMismatch is returned when the query and the JSON body name
	// different printers.
	ErrPrinterIDMismatch = errors.New("printer_id in query and body differ")

	// ErrInvalidPrinterSignature is returned when printer signatures are
	// enabled and X-Printer-Signature does not match the printer_id.
	ErrInvalidPrinterSignature = errors.New("invalid printer signature")

	ErrUploadTooLarge = errors.New("document is too large")
)
