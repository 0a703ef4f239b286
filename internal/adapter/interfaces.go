// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the printzz HTTP API, used by
// the printer agent and by the command-line client.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for a
// busy printer, [ErrNotFound] for an empty slot).
package adapter

import (
	"context"
	"io"

	"github.com/printzz/printzz/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to the printzz server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to user requests. Register
	// and Login call it on success.
	SetToken(token string)

	// Token returns the stored bearer token, or "".
	Token() string

	Register(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	Me(ctx context.Context) (models.User, error)

	// Submit uploads content to the printer named in req and returns the
	// doc_id. A busy printer yields ErrConflict.
	Submit(ctx context.Context, req models.SubmitRequest, content io.Reader) (string, error)

	ListDocuments(ctx context.Context) ([]models.Document, error)

	// Cancel removes the caller's pending document. printerID may be empty.
	Cancel(ctx context.Context, printerID, docID string) error

	// GetSettings returns the document pending on printerID; ok is false when
	// the slot is empty.
	GetSettings(ctx context.Context, printerID string) (doc models.Document, ok bool, err error)

	// Download streams the pending document's content into w and reports
	// which document the server sent.
	Download(ctx context.Context, printerID string, w io.Writer) (models.DownloadInfo, error)

	// Pop acknowledges the pending document. A non-empty docID must match.
	Pop(ctx context.Context, printerID, docID string) error

	ReportProgress(ctx context.Context, req models.ProgressRequest) error

	Version(ctx context.Context) (models.VersionResponse, error)
}
