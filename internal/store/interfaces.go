// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"
	"time"

	"github.com/printzz/printzz/models"
)

// UserRepository persists credential records.
type UserRepository interface {
	// CreateUser inserts the credential and lookup rows in one transaction.
	// Returns ErrUsernameAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, user models.User) error

	// FindUserByUsername returns the user with its PasswordHash populated.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByID returns the identity registered under userID.
	FindUserByID(ctx context.Context, userID string) (models.User, error)
}

// SlotRepository persists the one-document-per-printer slots.
type SlotRepository interface {
	// InsertSlot returns ErrSlotOccupied when the printer already has a row.
	InsertSlot(ctx context.Context, doc models.Document) error

	// GetSlot returns ErrSlotNotFound for an empty slot.
	GetSlot(ctx context.Context, printerID string) (models.Document, error)

	// DeleteSlot removes the printer's row. A non-empty docID restricts the
	// delete to that document. Returns ErrSlotNotFound if nothing matched.
	DeleteSlot(ctx context.Context, printerID, docID string) error

	// UpdateProgress sets the progress of the printer's current document.
	UpdateProgress(ctx context.Context, printerID, docID string, progress float64) error

	// ListSlots returns pending documents matching filter, oldest first.
	ListSlots(ctx context.Context, filter SlotFilter) ([]models.Document, error)
}

// SlotFilter narrows ListSlots. Zero fields match everything.
type SlotFilter struct {
	UserID    string
	PrinterID string
}

// BlobStorage stores document contents under {doc_id}.{ext} names.
//
//go:generate mockgen -source=interfaces.go -destination=../mock/store.go -package=mock
type BlobStorage interface {
	// Put writes r under name and returns the number of bytes written.
	// The blob becomes visible under name only once fully written.
	Put(ctx context.Context, name string, r io.Reader) (int64, error)

	// Get opens the blob. The caller closes the reader.
	Get(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns every stored blob.
	List(ctx context.Context) ([]BlobInfo, error)
}

// BlobInfo describes a stored blob.
type BlobInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}
