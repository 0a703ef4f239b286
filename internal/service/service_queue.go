// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/printzz/printzz/internal/locker"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/store"
	"github.com/printzz/printzz/internal/utils"
	"github.com/printzz/printzz/models"
)

// queueService keeps at most one pending document per printer.
//
// Every mutation of a slot runs under that printer's exclusive lock and the
// slot table's primary key backs the lock up, so a printer never holds two
// documents. Content is written before the lock is taken; a blob whose
// slot insert failed is removed again and anything left behind by a crash
// is collected by Sweep.
type queueService struct {
	slots       store.SlotRepository
	blobs       store.BlobStorage
	locker      locker.Locker
	idGenerator IDGenerator
	now         func() time.Time

	logger *logger.Logger
}

func NewQueueService(slots store.SlotRepository, blobs store.BlobStorage, lock locker.Locker, idGenerator IDGenerator, logger *logger.Logger) QueueService {
	return &queueService{
		slots:       slots,
		blobs:       blobs,
		locker:      lock,
		idGenerator: idGenerator,
		now:         time.Now,
		logger:      logger,
	}
}

func (q *queueService) Submit(ctx context.Context, user models.User, req models.SubmitRequest, content io.Reader) (models.Document, error) {
	log := logger.FromContext(ctx).With().Str("printer_id", req.PrinterID).Logger()

	// fast path: do not upload into a busy slot
	_, err := q.slots.GetSlot(ctx, req.PrinterID)
	switch {
	case err == nil:
		return models.Document{}, ErrQueueBusy
	case !errors.Is(err, store.ErrSlotNotFound):
		return models.Document{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	name, ext := utils.SplitFileName(req.FileName)
	doc := models.Document{
		PrinterID: req.PrinterID,
		UserID:    user.UserID,
		Username:  user.Username,
		Name:      name,
		Extension: ext,
		DocID:     q.idGenerator.Generate(),
		Settings:  req.Settings,
	}

	size, err := q.blobs.Put(ctx, doc.BlobName(), content)
	if err != nil {
		log.Err(err).Str("func", "*queueService.Submit").Msg("error storing document content")
		return models.Document{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	doc.Size = size

	unlock, err := q.locker.Lock(ctx, req.PrinterID)
	if err != nil {
		q.removeBlob(ctx, doc.BlobName())
		log.Err(err).Str("func", "*queueService.Submit").Msg("error locking printer slot")
		return models.Document{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	defer unlock()

	doc.CreatedAt = q.now().UTC()
	err = q.slots.InsertSlot(ctx, doc)
	switch {
	case errors.Is(err, store.ErrSlotOccupied):
		q.removeBlob(ctx, doc.BlobName())
		return models.Document{}, ErrQueueBusy
	case err != nil:
		q.removeBlob(ctx, doc.BlobName())
		log.Err(err).Str("func", "*queueService.Submit").Msg("error occupying printer slot")
		return models.Document{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	log.Info().Str("doc_id", doc.DocID).Str("user_id", user.UserID).Int64("size", size).Msg("document queued")
	return doc, nil
}

func (q *queueService) Peek(ctx context.Context, printerID string) (models.Document, bool, error) {
	unlock, err := q.locker.RLock(ctx, printerID)
	if err != nil {
		return models.Document{}, false, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	defer unlock()

	doc, err := q.slots.GetSlot(ctx, printerID)
	switch {
	case errors.Is(err, store.ErrSlotNotFound):
		return models.Document{}, false, nil
	case err != nil:
		return models.Document{}, false, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	return doc, true, nil
}

func (q *queueService) Fetch(ctx context.Context, printerID string) (models.Document, io.ReadCloser, error) {
	unlock, err := q.locker.RLock(ctx, printerID)
	if err != nil {
		return models.Document{}, nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	doc, err := q.slots.GetSlot(ctx, printerID)
	switch {
	case errors.Is(err, store.ErrSlotNotFound):
		unlock()
		return models.Document{}, nil, ErrSlotEmpty
	case err != nil:
		unlock()
		return models.Document{}, nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	content, err := q.blobs.Get(ctx, doc.BlobName())
	if err != nil {
		unlock()
		logger.FromContext(ctx).Err(err).Str("func", "*queueService.Fetch").
			Str("printer_id", printerID).Str("doc_id", doc.DocID).Msg("pending document has no readable content")
		return models.Document{}, nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	return doc, &lockedReadCloser{ReadCloser: content, unlock: unlock}, nil
}

func (q *queueService) Pop(ctx context.Context, printerID, docID string) error {
	log := logger.FromContext(ctx)

	unlock, err := q.locker.Lock(ctx, printerID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	defer unlock()

	doc, err := q.slots.GetSlot(ctx, printerID)
	switch {
	case errors.Is(err, store.ErrSlotNotFound):
		return ErrSlotEmpty
	case err != nil:
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	if docID != "" && doc.DocID != docID {
		log.Warn().Str("printer_id", printerID).Str("doc_id", docID).Str("pending_doc_id", doc.DocID).Msg("pop of a document that is not pending")
		return ErrDocumentNotFound
	}

	if err = q.removeSlot(ctx, doc); err != nil {
		return err
	}

	log.Info().Str("printer_id", printerID).Str("doc_id", doc.DocID).Msg("document popped")
	return nil
}

func (q *queueService) Cancel(ctx context.Context, user models.User, printerID, docID string) error {
	log := logger.FromContext(ctx)

	if printerID == "" {
		var err error
		if printerID, err = q.findPrinter(ctx, user, docID); err != nil {
			return err
		}
	}

	unlock, err := q.locker.Lock(ctx, printerID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	defer unlock()

	doc, err := q.slots.GetSlot(ctx, printerID)
	switch {
	case errors.Is(err, store.ErrSlotNotFound):
		return ErrDocumentNotFound
	case err != nil:
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	if doc.DocID != docID {
		return ErrDocumentNotFound
	}
	if doc.UserID != user.UserID {
		log.Warn().Str("user_id", user.UserID).Str("doc_id", docID).Msg("cancel of another user's document")
		return ErrForbidden
	}

	if err = q.removeSlot(ctx, doc); err != nil {
		return err
	}

	log.Info().Str("printer_id", printerID).Str("doc_id", docID).Str("user_id", user.UserID).Msg("document cancelled")
	return nil
}

func (q *queueService) List(ctx context.Context, user models.User) ([]models.Document, error) {
	docs, err := q.slots.ListSlots(ctx, store.SlotFilter{UserID: user.UserID})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return docs, nil
}

func (q *queueService) SetProgress(ctx context.Context, req models.ProgressRequest) error {
	unlock, err := q.locker.Lock(ctx, req.PrinterID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	defer unlock()

	err = q.slots.UpdateProgress(ctx, req.PrinterID, req.DocID, req.Progress)
	switch {
	case errors.Is(err, store.ErrSlotNotFound):
		return ErrDocumentNotFound
	case err != nil:
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	return nil
}

// Sweep removes blobs that no slot references. The grace period protects
// uploads whose slot row has not been inserted yet.
func (q *queueService) Sweep(ctx context.Context, grace time.Duration) (models.SweepResult, error) {
	log := logger.FromContext(ctx)

	blobs, err := q.blobs.List(ctx)
	if err != nil {
		return models.SweepResult{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	pending, err := q.slots.ListSlots(ctx, store.SlotFilter{})
	if err != nil {
		return models.SweepResult{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	live := make(map[string]struct{}, len(pending))
	for _, doc := range pending {
		live[doc.BlobName()] = struct{}{}
	}

	result := models.SweepResult{Pending: len(pending)}
	cutoff := q.now().Add(-grace)
	for _, blob := range blobs {
		if _, ok := live[blob.Name]; ok || blob.ModTime.After(cutoff) {
			continue
		}
		if err = q.blobs.Delete(ctx, blob.Name); err != nil {
			log.Err(err).Str("func", "*queueService.Sweep").Str("blob", blob.Name).Msg("error removing orphan blob")
			continue
		}
		log.Info().Str("blob", blob.Name).Int64("size", blob.Size).Msg("orphan blob removed")
		result.Removed++
	}

	return result, nil
}

// removeSlot deletes the row first; a blob left behind by a failed delete
// is harmless and gets swept later.
func (q *queueService) removeSlot(ctx context.Context, doc models.Document) error {
	err := q.slots.DeleteSlot(ctx, doc.PrinterID, doc.DocID)
	switch {
	case errors.Is(err, store.ErrSlotNotFound):
		return ErrSlotEmpty
	case err != nil:
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	q.removeBlob(ctx, doc.BlobName())
	return nil
}

func (q *queueService) removeBlob(ctx context.Context, name string) {
	// the request may already be cancelled; cleanup must still happen
	ctx = context.WithoutCancel(ctx)
	if err := q.blobs.Delete(ctx, name); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*queueService.removeBlob").Str("blob", name).Msg("error removing blob")
	}
}

func (q *queueService) findPrinter(ctx context.Context, user models.User, docID string) (string, error) {
	docs, err := q.slots.ListSlots(ctx, store.SlotFilter{UserID: user.UserID})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	for _, doc := range docs {
		if doc.DocID == docID {
			return doc.PrinterID, nil
		}
	}
	return "", ErrDocumentNotFound
}

// lockedReadCloser releases the slot's shared lock once the content is closed.
type lockedReadCloser struct {
	io.ReadCloser
	unlock locker.Unlock
	once   sync.Once
}

func (l *lockedReadCloser) Close() error {
	err := l.ReadCloser.Close()
	l.once.Do(l.unlock)
	return err
}
