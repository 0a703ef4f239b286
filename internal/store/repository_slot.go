// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/models"
)

// slotRepository implements [SlotRepository] over the printer_slots table.
// The printer_id primary key guarantees at most one pending document per
// printer even if callers race past the slot lock.
type slotRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSlotRepository constructs a [SlotRepository] backed by db.
func NewSlotRepository(db *DB, logger *logger.Logger) SlotRepository {
	logger.Debug().Msg("creating slot repository")
	return &slotRepository{
		db:     db,
		logger: logger,
	}
}

func (r *slotRepository) InsertSlot(ctx context.Context, doc models.Document) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, insertSlot,
		doc.PrinterID,
		doc.DocID,
		doc.UserID,
		doc.Username,
		doc.Name,
		doc.Extension,
		doc.Settings.Copies,
		int(doc.Settings.DoubleSided),
		doc.Settings.Color,
		doc.Progress,
		doc.Size,
		doc.CreatedAt,
	)
	if err != nil {
		if r.db.IsUniqueViolation(err) {
			return ErrSlotOccupied
		}
		log.Err(err).Str("func", "*slotRepository.InsertSlot").Str("printer_id", doc.PrinterID).Msg("error inserting slot")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *slotRepository) GetSlot(ctx context.Context, printerID string) (models.Document, error) {
	log := logger.FromContext(ctx)

	doc, err := scanSlot(r.db.QueryRowContext(ctx, getSlot, printerID))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Document{}, ErrSlotNotFound
	case err != nil:
		log.Err(err).Str("func", "*slotRepository.GetSlot").Str("printer_id", printerID).Msg("error reading slot")
		return models.Document{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return doc, nil
}

func (r *slotRepository) DeleteSlot(ctx context.Context, printerID, docID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteSlotQuery(printerID, docID)
	if err != nil {
		log.Err(err).Str("func", "*slotRepository.DeleteSlot").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*slotRepository.DeleteSlot").Str("printer_id", printerID).Msg("error deleting slot")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result)
}

func (r *slotRepository) UpdateProgress(ctx context.Context, printerID, docID string, progress float64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateSlotProgress, progress, printerID, docID)
	if err != nil {
		log.Err(err).Str("func", "*slotRepository.UpdateProgress").Str("printer_id", printerID).Msg("error updating progress")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result)
}

func (r *slotRepository) ListSlots(ctx context.Context, filter SlotFilter) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListSlotsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*slotRepository.ListSlots").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*slotRepository.ListSlots").Msg("error listing slots")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		doc, err := scanSlot(rows)
		if err != nil {
			log.Err(err).Str("func", "*slotRepository.ListSlots").Msg("error scanning slot")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (models.Document, error) {
	var (
		doc         models.Document
		doubleSided int
	)
	err := row.Scan(
		&doc.PrinterID,
		&doc.DocID,
		&doc.UserID,
		&doc.Username,
		&doc.Name,
		&doc.Extension,
		&doc.Settings.Copies,
		&doubleSided,
		&doc.Settings.Color,
		&doc.Progress,
		&doc.Size,
		&doc.CreatedAt,
	)
	if err != nil {
		return models.Document{}, err
	}
	doc.Settings.DoubleSided = models.DoubleSided(doubleSided)

	return doc, nil
}

func expectAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}
