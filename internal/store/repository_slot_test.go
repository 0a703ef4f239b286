package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() models.Document {
	return models.Document{
		PrinterID: "printer-1",
		DocID:     "6f1c2d9e-8b7a-4a55-9c1e-2f3d4b5a6c7d",
		UserID:    alice.UserID,
		Username:  alice.Username,
		Name:      "thesis",
		Extension: "pdf",
		Settings: models.PrintSettings{
			Copies:      2,
			DoubleSided: models.DoubleSidedLongEdge,
			Color:       false,
		},
		Size:      1024,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func slotRow(doc models.Document) *sqlmock.Rows {
	return sqlmock.NewRows(slotColumns).AddRow(
		doc.PrinterID, doc.DocID, doc.UserID, doc.Username, doc.Name, doc.Extension,
		doc.Settings.Copies, int(doc.Settings.DoubleSided), doc.Settings.Color,
		doc.Progress, doc.Size, doc.CreatedAt,
	)
}

// ── InsertSlot ──

func TestInsertSlot_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotRepository(db, logger.Nop())
	doc := testDocument()

	mock.ExpectExec("INSERT INTO printer_slots").
		WithArgs(doc.PrinterID, doc.DocID, doc.UserID, doc.Username, doc.Name, doc.Extension,
			2, 1, false, 0.0, int64(1024), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.InsertSlot(context.Background(), doc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSlot_Occupied(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO printer_slots").WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.InsertSlot(context.Background(), testDocument())
	assert.ErrorIs(t, err, ErrSlotOccupied)
}

func TestInsertSlot_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO printer_slots").WillReturnError(errors.New("timeout"))

	err := repo.InsertSlot(context.Background(), testDocument())
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NotErrorIs(t, err, ErrSlotOccupied)
}

// ── GetSlot ──

func TestGetSlot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotRepository(db, logger.Nop())
	doc := testDocument()

	mock.ExpectQuery("SELECT .* FROM printer_slots WHERE printer_id").
		WithArgs("printer-1").
		WillReturnRows(slotRow(doc))
	mock.ExpectQuery("SELECT .* FROM printer_slots WHERE printer_id").
		WithArgs("printer-2").
		WillReturnRows(sqlmock.NewRows(slotColumns))

	got, err := repo.GetSlot(context.Background(), "printer-1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	_, err = repo.GetSlot(context.Background(), "printer-2")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

// ── DeleteSlot ──

func TestDeleteSlot_Conditional(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM printer_slots WHERE printer_id = $1 AND doc_id = $2")).
		WithArgs("printer-1", "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM printer_slots WHERE printer_id = $1 AND doc_id = $2")).
		WithArgs("printer-1", "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteSlot(context.Background(), "printer-1", "doc-1"))
	assert.ErrorIs(t, repo.DeleteSlot(context.Background(), "printer-1", "doc-1"), ErrSlotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSlot_AnyDocument(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM printer_slots WHERE printer_id = $1")).
		WithArgs("printer-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteSlot(context.Background(), "printer-1", ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── UpdateProgress ──

func TestUpdateProgress(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotRepository(db, logger.Nop())

	mock.ExpectExec("UPDATE printer_slots SET progress").
		WithArgs(0.5, "printer-1", "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE printer_slots SET progress").
		WithArgs(1.0, "printer-1", "stale").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateProgress(context.Background(), "printer-1", "doc-1", 0.5))
	assert.ErrorIs(t, repo.UpdateProgress(context.Background(), "printer-1", "stale", 1), ErrSlotNotFound)
}

// ── ListSlots ──

func TestListSlots_ByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotRepository(db, logger.Nop())
	doc := testDocument()

	mock.ExpectQuery(regexp.QuoteMeta("FROM printer_slots WHERE user_id = $1 ORDER BY created_at, printer_id")).
		WithArgs(alice.UserID).
		WillReturnRows(slotRow(doc))

	docs, err := repo.ListSlots(context.Background(), SlotFilter{UserID: alice.UserID})
	require.NoError(t, err)
	assert.Equal(t, []models.Document{doc}, docs)
}

func TestListSlots_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotRepository(db, logger.Nop())

	mock.ExpectQuery("FROM printer_slots").WillReturnRows(sqlmock.NewRows(slotColumns))

	docs, err := repo.ListSlots(context.Background(), SlotFilter{})
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestListSlots_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotRepository(db, logger.Nop())

	mock.ExpectQuery("FROM printer_slots").WillReturnError(errors.New("boom"))

	_, err := repo.ListSlots(context.Background(), SlotFilter{PrinterID: "p"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}
