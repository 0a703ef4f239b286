package store

import (
	sq "github.com/Masterminds/squirrel"
)

// Placeholders are written in ascending order so the same statements bind
// correctly on SQLite, which numbers "$N" parameters by first appearance.
const (
	insertUserCredentials = `INSERT INTO users (username, password_hash, user_id) VALUES ($1, $2, $3);`

	insertUserKey = `INSERT INTO keys (user_id, username) VALUES ($1, $2);`

	findUserByUsername = `SELECT username, password_hash, user_id FROM users WHERE username = $1;`

	findUserByID = `SELECT user_id, username FROM keys WHERE user_id = $1;`

	insertSlot = `INSERT INTO printer_slots (
			printer_id,
			doc_id,
			user_id,
			username,
			name,
			extension,
			copies,
			double_sided,
			color,
			progress,
			size,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

	getSlot = `SELECT ` + slotColumnList + ` FROM printer_slots WHERE printer_id = $1;`

	updateSlotProgress = `UPDATE printer_slots SET progress = $1 WHERE printer_id = $2 AND doc_id = $3;`
)

const slotColumnList = `printer_id, doc_id, user_id, username, name, extension, copies, double_sided, color, progress, size, created_at`

var slotColumns = []string{
	"printer_id", "doc_id", "user_id", "username", "name", "extension",
	"copies", "double_sided", "color", "progress", "size", "created_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListSlotsQuery selects pending slots narrowed by the non-empty
// filter fields.
func buildListSlotsQuery(filter SlotFilter) (string, []any, error) {
	query := psql.Select(slotColumns...).From("printer_slots")
	if filter.UserID != "" {
		query = query.Where(sq.Eq{"user_id": filter.UserID})
	}
	if filter.PrinterID != "" {
		query = query.Where(sq.Eq{"printer_id": filter.PrinterID})
	}
	return query.OrderBy("created_at", "printer_id").ToSql()
}

// buildDeleteSlotQuery deletes the printer's row, only if it holds docID
// when docID is not empty.
func buildDeleteSlotQuery(printerID, docID string) (string, []any, error) {
	query := psql.Delete("printer_slots").Where(sq.Eq{"printer_id": printerID})
	if docID != "" {
		query = query.Where(sq.Eq{"doc_id": docID})
	}
	return query.ToSql()
}
