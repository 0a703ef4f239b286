package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildListSlotsQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    SlotFilter
		wantWhere string
		wantArgs  []any
	}{
		{name: "all", filter: SlotFilter{}, wantWhere: "", wantArgs: nil},
		{name: "user", filter: SlotFilter{UserID: "u"}, wantWhere: " WHERE user_id = $1", wantArgs: []any{"u"}},
		{
			name:      "user and printer",
			filter:    SlotFilter{UserID: "u", PrinterID: "p"},
			wantWhere: " WHERE user_id = $1 AND printer_id = $2",
			wantArgs:  []any{"u", "p"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListSlotsQuery(tt.filter)
			require.NoError(t, err)

			assert.Equal(t, "SELECT "+slotColumnList+" FROM printer_slots"+tt.wantWhere+" ORDER BY created_at, printer_id", query)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
				return
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_buildDeleteSlotQuery(t *testing.T) {
	query, args, err := buildDeleteSlotQuery("p", "")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM printer_slots WHERE printer_id = $1", query)
	assert.Equal(t, []any{"p"}, args)

	query, args, err = buildDeleteSlotQuery("p", "d")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM printer_slots WHERE printer_id = $1 AND doc_id = $2", query)
	assert.Equal(t, []any{"p", "d"}, args)
}

func Test_isPostgresDSN(t *testing.T) {
	assert.True(t, isPostgresDSN("postgres://u:p@localhost/db"))
	assert.True(t, isPostgresDSN("POSTGRESQL://localhost/db"))
	assert.False(t, isPostgresDSN("printzz.db"))
	assert.False(t, isPostgresDSN("file:printzz.db?cache=shared"))
}

func Test_sqlitePath(t *testing.T) {
	assert.Equal(t, "data/printzz.db", sqlitePath("file:data/printzz.db?_busy_timeout=1"))
	assert.Equal(t, "printzz.db", sqlitePath("printzz.db"))
	assert.Equal(t, "", sqlitePath(":memory:"))
}
