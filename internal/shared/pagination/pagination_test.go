package pagination

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		offset   int
		limit    int
		expected Window
	}{
		{
			name:     "both set",
			offset:   20,
			limit:    10,
			expected: Window{Offset: 20, Limit: 10},
		},
		{
			name:     "zero values stay unset",
			offset:   0,
			limit:    0,
			expected: Window{},
		},
		{
			name:     "negative values stay unset",
			offset:   -1,
			limit:    -10,
			expected: Window{},
		},
		{
			name:     "offset without limit",
			offset:   5,
			limit:    0,
			expected: Window{Offset: 5},
		},
		{
			name:     "limit without offset",
			offset:   0,
			limit:    25,
			expected: Window{Limit: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.offset, tt.limit))
		})
	}
}

func dryRunSession(t *testing.T) *gorm.DB {
	t.Helper()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing: true,
		DryRun:               true,
	})
	assert.NoError(t, err)

	return gdb
}

func TestWindowScope(t *testing.T) {
	t.Run("offset and limit compose into the query", func(t *testing.T) {
		gdb := dryRunSession(t)

		// Ten rows starting after the twentieth: rows 21-30 in stored order.
		stmt := gdb.Table("task").
			Scopes(Window{Offset: 20, Limit: 10}.Scope()).
			Find(&[]map[string]any{}).Statement

		assert.Equal(t, `SELECT * FROM "task" LIMIT $1 OFFSET $2`, stmt.SQL.String())
		assert.Equal(t, []any{10, 20}, stmt.Vars)
	})

	t.Run("limit alone caps without skipping", func(t *testing.T) {
		gdb := dryRunSession(t)

		stmt := gdb.Table("task").
			Scopes(Window{Limit: 10}.Scope()).
			Find(&[]map[string]any{}).Statement

		assert.Equal(t, `SELECT * FROM "task" LIMIT $1`, stmt.SQL.String())
		assert.Equal(t, []any{10}, stmt.Vars)
	})

	t.Run("offset alone skips without capping", func(t *testing.T) {
		gdb := dryRunSession(t)

		stmt := gdb.Table("task").
			Scopes(Window{Offset: 20}.Scope()).
			Find(&[]map[string]any{}).Statement

		assert.Equal(t, `SELECT * FROM "task" OFFSET $1`, stmt.SQL.String())
		assert.Equal(t, []any{20}, stmt.Vars)
	})

	t.Run("bare window leaves the query unbounded", func(t *testing.T) {
		gdb := dryRunSession(t)

		stmt := gdb.Table("task").
			Scopes(Window{}.Scope()).
			Find(&[]map[string]any{}).Statement

		assert.Equal(t, `SELECT * FROM "task"`, stmt.SQL.String())
		assert.Empty(t, stmt.Vars)
	})
}
