package task

import (
	"errors"
	"testing"

	taskerrors "github.com/djfabrix/vidiemme/internal/task/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, mapRepositoryError(nil, ""))
	})

	t.Run("record not found", func(t *testing.T) {
		err := mapRepositoryError(gorm.ErrRecordNotFound, "")
		assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
	})

	t.Run("foreign key violation names the serial", func(t *testing.T) {
		err := mapRepositoryError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_task_employee"}, "99999")
		assert.EqualError(t, err, "Employee with serial number 99999 does not exist")
	})

	t.Run("foreign key violation by message", func(t *testing.T) {
		err := mapRepositoryError(errors.New(`ERROR: insert or update on table "task" violates foreign key constraint "fk_task_employee"`), "12345")
		assert.EqualError(t, err, "Employee with serial number 12345 does not exist")
	})

	t.Run("unknown error propagates unchanged", func(t *testing.T) {
		cause := errors.New("connection refused")
		assert.ErrorIs(t, mapRepositoryError(cause, ""), cause)
	})
}
