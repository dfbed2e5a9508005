package task

import (
	"errors"
	"strings"

	taskerrors "github.com/djfabrix/vidiemme/internal/task/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates storage-level failures into typed domain
// errors. serial is the employee reference carried by the write that
// failed, empty when the operation had none.
func mapRepositoryError(err error, serial string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taskerrors.ErrTaskNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 foreign_key_violation: the task points at a serial number
		// with no employee row behind it.
		if pgErr.Code == "23503" {
			return taskerrors.ErrAssignedEmployeeNotExists(serial)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "violates foreign key constraint") {
		return taskerrors.ErrAssignedEmployeeNotExists(serial)
	}

	return err
}
