package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/djfabrix/vidiemme/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates storage-level failures into typed domain
// errors. Anything unrecognized propagates unchanged.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 unique_violation: the serial number is the only unique
		// column on employee.
		if pgErr.Code == "23505" {
			return employeeerrors.ErrSerialAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		return employeeerrors.ErrSerialAlreadyExists
	}

	return err
}
