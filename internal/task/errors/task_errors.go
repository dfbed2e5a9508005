package taskerrors

import (
	"fmt"
	"net/http"

	"github.com/djfabrix/vidiemme/internal/shared/apperror"
)

var ErrTaskNotFound = apperror.New(
	apperror.CodeNotFound,
	"Task not found",
	http.StatusNotFound,
)

// ErrAssignedEmployeeNotExists names the serial that failed the foreign key
// check when a task is created or updated.
func ErrAssignedEmployeeNotExists(serial string) *apperror.AppError {
	return apperror.New(
		apperror.CodeForeignKeyViolation,
		fmt.Sprintf("Employee with serial number %s does not exist", serial),
		http.StatusConflict,
	)
}
