package employeeerrors

import (
	"net/http"

	"github.com/djfabrix/vidiemme/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrSerialAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same serial number already exists",
		http.StatusConflict,
	)
	ErrEmployeeHasActiveTasks = apperror.New(
		apperror.CodeConflict,
		"Cannot delete an employee with associated active tasks",
		http.StatusConflict,
	)
	ErrDismissalBeforeHiring = apperror.New(
		apperror.CodeInvalidInput,
		"Dismissal date must be greater than hiring date",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD or DD-MM-YYYY",
		http.StatusBadRequest,
	)
)
