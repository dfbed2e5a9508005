package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	// Referential integrity: a record points at a row that does not exist.
	CodeForeignKeyViolation = "FOREIGN_KEY_VIOLATION"

	// Server errors (5xx)
	CodeInternalError = "INTERNAL_ERROR"
)
