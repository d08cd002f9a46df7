package bitserrors

import "errors"

// KindOf classifies an error into one of the error kinds returned to MCP
// callers. Unrecognised errors are reported as internal.
func KindOf(err error) string {
	var invalidFilter *ErrInvalidFilter
	if errors.As(err, &invalidFilter) {
		return KindInvalidFilter
	}
	var invalidStatus *ErrInvalidStatus
	if errors.As(err, &invalidStatus) {
		return KindInvalidFilter
	}
	var connection *ErrConnection
	if errors.As(err, &connection) {
		return KindConnection
	}
	var queryExecution *ErrQueryExecution
	if errors.As(err, &queryExecution) {
		return KindQueryExecution
	}
	return KindInternal
}

// IsValidationError reports whether err was raised by request validation,
// i.e. before any database interaction.
func IsValidationError(err error) bool {
	kind := KindOf(err)
	return kind == KindInvalidFilter
}
