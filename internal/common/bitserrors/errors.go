// Package bitserrors contains typed errors returned by code handling MCP tool
// requests. Tool handlers look for the error types defined in this file and
// set the error kind on the structured error payload returned to the caller.
package bitserrors

import (
	"fmt"
	"strings"
)

// Error kinds surfaced to MCP callers.
const (
	KindInvalidFilter  = "InvalidFilterError"
	KindConnection     = "ConnectionError"
	KindQueryExecution = "QueryExecutionError"
	KindInternal       = "InternalError"
)

// ErrInvalidFilter is returned when a query filter refers to a field that is
// not allow-listed, uses an unsupported operator, or carries a malformed
// value. It is always raised before any database interaction.
type ErrInvalidFilter struct {
	Field    string
	Operator string
	Message  string
}

func (err *ErrInvalidFilter) Error() (s string) {
	if err.Operator != "" {
		s = fmt.Sprintf("invalid filter on field %q with operator %q", err.Field, err.Operator)
	} else if err.Field != "" {
		s = fmt.Sprintf("invalid filter on field %q", err.Field)
	} else {
		s = "invalid filter"
	}
	if err.Message != "" {
		s = s + "; " + err.Message
	}
	return
}

// ErrInvalidStatus is returned when a request restricts results to status ids
// that do not exist. Like ErrInvalidFilter it is raised before touching the
// database table holding business requests.
type ErrInvalidStatus struct {
	Invalid []string
	Valid   []string
}

func (err *ErrInvalidStatus) Error() string {
	return fmt.Sprintf(
		"invalid STATUS_ID(s): %s; must be one of: %s",
		strings.Join(err.Invalid, ", "), strings.Join(err.Valid, ", "),
	)
}

// ErrConnection is returned when the database cannot be reached.
type ErrConnection struct {
	Message string
	Cause   error
}

func (err *ErrConnection) Error() string {
	s := "database unreachable"
	if err.Message != "" {
		s = s + ": " + err.Message
	}
	if err.Cause != nil {
		s = fmt.Sprintf("%s: %v", s, err.Cause)
	}
	return s
}

func (err *ErrConnection) Unwrap() error {
	return err.Cause
}

// ErrQueryExecution is returned when the driver reports a SQL-level failure.
// The driver's message is propagated; the statement text is not, so that raw
// SQL never leaks into user-facing errors.
type ErrQueryExecution struct {
	Cause error
}

func (err *ErrQueryExecution) Error() string {
	if err.Cause == nil {
		return "query execution failed"
	}
	return fmt.Sprintf("query execution failed: %v", err.Cause)
}

func (err *ErrQueryExecution) Unwrap() error {
	return err.Cause
}
