package errors

import (
	"fmt"
)

// ErrorType classifies application errors. The pipeline types mirror the
// failure modes of the cleaning stages; the remaining types cover the
// loader and the reporting server.
type ErrorType string

const (
	ErrTypeDataAccess     ErrorType = "DATA_ACCESS"
	ErrTypeMalformedDate  ErrorType = "MALFORMED_DATE"
	ErrTypeMalformedValue ErrorType = "MALFORMED_VALUE"
	ErrTypeSchema         ErrorType = "SCHEMA_MISMATCH"
	ErrTypeStorage        ErrorType = "STORAGE"
	ErrTypeValidation     ErrorType = "VALIDATION"
	ErrTypeNotFound       ErrorType = "NOT_FOUND"
	ErrTypeConfig         ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	appErr, ok := err.(*AppError)
	if !ok {
		return false
	}
	return appErr.Type == errType
}

// Helper constructors for the pipeline error taxonomy.

// NewDataAccessError wraps a failure to read the raw extract or write the
// cleaned export.
func NewDataAccessError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataAccess, message, cause)
}

// NewMalformedDateError reports an order_date cell that does not parse
// under the expected layout. Row numbers are 1-based data rows, excluding
// the header, so operators can locate the cell in the source file.
func NewMalformedDateError(row int, value string) *AppError {
	return NewAppError(ErrTypeMalformedDate,
		fmt.Sprintf("order_date %q at row %d is not a valid YYYY-MM-DD date", value, row), nil).
		WithContext("row", row).
		WithContext("value", value)
}

// NewMalformedValueError reports a numeric cell that is missing or does
// not parse.
func NewMalformedValueError(row int, column, value string) *AppError {
	return NewAppError(ErrTypeMalformedValue,
		fmt.Sprintf("column %s at row %d has invalid numeric value %q", column, row, value), nil).
		WithContext("row", row).
		WithContext("column", column).
		WithContext("value", value)
}

// NewSchemaMismatchError reports a required raw column absent after header
// normalization.
func NewSchemaMismatchError(missing []string) *AppError {
	return NewAppError(ErrTypeSchema,
		fmt.Sprintf("raw extract is missing required columns: %v", missing), nil).
		WithContext("missing_columns", missing)
}

// NewStorageError creates a database-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}
