package errors

import (
	"context"
	"encoding/json"
	std "errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrInvalidParameter = New(http.StatusBadRequest, "INVALID_PARAMETER", "Invalid parameter value")
	ErrNotFound         = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrRateLimited      = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
	ErrInternalServer   = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrDatabaseDown     = New(http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "Database temporarily unavailable")
)

// ErrValidationField creates a validation error with field details
func ErrValidationField(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", map[string]string{
		"field":   field,
		"message": message,
	})
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

// Render implements the render.Renderer interface
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return e.Error.Render(w, r)
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	json.NewEncoder(w).Encode(&ErrorResponse{Success: false, Error: err})
}

// ErrorHandler provides centralized error handling for the HTTP layer
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError maps any error to an APIError and responds with it
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	render.Render(w, r, &ErrorResponse{Success: false, Error: h.toAPIError(err)})
}

// toAPIError converts service and storage errors to API errors
func (h *ErrorHandler) toAPIError(err error) *APIError {
	if std.Is(err, context.DeadlineExceeded) || std.Is(err, context.Canceled) {
		return New(http.StatusGatewayTimeout, "TIMEOUT", "The request took too long to process")
	}

	var apiErr *APIError
	if std.As(err, &apiErr) {
		return apiErr
	}

	var appErr *AppError
	if std.As(err, &appErr) {
		switch appErr.Type {
		case ErrTypeNotFound:
			return NewWithDetails(http.StatusNotFound, "NOT_FOUND", appErr.Message, appErr.Context)
		case ErrTypeValidation:
			return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", appErr.Message, appErr.Context)
		case ErrTypeStorage:
			return ErrDatabaseDown
		}
	}

	return ErrInternalServer
}
