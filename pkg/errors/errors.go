// Package errors provides structured error handling for the application
// Following enterprise patterns for error management and observability
package errors

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal             ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable   ErrorCode = "SERVICE_UNAVAILABLE"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Business logic errors
	CodeShoppingListNotFound ErrorCode = "SHOPPING_LIST_NOT_FOUND"
	CodeItemNotFound         ErrorCode = "ITEM_NOT_FOUND"
	CodeDuplicateItem        ErrorCode = "DUPLICATE_ITEM"
	CodeInventoryNotFound    ErrorCode = "INVENTORY_ITEM_NOT_FOUND"
	CodeEmbeddingFailed      ErrorCode = "EMBEDDING_FAILED"
)

// AppError represents an application error with structured information
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeNotFound, CodeShoppingListNotFound, CodeItemNotFound, CodeInventoryNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeDuplicateItem:
		return http.StatusConflict
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Details:    details,
		StackTrace: getStackTrace(),
	}
}

// Predefined error constructors for common scenarios

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	message := "Resource not found"
	if resource != "" {
		message = fmt.Sprintf("%s not found", strings.Title(resource))
	}
	return NewAppError(CodeNotFound, message, "")
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return NewAppError(CodeConflict, message, "")
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// NewExternalServiceError creates an external service error
func NewExternalServiceError(service string, cause error) *AppError {
	return NewAppError(
		CodeExternalServiceError,
		"External service error",
		fmt.Sprintf("Failed to communicate with %s", service),
	).WithCause(cause)
}

// Business domain specific errors

// NewShoppingListNotFoundError creates a shopping list not found error
func NewShoppingListNotFoundError(weekStart string) *AppError {
	return NewAppError(
		CodeShoppingListNotFound,
		"Shopping list not found",
		fmt.Sprintf("No shopping list exists for the week of %s", weekStart),
	).WithMetadata("week_start", weekStart)
}

// NewItemNotFoundError creates a shopping list item not found error
func NewItemNotFoundError(itemID string) *AppError {
	return NewAppError(
		CodeItemNotFound,
		"Shopping list item not found",
		fmt.Sprintf("Item with ID %s does not exist", itemID),
	).WithMetadata("item_id", itemID)
}

// NewDuplicateItemError creates a duplicate item error
func NewDuplicateItemError(name, source string) *AppError {
	return NewAppError(
		CodeDuplicateItem,
		"Item already on list",
		fmt.Sprintf("An item named %q with source %q is already present", name, source),
	).WithMetadata("name", name).WithMetadata("source", source)
}

// NewInventoryItemNotFoundError creates an inventory item not found error
func NewInventoryItemNotFoundError(itemID string) *AppError {
	return NewAppError(
		CodeInventoryNotFound,
		"Inventory item not found",
		fmt.Sprintf("Inventory item with ID %s does not exist", itemID),
	).WithMetadata("item_id", itemID)
}

// NewEmbeddingError creates an embedding computation error
func NewEmbeddingError(cause error) *AppError {
	return NewAppError(
		CodeEmbeddingFailed,
		"Embedding computation failed",
		"The embedding provider returned an error or a malformed response",
	).WithCause(cause)
}

// Utility functions

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// getStackTrace captures the current stack trace
func getStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var builder strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "pkg/errors") {
			builder.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return builder.String()
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails represents the error details in API responses
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// ToErrorResponse converts an AppError to an API error response
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			Metadata:  err.Metadata,
			RequestID: requestID,
			Timestamp: fmt.Sprintf("%d", time.Now().Unix()),
		},
	}
}
