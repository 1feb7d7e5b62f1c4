// Package errors provides the structured error type used by the contact list.
// Every error carries a category, a code, a message and a retryable flag.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies errors by the component that raised them.
type Category string

const (
	CategoryLoad      Category = "LOAD"
	CategoryDirectory Category = "DIRECTORY"
	CategoryConfig    Category = "CONFIG"
	CategoryStorage   Category = "STORAGE"
)

const (
	// Load codes
	CodeQueryFailed = "QUERY_FAILED"
	CodeCanceled    = "CANCELED"

	// Directory codes
	CodeEmptyDirectoryList = "EMPTY_DIRECTORY_LIST"
	CodeUnknownSearchMode  = "UNKNOWN_SEARCH_MODE"
	CodeUnknownDirectory   = "UNKNOWN_DIRECTORY"

	// Config codes
	CodeInvalidConfig = "INVALID_CONFIG"

	// Storage codes
	CodeOpenFailed   = "OPEN_FAILED"
	CodeMigration    = "MIGRATION_FAILED"
	CodeWriteFailed  = "WRITE_FAILED"
	CodeImportFailed = "IMPORT_FAILED"
	CodeThrottled    = "THROTTLED"
)

// ListError is the structured error type.
type ListError struct {
	Category  Category
	Code      string
	Message   string
	Cause     error
	Retryable bool
}

func (e *ListError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

func (e *ListError) Unwrap() error {
	return e.Cause
}

// Is reports whether target has the same category and code.
func (e *ListError) Is(target error) bool {
	var t *ListError
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// New creates a ListError.
func New(category Category, code, message string) *ListError {
	return &ListError{
		Category:  category,
		Code:      code,
		Message:   message,
		Retryable: isRetryable(category, code),
	}
}

// Wrap creates a ListError around cause.
func Wrap(category Category, code, message string, cause error) *ListError {
	return &ListError{
		Category:  category,
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: isRetryable(category, code),
	}
}

// IsRetryable checks whether err (or its chain) is retryable.
func IsRetryable(err error) bool {
	var le *ListError
	if errors.As(err, &le) {
		return le.Retryable
	}
	return false
}

// GetCategory returns the category of the first ListError in the chain, or "".
func GetCategory(err error) Category {
	var le *ListError
	if errors.As(err, &le) {
		return le.Category
	}
	return ""
}

// GetCode returns the code of the first ListError in the chain, or "".
func GetCode(err error) string {
	var le *ListError
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}

// Failed directory loads are never retried; the partition stays in the
// loading state until the next full reload.
func isRetryable(category Category, code string) bool {
	switch {
	case category == CategoryStorage && code == CodeThrottled:
		return true
	default:
		return false
	}
}

// ErrEmptyDirectoryList is returned when a directory enumeration yields no rows.
var ErrEmptyDirectoryList = New(CategoryDirectory, CodeEmptyDirectoryList, "directory list is empty")

func NewLoadError(message string, cause error) *ListError {
	return Wrap(CategoryLoad, CodeQueryFailed, message, cause)
}

func NewStorageError(code, message string, cause error) *ListError {
	return Wrap(CategoryStorage, code, message, cause)
}

func NewConfigError(message string, cause error) *ListError {
	return Wrap(CategoryConfig, CodeInvalidConfig, message, cause)
}
