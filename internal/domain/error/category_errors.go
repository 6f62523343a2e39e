// Package error defines domain-specific errors for the Budget Planner application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the ledger.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists is returned when attempting to create a category with an existing name.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrCategoryInUse is returned when deleting a category that is still
	// referenced by transactions. Deletion is strict: the caller must move or
	// remove the transactions first.
	ErrCategoryInUse = errors.New("category is referenced by transactions")

	// ErrReservedCategory is returned when modifying or deleting the reserved Income category.
	ErrReservedCategory = errors.New("the Income category is reserved")

	// ErrInvalidCategoryBudget is returned when the category budget is negative.
	ErrInvalidCategoryBudget = errors.New("category budget must not be negative")

	// ErrMissingCategoryName is returned when the category name is empty.
	ErrMissingCategoryName = errors.New("category name is required")

	// ErrNotAuthorizedToModifyCategory is returned when user is not authorized to modify a category.
	ErrNotAuthorizedToModifyCategory = errors.New("not authorized to modify category")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryNameExists    CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryBudget CategoryErrorCode = "CAT-010003"
	ErrCodeMissingCategoryName   CategoryErrorCode = "CAT-010004"
	ErrCodeNotAuthorizedCategory CategoryErrorCode = "CAT-010005"

	// Referential integrity errors (02XXXX)
	ErrCodeCategoryInUse    CategoryErrorCode = "CAT-020001"
	ErrCodeReservedCategory CategoryErrorCode = "CAT-020002"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
