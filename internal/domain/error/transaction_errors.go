// Package error defines domain-specific errors for the Budget Planner application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the ledger.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrMissingTransactionDescription is returned when the transaction description is empty.
	ErrMissingTransactionDescription = errors.New("transaction description is required")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrCategoryNotFoundForTransaction is returned when the specified category is not found.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrGoalNotFoundForTransaction is returned when the specified goal is not found.
	ErrGoalNotFoundForTransaction = errors.New("goal not found")

	// ErrGoalLinkedExpense is returned when an expense transaction carries a goal link.
	// Only income transactions may contribute to a savings goal.
	ErrGoalLinkedExpense = errors.New("expense transactions cannot be linked to a goal")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType    TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount  TransactionErrorCode = "TXN-010002"
	ErrCodeMissingDescription        TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidTransactionDate    TransactionErrorCode = "TXN-010004"
	ErrCodeTransactionNotFound       TransactionErrorCode = "TXN-010005"
	ErrCodeNotAuthorizedTransaction  TransactionErrorCode = "TXN-010006"
	ErrCodeTxnCategoryNotFound       TransactionErrorCode = "TXN-010007"
	ErrCodeTxnGoalNotFound           TransactionErrorCode = "TXN-010008"
	ErrCodeGoalLinkedExpense         TransactionErrorCode = "TXN-010009"
	ErrCodeMissingTransactionFields  TransactionErrorCode = "TXN-010010"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
