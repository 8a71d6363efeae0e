package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates the actor is not allowed to perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Ledger/wallet taxonomy. Each of these is raised before or inside the
// enclosing database transaction and aborts it; no partial ledger or
// wallet state may persist.
var (
	// ErrInvalidAmount indicates a credit/debit/transfer amount <= 0.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientFunds indicates a debit exceeding the available balance
	// or violating a transaction/daily/monthly limit.
	ErrInsufficientFunds = errors.New("insufficient funds or limit exceeded")

	// ErrInvalidHoldAmount indicates a hold release/capture amount outside (0, hold_balance].
	ErrInvalidHoldAmount = errors.New("amount exceeds current hold balance")

	// ErrCannotCloseAccount indicates a close attempt on an account with a non-zero balance.
	ErrCannotCloseAccount = errors.New("account balance must be zero to close")

	// ErrIdenticalAccounts indicates a journal whose debit and credit account are the same.
	ErrIdenticalAccounts = errors.New("debit and credit accounts must differ")

	// ErrNotOperational indicates a wallet that is locked, suspended or inactive.
	ErrNotOperational = errors.New("wallet is not operational")
)

// AppError wraps a lower-level failure with an HTTP-ish status code.
// Repositories return these for infrastructure failures; services pass
// them through untouched.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewRetryableError marks a lock-contention/deadlock failure the caller may retry.
func NewRetryableError(message string, err error) *AppError {
	return &AppError{Code: 409, Message: message, Err: err}
}
