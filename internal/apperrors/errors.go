package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates the caller lacks the privileges for the operation,
// e.g. a non-admin attempting an admin-only action.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not access another user's resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal marks infrastructure failures whose detail must not reach the client.
// Any AppError with a 5xx code matches it.
var ErrInternal = errors.New("internal error")

// ErrInvalidAmount indicates a non-positive (or zero, for adjustments) amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientFunds indicates a debit would drive a wallet balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrRequestNotPending indicates an adjudication was attempted on an already resolved record.
var ErrRequestNotPending = errors.New("request is not pending")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
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

// Is lets errors.Is(err, ErrInternal) match server-side AppErrors whatever their cause.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal && e.Code >= http.StatusInternalServerError
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}
