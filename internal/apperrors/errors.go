package apperrors

import "errors"

// ErrNotFound indicates that a referenced product or transaction does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateEmail indicates a registration attempt with an email that is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInvalidCredentials is returned for both unknown email and wrong password,
// so a caller cannot tell which of the two failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvariantViolation indicates the paired transaction-record and stock-quantity
// writes could not both commit. The whole operation was rolled back and is safe
// to retry.
var ErrInvariantViolation = errors.New("transaction and stock update could not both commit")
