package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCode identifies a business failure the API contract names. Anything
// else (database faults, crypto faults) travels as an ExternalError and
// surfaces as a plain server error.
type ErrCode string

const (
	CodeNotFoundBoard   ErrCode = "NOT_FOUND_BOARD"
	CodeNotFoundArticle ErrCode = "NOT_FOUND_ARTICLE"
	CodeNotFoundComment ErrCode = "NOT_FOUND_COMMENT"

	CodeRequiredPermission     ErrCode = "REQUIRED_PERMISSION"
	CodeExpiredPermission      ErrCode = "EXPIRED_PERMISSION"
	CodeInvalidPermission      ErrCode = "INVALID_PERMISSION"
	CodeInsufficientPermission ErrCode = "INSUFFICIENT_PERMISSION"

	// Token-layer codes; the auth resolver translates these into the
	// permission codes above before they reach a handler.
	CodeExpiredToken ErrCode = "EXPIRED"
	CodeInvalidToken ErrCode = "INVALID"

	CodeFailedAuthentication ErrCode = "FAILED_AUTHENTICATION"
	CodeDuplicateAccount     ErrCode = "DUPLICATE_ACCOUNT"
)

// AppError is a business rule violation with a stable code.
type AppError struct {
	Code ErrCode
}

func NewAppError(code ErrCode) *AppError {
	return &AppError{Code: code}
}

func (e *AppError) Error() string {
	return strings.ToLower(strings.ReplaceAll(string(e.Code), "_", " "))
}

// ExternalError wraps a dependency failure (database, crypto, network)
// with the operation that hit it.
type ExternalError struct {
	Op  string
	Err error
}

func NewExternalError(op string, err error) *ExternalError {
	return &ExternalError{Op: op, Err: err}
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the business code from err, or "" when err is nil or
// carries no code.
func CodeOf(err error) ErrCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func IsCode(err error, code ErrCode) bool {
	return CodeOf(err) == code
}
