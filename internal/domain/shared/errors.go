package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinels compare equal
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared across bounded contexts
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternal           = "INTERNAL_ERROR"
)

// Common domain errors
var (
	ErrNotFound           = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists      = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput       = NewDomainError(CodeValidation, "Invalid input provided")
	ErrUnauthorized       = NewDomainError(CodeUnauthorized, "Access token required")
	ErrInvalidToken       = NewDomainError(CodeInvalidToken, "Invalid or expired token")
	ErrForbidden          = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrInvalidCredentials = NewDomainError(CodeInvalidCredentials, "Invalid credentials")
)

// NewValidationError reports a missing or malformed field
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewNotFoundError reports a referenced entity that does not exist
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewForbiddenError reports an authenticated actor that is not a party to the resource
func NewForbiddenError(message string) *DomainError {
	return NewDomainError(CodeForbidden, message)
}

// NewConflictError reports a duplicate resource
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeAlreadyExists, message)
}

// IsNotFound reports whether err is (or wraps) a not-found domain error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
