package dto

import (
	"net/http"

	"github.com/donorlink/backend/internal/domain/shared"
)

// Transport-only error codes. Domain codes live in the shared package.
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	// ErrCodeRouteNotFound is used for unmatched routes
	ErrCodeRouteNotFound = "ROUTE_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest:     http.StatusBadRequest,

	// Missing token is 401, a token that fails validation is 403
	shared.CodeUnauthorized: http.StatusUnauthorized,
	shared.CodeInvalidToken: http.StatusForbidden,
	shared.CodeForbidden:    http.StatusForbidden,

	shared.CodeNotFound:  http.StatusNotFound,
	ErrCodeRouteNotFound: http.StatusNotFound,

	// Duplicate registration and bad credentials are client errors by convention
	shared.CodeAlreadyExists:      http.StatusBadRequest,
	shared.CodeInvalidCredentials: http.StatusBadRequest,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,

	shared.CodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
