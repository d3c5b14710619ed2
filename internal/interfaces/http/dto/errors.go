package dto

import "net/http"

// Error codes raised by the HTTP layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeStatus maps domain error codes onto HTTP status codes.
// Validation-style codes fall through to the INVALID_ prefix rule.
var errorCodeStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInternal:     http.StatusInternalServerError,

	"ALREADY_EXISTS":       http.StatusConflict,
	"USERNAME_TAKEN":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"HAS_PAYMENTS":         http.StatusConflict,

	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,

	"CUSTOMER_SUSPENDED":  http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":  http.StatusUnprocessableEntity,
	"EXCEEDS_OUTSTANDING": http.StatusUnprocessableEntity,
	"INVALID_STATE":       http.StatusUnprocessableEntity,

	"CONSISTENCY_VIOLATION":   http.StatusInternalServerError,
	"HASH_FAILED":             http.StatusInternalServerError,
	"TOKEN_GENERATION_FAILED": http.StatusInternalServerError,
}

// HTTPStatusForCode returns the HTTP status for a domain error code.
// Unmapped INVALID_* codes are treated as client input errors; anything
// else unknown is a server error.
func HTTPStatusForCode(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}
	if len(code) >= 8 && code[:8] == "INVALID_" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
