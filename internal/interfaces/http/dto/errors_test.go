package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusForCode(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"HAS_PAYMENTS", http.StatusConflict},
		{"USERNAME_TAKEN", http.StatusConflict},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"TOKEN_REVOKED", http.StatusUnauthorized},
		{"ACCOUNT_INACTIVE", http.StatusForbidden},
		{"CUSTOMER_SUSPENDED", http.StatusUnprocessableEntity},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"EXCEEDS_OUTSTANDING", http.StatusUnprocessableEntity},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"CONSISTENCY_VIOLATION", http.StatusInternalServerError},
		{"INVALID_MODE", http.StatusBadRequest},
		{"INVALID_PAYMENT_DAY", http.StatusBadRequest},
		{"INVALID_DISCOUNT", http.StatusBadRequest},
		{"SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatusForCode(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Sale not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
