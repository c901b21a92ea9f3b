package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_StatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"unauthorized", NewUnauthorizedError("who"), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), ErrorTypeForbidden, http.StatusForbidden},
		{"provider", NewProviderError("upstream"), ErrorTypeProvider, http.StatusBadGateway},
		{"network", NewNetworkError("timeout"), ErrorTypeNetwork, http.StatusServiceUnavailable},
		{"storage", NewStorageError("db"), ErrorTypeStorage, http.StatusInternalServerError},
		{"internal", NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
		{"bad request", NewBadRequestError("nope"), ErrorTypeBadRequest, http.StatusBadRequest},
		{"rate limited", NewRateLimitedError("slow down"), ErrorTypeRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_Details(t *testing.T) {
	err := NewValidationError("invalid timezone", "Not/AZone")
	assert.Equal(t, "Not/AZone", err.Details)
	assert.Equal(t, "validation_error: invalid timezone (Not/AZone)", err.Error())
}

func TestAppError_WithCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewStorageError("failed to load timezone").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPredicates_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("use case: %w", NewNotFoundError("no record"))

	assert.NotNil(t, GetAppError(wrapped))
	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.False(t, IsNotFoundError(stderrors.New("plain")))
	assert.Nil(t, GetAppError(stderrors.New("plain")))
}

func TestIsProviderError(t *testing.T) {
	assert.True(t, IsProviderError(NewProviderError("bad status")))
	assert.True(t, IsProviderError(NewNetworkError("timeout")))
	assert.False(t, IsProviderError(NewStorageError("db")))
}
