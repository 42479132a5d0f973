package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     ErrorCode
		httpCode int
	}{
		{"already verified", ErrEmailAlreadyVerified, CodeConflict, http.StatusConflict},
		{"insufficient permissions", ErrInsufficientPermissions, CodeForbidden, http.StatusForbidden},
		{"self session", ErrSelfSession, CodeInvalidOperation, http.StatusBadRequest},
		{"invalid status", ErrInvalidStatus("session", "nope"), CodeInvalidStatus, http.StatusBadRequest},
		{"post not found", ErrLearningPostNotFound("42"), CodeNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpCode, tt.err.HTTPCode)
		})
	}
}

func TestAppErrorIsMatchesWrappedCopies(t *testing.T) {
	wrapped := fmt.Errorf("creating session: %w", ErrSelfSession)
	assert.True(t, errors.Is(wrapped, ErrSelfSession))
	assert.False(t, errors.Is(wrapped, ErrNotSessionHost))

	internal := InternalError(errors.New("disk full"))
	appErr, ok := AsAppError(fmt.Errorf("outer: %w", internal))
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
	assert.EqualError(t, errors.Unwrap(internal), "disk full")
}
