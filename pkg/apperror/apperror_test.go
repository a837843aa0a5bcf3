package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"validation", Validation("bad"), KindValidation, http.StatusBadRequest},
		{"conflict", Conflict("dup"), KindConflict, http.StatusConflict},
		{"auth", Auth("nope"), KindAuth, http.StatusUnauthorized},
		{"forbidden", Forbidden("owner only"), KindForbidden, http.StatusForbidden},
		{"not found", NotFound("missing"), KindNotFound, http.StatusNotFound},
		{"wrapped", fmt.Errorf("ctx: %w", NotFound("missing")), KindNotFound, http.StatusNotFound},
		{"plain error", errors.New("boom"), KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.status, KindOf(tt.err).Status())
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	sentinel := Auth("invalid phone number or password")
	err := fmt.Errorf("login: %w", Auth("invalid phone number or password"))

	assert.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, err, Auth("other"))
	assert.True(t, Is(err, KindAuth))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, "internal server error", err.Message)
	assert.ErrorIs(t, err, cause)
}
