package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	e := NewAppError(http.StatusBadRequest, CodeBadRequest, "bad thing", nil)
	assert.Equal(t, "bad thing", e.Error())

	wrapped := NewAppError(http.StatusBadRequest, CodeBadRequest, "bad thing", ErrInvalidInput)
	assert.Equal(t, ErrInvalidInput.Error(), wrapped.Error())
	assert.True(t, errors.Is(wrapped, ErrInvalidInput))
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		code   string
	}{
		{NotFound("missing"), http.StatusNotFound, CodeNotFound},
		{BadRequest("bad"), http.StatusBadRequest, CodeBadRequest},
		{Unauthorized("no"), http.StatusUnauthorized, CodeUnauthorized},
		{Forbidden("nope"), http.StatusForbidden, CodeForbidden},
		{Conflict("dup"), http.StatusConflict, CodeConflict},
		{InternalError(errors.New("boom")), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status)
		assert.Equal(t, tc.code, tc.err.Code)
	}
}
