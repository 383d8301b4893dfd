package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(BadRequest("bad")))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(Unauthorized("no")))
	assert.Equal(t, http.StatusForbidden, StatusOf(Forbidden("no")))
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("missing")))
	assert.Equal(t, http.StatusConflict, StatusOf(Conflict("busy")))

	// Wrapped typed errors still resolve.
	wrapped := fmt.Errorf("while admitting: %w", Conflict("busy"))
	assert.Equal(t, http.StatusConflict, StatusOf(wrapped))

	assert.Equal(t, http.StatusGatewayTimeout, StatusOf(context.DeadlineExceeded))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestErrorMessage(t *testing.T) {
	err := NotFound(PATIENT_NOT_FOUND)
	assert.Equal(t, PATIENT_NOT_FOUND, err.Error())
}
