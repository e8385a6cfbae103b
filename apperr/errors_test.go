package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeepsKindAndMessage(t *testing.T) {
	err := New(Conflict, "Order %s is already assigned to a Driver", "abc123")

	assert.True(t, errors.Is(err, Conflict))
	assert.False(t, errors.Is(err, NotFound))
	assert.Equal(t, "Order abc123 is already assigned to a Driver", err.Error())
}

func TestMessage(t *testing.T) {
	wrapped := fmt.Errorf("create route: %w", New(NotFound, "Driver not found"))

	assert.Equal(t, "Driver not found", Message(wrapped, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("db down"), "fallback"))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(Validation, "bad"), http.StatusBadRequest},
		{New(Conflict, "taken"), http.StatusBadRequest},
		{fmt.Errorf("find: %w", New(NotFound, "gone")), http.StatusNotFound},
		{New(Unauthorized, "Not authorized"), http.StatusUnauthorized},
		{New(Forbidden, "Not authorized for this role"), http.StatusForbidden},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}
