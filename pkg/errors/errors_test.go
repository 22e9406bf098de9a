package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	err := NotFound("account", nil)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("lookup failed: %w", err)))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrBadRequest, CodeOf(BadRequest("bad input", nil)))
	assert.Equal(t, ErrUnauthorized, CodeOf(Unauthorized(errors.New("nope"))))
	assert.Equal(t, ErrInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, ErrNotFound, CodeOf(fmt.Errorf("wrapped: %w", NotFound("profile", nil))))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("row missing")
	err := NotFound("bookmark", cause)
	assert.ErrorIs(t, err, cause)
}
