package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorKinds(t *testing.T) {
	err := NewConflictError("Class already exists")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Class already exists", err.Error())
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError("Failed to load course", cause)

	assert.True(t, errors.Is(err, ErrInternal))
	assert.True(t, errors.Is(err, cause))
}

func TestMessage(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("PDF not found"))

	assert.Equal(t, "PDF not found", Message(wrapped, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("plain"), "fallback"))
}

func TestIsMatchesAnyTarget(t *testing.T) {
	err := NewBadRequestError("Please provide a title")

	assert.True(t, Is(err, ErrNotFound, ErrConflict, ErrBadRequest))
	assert.False(t, Is(err, ErrNotFound, ErrConflict))
}
