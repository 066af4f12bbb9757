package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	t.Run("Should build not-found error with message", func(t *testing.T) {
		err := NotFoundf("project %s not found", "abc-123")
		require.Error(t, err)
		assert.Equal(t, "project abc-123 not found", err.Error())
		assert.True(t, HasCode(err, ErrorCodeNotFound))
		assert.False(t, HasCode(err, ErrorCodeValidation))
	})
	t.Run("Should build validation error with message", func(t *testing.T) {
		err := Invalidf("progress must be between 0 and 100, got %d", 150)
		assert.True(t, HasCode(err, ErrorCodeValidation))
		assert.Contains(t, err.Error(), "150")
	})
	t.Run("Should wrap backend failure", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Unavailable(cause)
		assert.True(t, HasCode(err, ErrorCodeBackend))
		assert.ErrorIs(t, err, cause)
	})
	t.Run("Should detect code through wrapping", func(t *testing.T) {
		inner := NotFoundf("task %s not found", "t1")
		wrapped := fmt.Errorf("delete failed: %w", inner)
		assert.True(t, HasCode(wrapped, ErrorCodeNotFound))
	})
	t.Run("Should report no code on plain errors", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), ErrorCodeNotFound))
		assert.False(t, HasCode(nil, ErrorCodeNotFound))
	})
	t.Run("Should match errors by code with Is", func(t *testing.T) {
		a := NotFoundf("project x not found")
		b := NotFoundf("task y not found")
		assert.True(t, errors.Is(a, b))
		assert.False(t, errors.Is(a, Invalidf("bad input")))
	})
}
