package dao

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrInvalidID, ErrDuplicateKey)

	wrapped := fmt.Errorf("%w: E11000 duplicate key error", ErrDuplicateKey)
	assert.True(t, errors.Is(wrapped, ErrDuplicateKey))
	assert.False(t, errors.Is(wrapped, ErrInvalidID))
}
