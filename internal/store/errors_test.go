package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel() // Enable parallel execution

	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(ErrContactNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup failed: %w", ErrContactNotFound)))

	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsNotFoundError(ErrInvalidEntity))
	assert.False(t, IsNotFoundError(errors.New("something else")))
	assert.False(t, IsNotFoundError(nil))
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel() // Enable parallel execution

	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("insert failed: %w", ErrEmailExists)))

	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.False(t, IsDuplicateError(errors.New("something else")))
	assert.False(t, IsDuplicateError(nil))
}

func TestSentinelErrorIdentity(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// Entity-specific errors unwrap to their generic counterparts so
	// callers can match on either.
	assert.True(t, errors.Is(ErrContactNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrEmailExists, ErrDuplicate))
	assert.False(t, errors.Is(ErrContactNotFound, ErrDuplicate))
}
