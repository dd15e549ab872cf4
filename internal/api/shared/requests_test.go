package shared

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// selfValidatedRequest carries its own Validate method, which
// ValidateRequest must prefer over tag-based validation.
type selfValidatedRequest struct {
	err error
}

func (r selfValidatedRequest) Validate() error {
	return r.err
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel() // Enable parallel execution

	t.Run("decodes a valid body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Olha"}`))

		var target taggedRequest
		require.NoError(t, DecodeJSON(req, &target))
		assert.Equal(t, "Olha", target.Name)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))

		var target taggedRequest
		assert.Error(t, DecodeJSON(req, &target))
	})
}

func TestValidateRequest(t *testing.T) {
	t.Parallel() // Enable parallel execution

	t.Run("passes a struct satisfying its tags", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ValidateRequest(taggedRequest{Name: "Olha", Email: "olha@example.com"}))
	})

	t.Run("fails a struct violating its tags", func(t *testing.T) {
		t.Parallel()
		err := ValidateRequest(taggedRequest{Email: "not-an-email"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Name")
	})

	t.Run("prefers a custom Validate method", func(t *testing.T) {
		t.Parallel()
		customErr := errors.New("custom validation failed")
		assert.ErrorIs(t, ValidateRequest(selfValidatedRequest{err: customErr}), customErr)
		assert.NoError(t, ValidateRequest(selfValidatedRequest{}))
	})
}
