package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	t.Run("conflict carries the generic conflict code", func(t *testing.T) {
		err := NewConflictError("Event slot already taken")
		assert.Equal(t, CodeConflict, err.Code)
		assert.Equal(t, http.StatusConflict, err.HTTPCode)
	})

	t.Run("email conflict keeps its specific code", func(t *testing.T) {
		assert.Equal(t, CodeEmailAlreadyExists, ErrEmailAlreadyExists.Code)
		assert.Equal(t, http.StatusConflict, ErrEmailAlreadyExists.HTTPCode)
	})
}

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails(map[string]string{"title": "is required"})
	assert.NotNil(t, detailed.Details)
	assert.Nil(t, ErrValidationFailed.Details)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := InternalError(cause)
	assert.ErrorIs(t, err, cause)
}

func TestMarshalHidesInternals(t *testing.T) {
	err := Wrap(errors.New("dsn leak"), CodeInternalError, "Internal server error", http.StatusInternalServerError)

	payload, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.NotContains(t, string(payload), "dsn leak")
	assert.Contains(t, string(payload), string(CodeInternalError))
}
