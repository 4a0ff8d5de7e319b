package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	type payload struct {
		FullName string `validate:"required"`
		Email    string `validate:"required,email"`
	}

	t.Run("valid struct", func(t *testing.T) {
		assert.NoError(t, v.Validate(payload{FullName: "Maria", Email: "maria@example.com"}))
	})

	t.Run("invalid struct reports snake_case keys", func(t *testing.T) {
		err := v.Validate(payload{})
		require.Error(t, err)

		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Values(), "full_name")
		assert.Contains(t, verr.Values(), "email")
		assert.NotEqual(t, "validation error", verr.Error())
	})
}

func TestV10Validator_Var(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	assert.NoError(t, v.Var("joao@example.com.br", "email"))
	assert.Error(t, v.Var("abc.com", "email"))
	assert.Error(t, v.Var("joao@", "email"))
}
