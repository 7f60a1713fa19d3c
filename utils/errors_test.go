package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapValidationErrorsNonStringFields(t *testing.T) {
	type offerInput struct {
		FeeCents int    `validate:"required,gt=0"`
		Rating   *int   `validate:"omitempty,gte=1,lte=5"`
		ArtistID uint   `validate:"required"`
		Terms    string `validate:"max=10"`
	}

	six := 6
	err := validator.New().Struct(offerInput{FeeCents: 0, Rating: &six, Terms: "way too long terms"})
	require.Error(t, err)

	errs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)

	// Int, pointer and uint values must render without panicking.
	wrapped := wrapValidationErrors(errs)
	require.Len(t, wrapped, 4)

	byField := map[string]validationError{}
	for _, w := range wrapped {
		byField[w.Namespace] = w
	}

	assert.Equal(t, "0", byField["offerInput.FeeCents"].Value)
	assert.Equal(t, "required", byField["offerInput.FeeCents"].ActualTag)
	assert.Equal(t, "6", byField["offerInput.Rating"].Value)
	assert.Equal(t, "0", byField["offerInput.ArtistID"].Value)
	assert.Equal(t, "way too long terms", byField["offerInput.Terms"].Value)
}

func TestWrapValidationErrorsStringFields(t *testing.T) {
	type loginInput struct {
		Email string `validate:"required,email"`
	}

	err := validator.New().Struct(loginInput{Email: "not-an-email"})
	require.Error(t, err)

	wrapped := wrapValidationErrors(err.(validator.ValidationErrors))
	require.Len(t, wrapped, 1)
	assert.Equal(t, "not-an-email", wrapped[0].Value)
	assert.Equal(t, "email", wrapped[0].ActualTag)
}
