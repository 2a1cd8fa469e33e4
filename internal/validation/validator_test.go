package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hatkhataapp/hatkhata-server/internal/errors"
	"github.com/hatkhataapp/hatkhata-server/internal/validation"
)

type createTagRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=40"`
	Color string `json:"color" validate:"required,hexcolor"`
}

type addItemRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

func TestValidator_Valid(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(createTagRequest{Name: "Fish", Color: "#8B5CF6"}))
	assert.NoError(t, v.Validate(addItemRequest{Name: "Rice", Price: 0}))
}

func TestValidator_MissingRequiredField(t *testing.T) {
	v := validation.New()

	err := v.Validate(createTagRequest{Color: "#8B5CF6"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Error details use the JSON field name, not the Go field name.
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
}

func TestValidator_NegativePrice(t *testing.T) {
	v := validation.New()

	err := v.Validate(addItemRequest{Name: "Rice", Price: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidator_BadColor(t *testing.T) {
	v := validation.New()

	err := v.Validate(createTagRequest{Name: "Fish", Color: "purple"})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details["color"], "hex color")
}
