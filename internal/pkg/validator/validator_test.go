package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routeForm struct {
	Route string  `json:"route" validate:"notblank"`
	Lat   float64 `json:"lat,omitempty" validate:"min=-90,max=90"`
	Plate string  `validate:"max=3"`
}

func TestValidate_NotBlank(t *testing.T) {
	assert.NoError(t, Validate(&routeForm{Route: "138"}))
	assert.Error(t, Validate(&routeForm{Route: "   "}))
	assert.Error(t, Validate(&routeForm{Route: ""}))
}

func TestValidate_Range(t *testing.T) {
	assert.Error(t, Validate(&routeForm{Route: "138", Lat: 120}))
}

func TestFields_UsesJSONNames(t *testing.T) {
	err := Validate(&routeForm{Route: " ", Lat: -91, Plate: "NB-1234"})
	require.Error(t, err)

	fields, ok := Fields(err)
	require.True(t, ok)
	assert.Equal(t, "notblank", fields["route"])
	assert.Equal(t, "min", fields["lat"])
	assert.Equal(t, "max", fields["Plate"])
}

func TestFields_NotValidationError(t *testing.T) {
	_, ok := Fields(errors.New("boom"))
	assert.False(t, ok)
}
