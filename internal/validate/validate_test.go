package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enquiry struct {
	Name     string   `json:"name" validate:"required,max=10"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"omitempty,phone"`
	Postcode string   `json:"postcode" validate:"omitempty,postcode"`
	Delivery string   `json:"delivery" validate:"oneof=post email"`
	Models   []string `json:"models" validate:"max=2,dive,slug"`
	Rating   int      `json:"rating" validate:"min=1,max=5"`
}

func valid() enquiry {
	return enquiry{
		Name:     "Sam",
		Email:    "sam@example.com",
		Phone:    "+61 400 123 456",
		Postcode: "3000",
		Delivery: "post",
		Models:   []string{"coastal-19"},
		Rating:   4,
	}
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(valid()))
}

func TestStructFieldMessages(t *testing.T) {
	e := valid()
	e.Name = ""
	e.Email = "not-an-email"
	e.Phone = "12"
	e.Postcode = "30000"
	e.Delivery = "courier"
	e.Rating = 9

	err := Struct(e)
	require.Error(t, err)

	var fields Errors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid e-mail address", fields["email"])
	assert.Equal(t, "must be a valid phone number", fields["phone"])
	assert.Equal(t, "must be a 4 digit postcode", fields["postcode"])
	assert.Equal(t, "must be one of post, email", fields["delivery"])
	assert.Equal(t, "must be at most 5", fields["rating"])
}

func TestStructDiveUsesIndexedPath(t *testing.T) {
	e := valid()
	e.Models = []string{"coastal-19", "Bad Slug"}

	var fields Errors
	require.True(t, errors.As(Struct(e), &fields))
	assert.Contains(t, fields, "models[1]")
}

func TestErrorsStringIsSorted(t *testing.T) {
	err := Errors{"email": "is required", "name": "is required"}
	assert.Equal(t, "validation failed: email: is required; name: is required", err.Error())
}

func TestIsSlug(t *testing.T) {
	assert.True(t, IsSlug("summer-show-2026"))
	assert.False(t, IsSlug("Summer Show"))
	assert.False(t, IsSlug("-leading"))
	assert.False(t, IsSlug(""))
	assert.True(t, IsSlug("straße-über-die-alpen"))
	assert.True(t, IsSlug("東京-2026"))
	assert.False(t, IsSlug("Ärger"))
	assert.False(t, IsSlug("a--b"))
	assert.False(t, IsSlug("a_b"))
}
