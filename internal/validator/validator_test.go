package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name        string `json:"name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,phone"`
	ServiceType string `json:"serviceType" validate:"required,is-service-type"`
	Experience  string `json:"experience" validate:"omitempty,is-experience"`
	Category    string `json:"category" validate:"omitempty,is-talent-category"`
	UserType    string `json:"userType" validate:"omitempty,is-user-type"`
}

func TestValidator_Valid(t *testing.T) {
	v := New()
	err := v.Validate(sample{
		Name:        "Amina",
		Email:       "amina@example.com",
		Phone:       "+254 712-345 678",
		ServiceType: "electrician",
		Experience:  "10+",
		Category:    "Skilled Trades",
		UserType:    "talent",
	})
	assert.NoError(t, err)
}

func TestValidator_FieldErrors(t *testing.T) {
	v := New()
	err := v.Validate(sample{
		Name:        "A",
		Email:       "nope",
		Phone:       "call me",
		ServiceType: "astronaut",
		Experience:  "2-4",
		Category:    "Painters",
		UserType:    "admin",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 7)
	assert.Equal(t, "Must be at least 2 items/characters long", verr.Errors["name"])
	assert.Equal(t, "Must be a valid email address", verr.Errors["email"])
	assert.Equal(t, "Must be a valid phone number", verr.Errors["phone"])
	assert.Equal(t, "Must be a valid service type", verr.Errors["serviceType"])
	assert.Contains(t, verr.Errors["experience"], "5-10")
	assert.Contains(t, verr.Errors["category"], "Artisans")
	assert.Contains(t, verr.Errors["userType"], "provider")
	assert.Contains(t, verr.Error(), "field 'email'")
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+254712345678", NormalizePhone(" +254 (712) 345-678 "))
}
