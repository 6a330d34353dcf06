package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ContactInput {
	return ContactInput{Name: "Asha Rao", Email: "asha@example.com", Phone: "9876543210", Message: "I would like a retirement review."}
}

func TestContactInputValidate(t *testing.T) {
	require.NoError(t, validInput().Validate())

	noPhone := validInput()
	noPhone.Phone = ""
	require.NoError(t, noPhone.Validate())

	tests := []struct {
		name   string
		mutate func(*ContactInput)
		field  string
	}{
		{"short name", func(in *ContactInput) { in.Name = "A" }, "name"},
		{"long name", func(in *ContactInput) { in.Name = strings.Repeat("a", 101) }, "name"},
		{"missing email", func(in *ContactInput) { in.Email = "" }, "email"},
		{"bad email", func(in *ContactInput) { in.Email = "not-an-email" }, "email"},
		{"display name email", func(in *ContactInput) { in.Email = "Asha <asha@example.com>" }, "email"},
		{"long phone", func(in *ContactInput) { in.Phone = strings.Repeat("9", 21) }, "phone"},
		{"short message", func(in *ContactInput) { in.Message = "hey" }, "message"},
		{"long message", func(in *ContactInput) { in.Message = strings.Repeat("m", 2001) }, "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestContactInputNormalize(t *testing.T) {
	in := ContactInput{Name: "  Ravi ", Email: " ravi@example.com\n", Message: "\tHello there "}
	in.Normalize()
	assert.Equal(t, "Ravi", in.Name)
	assert.Equal(t, "ravi@example.com", in.Email)
	assert.Equal(t, "Hello there", in.Message)
}
