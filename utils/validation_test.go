package utils

import (
	"errors"
	"testing"

	"go-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var appErr *AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, KindValidation, appErr.Kind)
	return appErr.Fields
}

func TestValidateRegisterInput(t *testing.T) {
	valid := models.RegisterInput{Name: "A", Username: "abc", Email: "a@x.com", Password: "secret1"}
	assert.NoError(t, ValidateStruct(valid))

	short := valid
	short.Username = "ab"
	fields := validationFields(t, ValidateStruct(short))
	assert.Equal(t, "username must be at least 3 characters", fields["username"])

	bad := valid
	bad.Email = "not-an-email"
	bad.Password = "12345"
	bad.Role = "root"
	fields = validationFields(t, ValidateStruct(bad))
	assert.Equal(t, "Please provide a valid email address", fields["email"])
	assert.Equal(t, "password must be at least 6 characters", fields["password"])
	assert.Contains(t, fields, "role")
}

func TestValidateEmailPattern(t *testing.T) {
	for email, ok := range map[string]bool{
		"a@x.com":          true,
		"first.last@ex.io": true,
		"a-b@sub.x.org":    true,
		"a@x":              false,
		"@x.com":           false,
		"a@x.company":      false,
	} {
		err := ValidateStruct(models.RegisterInput{Name: "A", Username: "abc", Email: email, Password: "secret1"})
		assert.Equal(t, ok, err == nil, email)
	}
}

func TestValidateProductInput(t *testing.T) {
	title, desc, cat := "Lamp", "A lamp", "home"
	price := 0.0

	in := models.ProductInput{Title: &title, Price: &price, Description: &desc, ImageURL: []string{"a.png"}, Category: &cat}
	assert.NoError(t, ValidateStruct(in), "zero price is a valid price")

	fields := validationFields(t, ValidateStruct(models.ProductInput{}))
	assert.Equal(t, "title is required", fields["title"])
	assert.Equal(t, "price is required", fields["price"])
	assert.Equal(t, "imageUrl is required", fields["imageUrl"])
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "category")

	short := "ab"
	in.Title = &short
	in.ImageURL = []string{}
	fields = validationFields(t, ValidateStruct(in))
	assert.Equal(t, "title must be at least 3 characters", fields["title"])
	assert.Equal(t, "imageUrl must contain at least 1 item(s)", fields["imageUrl"])
}
