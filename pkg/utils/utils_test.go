package utils

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestLocaleFromContext(t *testing.T) {
	assert.Equal(t, "ru", LocaleFromContext(context.Background()))
	assert.Equal(t, "uz", LocaleFromContext(WithLocale(context.Background(), "uz")))
}

func TestInvalidFields(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Phone string `validate:"required"`
	}
	cv := NewValidator(validator.New())

	err := cv.Validate(&form{Name: "x"})
	assert.Equal(t, []string{"phone"}, InvalidFields(err))
	assert.Nil(t, InvalidFields(nil))
}
