package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Phone   string `form:"phone_number" validate:"required,notblank"`
	Email   string `json:"email" validate:"omitempty,email"`
	Content string `form:"content" validate:"notblank"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestNotBlank_AcceptsAnyPhoneShape(t *testing.T) {
	v := newValidator(t)

	for _, phone := range []string{"+998901234567", "+7 912 345-67-89", "12345"} {
		assert.NoError(t, v.Struct(contactForm{Phone: phone, Content: "x"}), phone)
	}
	assert.Error(t, v.Struct(contactForm{Phone: "   ", Content: "x"}))
}

func TestEmail(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(contactForm{Phone: "1", Email: "a@clinic.uz", Content: "x"}))
	assert.Error(t, v.Struct(contactForm{Phone: "1", Email: "a@b", Content: "x"}))
}

func TestFieldNamesFromTags(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(contactForm{Phone: " ", Email: "bad", Content: "  "})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	var names []string
	for _, fe := range verrs {
		names = append(names, fe.Field())
	}
	assert.Equal(t, []string{"phone_number", "email", "content"}, names)
}
