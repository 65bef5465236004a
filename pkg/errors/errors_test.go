package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(NewBadRequestError("плохо")))
	assert.Equal(t, http.StatusNotFound, StatusCode(fmt.Errorf("обёртка: %w", ErrNotFound)))
	assert.Equal(t, http.StatusForbidden, StatusCode(ErrForbidden))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("x")))
}

func TestHttpError_Unwrap(t *testing.T) {
	err := NewHttpError(http.StatusTeapot, "чайник", ErrBadRequest, nil)
	assert.True(t, errors.Is(err, ErrBadRequest))
	assert.Equal(t, "чайник: неверный запрос", err.Error())
}
