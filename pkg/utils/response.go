package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	apperrors "github.com/Obkeldiyev/vitality-clinic-hub/pkg/errors"
)

// ErrorStatus определяет HTTP-код страницы для ошибки обработчика:
// ошибки echo и бэкенда сохраняют свой код, остальное через apperrors.
func ErrorStatus(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return apperrors.StatusCode(err)
}

// ErrorMessage - текст для пользователя. У ошибок бэкенда это сообщение
// сервера без обёрток.
func ErrorMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return err.Error()
}

// Redirect после POST всегда 303, чтобы перезагрузка не повторяла отправку.
func Redirect(ctx echo.Context, path string) error {
	return ctx.Redirect(http.StatusSeeOther, path)
}
