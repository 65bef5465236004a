package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/utils"
)

// NewHTTPErrorHandler рендерит страницу 404 или страницу ошибки вместо JSON.
// 401 от бэкенда в консоли означает протухший токен: сессия очищается
// и пользователь уходит на вход.
func NewHTTPErrorHandler(bundle *i18n.Bundle, logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := utils.ErrorStatus(err)
		lang := currentLang(c)

		if code == http.StatusUnauthorized {
			sess := currentSession(c)
			_, login := consoleFor(sess.Role())
			if sess.IsAuthenticated() {
				if logoutErr := sess.Logout(c.Request().Context()); logoutErr != nil {
					logger.Error("Не удалось очистить сессию после 401", zap.Error(logoutErr))
				}
				if redirectErr := utils.Redirect(c, login); redirectErr != nil {
					logger.Error("Не удалось перенаправить на вход", zap.Error(redirectErr))
				}
				return
			}
		}

		var renderErr error
		switch {
		case code == http.StatusNotFound:
			renderErr = render(c, code, "notfound", newPage(c, bundle.T(lang, "notFound.title"), nil))
		case code >= http.StatusInternalServerError:
			logger.Error("Ошибка обработки запроса", zap.String("uri", c.Request().RequestURI), zap.Error(err))
			renderErr = render(c, code, "error", newPage(c, bundle.T(lang, "error.title"), nil))
		default:
			renderErr = render(c, code, "error", newPage(c, bundle.T(lang, "error.title"), utils.ErrorMessage(err)))
		}
		if renderErr != nil {
			logger.Error("Не удалось отрисовать страницу ошибки", zap.Error(renderErr))
			_ = c.String(code, http.StatusText(code))
		}
	}
}

// NotFound - обработчик для всех неизвестных путей.
func NotFound(c echo.Context) error {
	return echo.ErrNotFound
}
