package controllers

import (
	"github.com/labstack/echo/v4"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/views"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/contextkeys"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/session"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/utils"
)

// currentSession - сессия запроса. Без middleware возвращает пустую гостевую.
func currentSession(c echo.Context) *session.Session {
	if sess, ok := c.Get(contextkeys.EchoSession).(*session.Session); ok && sess != nil {
		return sess
	}
	if sess := session.FromContext(c.Request().Context()); sess != nil {
		return sess
	}
	return &session.Session{}
}

func currentLang(c echo.Context) string {
	if lang, ok := c.Get(contextkeys.EchoLocale).(string); ok && i18n.IsSupported(lang) {
		return lang
	}
	return utils.LocaleFromContext(c.Request().Context())
}

func newPage(c echo.Context, title string, data any) views.Page {
	sess := currentSession(c)
	return views.Page{
		Lang:  currentLang(c),
		Title: title,
		Path:  c.Request().URL.Path,
		Role:  sess.Role(),
		User:  sess.User(),
		Data:  data,
	}
}

func render(c echo.Context, code int, name string, page views.Page) error {
	return c.Render(code, name, page)
}

// ListPage - список с выбранным по ?id= элементом.
type ListPage[T any] struct {
	Items    []T
	Selected *T
}
