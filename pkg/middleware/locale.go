package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/config"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/contextkeys"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/utils"
)

// Locale определяет язык: ?lang= (запоминается в cookie), cookie,
// Accept-Language, язык по умолчанию.
func Locale(cfg config.LocaleConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			explicit := c.QueryParam("lang")
			if i18n.IsSupported(explicit) {
				c.SetCookie(&http.Cookie{
					Name:     cfg.CookieName,
					Value:    explicit,
					Path:     "/",
					MaxAge:   int((365 * 24 * time.Hour).Seconds()),
					SameSite: http.SameSiteLaxMode,
				})
			} else if cookie, err := c.Cookie(cfg.CookieName); err == nil {
				explicit = cookie.Value
			}

			lang := i18n.Detect(explicit, c.Request().Header.Get("Accept-Language"), cfg.Default)
			c.Set(contextkeys.EchoLocale, lang)
			c.SetRequest(c.Request().WithContext(utils.WithLocale(c.Request().Context(), lang)))
			return next(c)
		}
	}
}
