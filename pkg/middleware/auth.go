package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/config"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/contextkeys"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/session"
)

type AuthMiddleware struct {
	sessions *session.Manager
	cfg      config.SessionConfig
	logger   *zap.Logger
}

func NewAuthMiddleware(sessions *session.Manager, cfg config.SessionConfig, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// Session поднимает сессию по cookie и кладёт её в контекст запроса.
// Cookie выставляется только после входа и снимается после выхода.
func (m *AuthMiddleware) Session(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var cookieID string
		if cookie, err := c.Cookie(m.cfg.CookieName); err == nil {
			cookieID = cookie.Value
		}

		reqCtx := c.Request().Context()
		sess, err := m.sessions.Open(reqCtx, cookieID)
		if err != nil {
			m.logger.Warn("AuthMiddleware: Не удалось загрузить сессию, работаем анонимно", zap.Error(err))
			sess, _ = m.sessions.Open(reqCtx, "")
		}

		c.Set(contextkeys.EchoSession, sess)
		c.SetRequest(c.Request().WithContext(session.WithContext(reqCtx, sess)))

		c.Response().Before(func() {
			switch {
			case sess.IsAuthenticated() && cookieID != sess.ID():
				c.SetCookie(m.cookie(sess.ID(), m.cfg.TTL))
			case !sess.IsAuthenticated() && cookieID != "":
				c.SetCookie(m.cookie("", -1))
			}
		})

		return next(c)
	}
}

// RequireRole пускает в консоль только подходящую роль, остальных
// отправляет на экран входа этой консоли.
func (m *AuthMiddleware) RequireRole(loginPath string, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := session.FromContext(c.Request().Context())
			if sess == nil || !sess.IsAuthenticated() || !sess.HasRole(roles...) {
				m.logger.Info("AuthMiddleware: Нет доступа, перенаправляем на вход",
					zap.String("path", c.Request().URL.Path),
					zap.String("login", loginPath),
				)
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) cookie(value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
	} else if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	}
	return cookie
}
