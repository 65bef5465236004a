// pkg/middleware/logger.go

package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/contextkeys"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/session"
)

// InjectLogger - мидлвэр для добавления логгера в контекст запроса.
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(contextkeys.EchoLogger, logger)
			return next(c)
		}
	}
}

// RequestLogger пишет строку на каждый запрос: метод, путь, статус, время, роль.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			role := ""
			if sess := session.FromContext(c.Request().Context()); sess != nil {
				role = sess.Role()
			}
			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("role", role),
			}
			if c.Response().Status >= 500 {
				logger.Error("HTTP запрос", append(fields, zap.Error(err))...)
			} else {
				logger.Info("HTTP запрос", fields...)
			}
			return nil
		}
	}
}
