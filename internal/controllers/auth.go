package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/dto"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/services"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/session"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/utils"
)

// LoginPage - данные экрана входа одной из консолей.
type LoginPage struct {
	Role     string
	Action   string
	Username string
}

type AuthController struct {
	authService *services.AuthService
	bundle      *i18n.Bundle
	logger      *zap.Logger
}

func NewAuthController(authService *services.AuthService, bundle *i18n.Bundle, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, bundle: bundle, logger: logger}
}

// consoleFor - куда вести после входа и откуда показывать форму.
func consoleFor(role string) (home, login string) {
	if role == session.RoleAdmin {
		return "/admin", "/admin/login"
	}
	return "/reception", "/reception/login"
}

// LoginForm показывает форму входа. Уже вошедший с той же ролью сразу
// попадает в консоль.
func (ctrl *AuthController) LoginForm(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		home, action := consoleFor(role)
		if sess := currentSession(c); sess.IsAuthenticated() && sess.HasRole(role) {
			return utils.Redirect(c, home)
		}
		lang := currentLang(c)
		return render(c, http.StatusOK, "login", newPage(c, ctrl.bundle.T(lang, loginTitleKey(role)), LoginPage{Role: role, Action: action}))
	}
}

func (ctrl *AuthController) Login(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		home, action := consoleFor(role)
		lang := currentLang(c)
		var payload dto.LoginDTO

		fail := func(message string) error {
			page := newPage(c, ctrl.bundle.T(lang, loginTitleKey(role)), LoginPage{Role: role, Action: action, Username: payload.Username})
			page.Error = message
			return render(c, http.StatusUnauthorized, "login", page)
		}

		if err := c.Bind(&payload); err != nil {
			ctrl.logger.Error("Login: ошибка привязки данных", zap.Error(err))
			return fail(ctrl.bundle.T(lang, "login.failed"))
		}
		if err := c.Validate(&payload); err != nil {
			ctrl.logger.Debug("Login: ошибка валидации данных", zap.Strings("fields", utils.InvalidFields(err)))
			return fail(ctrl.bundle.T(lang, "login.failed"))
		}

		sess := currentSession(c)
		reqCtx := c.Request().Context()
		var err error
		if role == session.RoleAdmin {
			err = ctrl.authService.LoginAdmin(reqCtx, sess, payload)
		} else {
			err = ctrl.authService.LoginReception(reqCtx, sess, payload)
		}
		if err != nil {
			return fail(loginMessage(err, ctrl.bundle.T(lang, "login.failed")))
		}
		return utils.Redirect(c, home)
	}
}

// Logout очищает сессию и ведёт на экран входа той консоли, где был пользователь.
func (ctrl *AuthController) Logout(c echo.Context) error {
	sess := currentSession(c)
	_, login := consoleFor(sess.Role())
	if sess.IsAuthenticated() {
		if err := ctrl.authService.Logout(c.Request().Context(), sess); err != nil {
			ctrl.logger.Error("Logout: не удалось очистить сессию", zap.Error(err))
			return err
		}
	}
	return utils.Redirect(c, login)
}

func loginTitleKey(role string) string {
	if role == session.RoleAdmin {
		return "login.admin"
	}
	return "login.reception"
}

// loginMessage показывает сообщение бэкенда как есть, иначе общий текст.
func loginMessage(err error, fallback string) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if errors.Is(err, context.Canceled) || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
