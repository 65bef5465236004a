package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/controllers"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/session"
)

// Экраны входа лежат вне групп консолей, иначе проверка роли их закроет.
func runAuthRouter(e *echo.Echo, authCtrl *controllers.AuthController) {
	e.GET("/admin/login", authCtrl.LoginForm(session.RoleAdmin))
	e.POST("/admin/login", authCtrl.Login(session.RoleAdmin))
	e.GET("/reception/login", authCtrl.LoginForm(session.RoleReception))
	e.POST("/reception/login", authCtrl.Login(session.RoleReception))
	e.POST("/logout", authCtrl.Logout)
}
