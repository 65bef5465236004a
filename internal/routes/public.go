package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/controllers"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/views"
)

func runPublicRouter(e *echo.Echo, ctrl *controllers.PublicController) {
	e.StaticFS("/static", views.StaticFS())

	e.GET("/", ctrl.Landing)
	e.GET("/doctors", ctrl.Doctors)
	e.GET("/branches", ctrl.Branches)
	e.GET("/news", ctrl.News)
	e.GET("/gallery", ctrl.Gallery)
	e.POST("/consultation", ctrl.Consultation)
	e.POST("/feedback", ctrl.Feedback)
}
