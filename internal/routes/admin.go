package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/controllers"
)

func runAdminRouter(group *echo.Group, ctrl *controllers.AdminController) {
	group.GET("", ctrl.Overview)
	group.GET("/profile", ctrl.Profile)
	group.POST("/profile/username", ctrl.EditUsername)
	group.POST("/profile/password", ctrl.EditPassword)

	group.GET("/:entity", ctrl.List)
	group.POST("/:entity", ctrl.Create)
	group.POST("/:entity/:id", ctrl.Update)
	group.POST("/:entity/:id/delete", ctrl.Delete)
	group.POST("/:entity/:id/approve", ctrl.Approve)
}
