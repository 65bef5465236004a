package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/controllers"
)

func runReceptionRouter(group *echo.Group, ctrl *controllers.ReceptionController) {
	group.GET("", ctrl.Dashboard)
	group.GET("/patients/export", ctrl.ExportPatients)
	group.GET("/patients/:id", ctrl.Patient)
	group.POST("/patients", ctrl.CreatePatient)
	group.POST("/patients/:id/delete", ctrl.DeletePatient)

	group.GET("/profile", ctrl.Profile)
	group.POST("/profile", ctrl.EditProfile)
	group.POST("/profile/username", ctrl.EditUsername)
	group.POST("/profile/password", ctrl.EditPassword)
}
