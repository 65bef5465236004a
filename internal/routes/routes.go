package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/config"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/admin"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/controllers"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/services"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	appconfig "github.com/Obkeldiyev/vitality-clinic-hub/pkg/config"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/middleware"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/session"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Admin     *zap.Logger
	Reception *zap.Logger
}

func InitRouter(e *echo.Echo, api *apiclient.Client, sessions *session.Manager, bundle *i18n.Bundle, loggers *Loggers, cfg *appconfig.Config) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	authMW := middleware.NewAuthMiddleware(sessions, cfg.Session, loggers.Auth)
	e.Use(middleware.InjectLogger(loggers.Main))
	e.Use(middleware.RequestLogger(loggers.Main))
	e.Use(middleware.Locale(cfg.Locale))
	e.Use(authMW.Session)
	e.HTTPErrorHandler = controllers.NewHTTPErrorHandler(bundle, loggers.Main)

	maxFiles := config.UploadContext("consultation").MaxFiles

	// --- 1. СЕРВИСЫ ---
	contentService := services.NewContentService(api, loggers.Main)
	patientService := services.NewPatientService(api, loggers.Reception)
	authService := services.NewAuthService(api, loggers.Auth)
	profileService := services.NewProfileService(api, loggers.Main)
	adminService := services.NewAdminService(api, loggers.Admin)

	// --- 2. КОНТРОЛЛЕРЫ ---
	publicCtrl := controllers.NewPublicController(contentService, patientService, bundle, maxFiles, loggers.Main)
	authCtrl := controllers.NewAuthController(authService, bundle, loggers.Auth)
	adminCtrl := controllers.NewAdminController(adminService, contentService, profileService, admin.DefaultRegistry(), bundle, loggers.Admin)
	receptionCtrl := controllers.NewReceptionController(patientService, profileService, bundle, maxFiles, loggers.Reception)

	// --- 3. РОУТЕРЫ ---
	runPublicRouter(e, publicCtrl)
	runAuthRouter(e, authCtrl)
	runAdminRouter(e.Group("/admin", authMW.RequireRole("/admin/login", session.RoleAdmin)), adminCtrl)
	runReceptionRouter(e.Group("/reception", authMW.RequireRole("/reception/login", session.RoleReception, session.RoleAdmin)), receptionCtrl)

	e.RouteNotFound("/*", controllers.NotFound)

	loggers.Main.Info("InitRouter: Создание маршрутов завершено")
}
