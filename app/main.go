// Файл: main.go

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/repositories"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/routes"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/views"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/config"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/customvalidator"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
	applogger "github.com/Obkeldiyev/vitality-clinic-hub/pkg/logger"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/session"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/utils"
)

func main() {
	// 1. Конфиг (.env читается внутри) и логгер
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			return err
		},
	}))

	// 2. Валидатор форм
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	// 3. Хранилище сессий
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cacheRepo.Ping(pingCtx); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	store := session.NewRedisStore(cacheRepo)
	sessions := session.NewManager(store, cfg.Session.TTL, logger)

	// 4. Клиент REST API: токен берётся из сессии текущего запроса
	api := apiclient.New(cfg.Backend.Origin, cfg.Backend.BasePath, logger,
		apiclient.WithHTTPClient(&http.Client{}),
		apiclient.WithTokenSource(session.TokenFromContext),
	)

	// 5. Переводы и шаблоны
	bundle, err := i18n.LoadBundle()
	if err != nil {
		logger.Fatal("не удалось загрузить переводы", zap.Error(err))
	}
	renderer, err := views.NewRenderer(bundle, cfg.Backend.MediaBase)
	if err != nil {
		logger.Fatal("не удалось разобрать шаблоны", zap.Error(err))
	}
	e.Renderer = renderer

	// 6. Роуты
	routes.InitRouter(e, api, sessions, bundle, &routes.Loggers{
		Main:      logger,
		Auth:      logger.Named("auth"),
		Admin:     logger.Named("admin"),
		Reception: logger.Named("reception"),
	}, cfg)

	// 7. Запуск сервера
	logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port), zap.String("backend", cfg.Backend.Origin))
	if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
