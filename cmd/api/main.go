package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "github.com/barscka/backend-pomodoro-task/internal/adapter/db"
	httpadapter "github.com/barscka/backend-pomodoro-task/internal/adapter/http"
	"github.com/barscka/backend-pomodoro-task/internal/adapter/http/handlers"
	httpmiddleware "github.com/barscka/backend-pomodoro-task/internal/adapter/http/middleware"
	"github.com/barscka/backend-pomodoro-task/internal/app/service"
	"github.com/barscka/backend-pomodoro-task/internal/config"
	"github.com/barscka/backend-pomodoro-task/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	activityRepository := dbadapter.NewActivityRepository(db)
	categoryRepository := dbadapter.NewCategoryRepository(db)
	executionRepository := dbadapter.NewExecutionRepository(db)
	activityService := service.NewActivityService(activityRepository, categoryRepository, executionRepository)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}
	if len(cfg.CorsAllowOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CorsAllowOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-API-Key", "Accept-Language")
		r.Use(cors.New(corsConfig))
	}

	healthHandler := handlers.NewHealthHandler(db)
	activityHandler := handlers.NewActivityHandler(activityService)
	httpadapter.RegisterRoutes(r, cfg.APIKey, healthHandler, activityHandler)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
