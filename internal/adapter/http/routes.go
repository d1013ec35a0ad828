package http

import (
	"github.com/gin-gonic/gin"

	"github.com/barscka/backend-pomodoro-task/internal/adapter/http/handlers"
	"github.com/barscka/backend-pomodoro-task/internal/adapter/http/middleware"
)

func RegisterRoutes(r *gin.Engine, apiKey string, healthHandler *handlers.HealthHandler, activityHandler *handlers.ActivityHandler) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())

	api.GET("/health", healthHandler.CheckHealth)
	api.GET("/health/report", healthHandler.CheckHealthReport)

	activities := api.Group("/activities")
	activities.Use(middleware.APIKeyMiddleware(apiKey))
	{
		activities.GET("", activityHandler.ListActivities)
		activities.POST("", activityHandler.CreateActivity)
		activities.GET("/next", activityHandler.NextActivity)
		activities.GET("/history", activityHandler.ListHistory)
		activities.POST("/complete", activityHandler.CompleteActivity)
		activities.GET("/:id", activityHandler.GetActivity)
		activities.PATCH("/:id", activityHandler.UpdateActivity)
		activities.DELETE("/:id", activityHandler.DeleteActivity)
		activities.POST("/:id/start", activityHandler.StartActivity)
	}
}
