package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"voicescribe/internal/api/v1/handlers"
	"voicescribe/internal/api/v1/services"
)

// ServiceContainer holds the services needed by handlers.
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	HistoryService       services.HistoryService
	ProviderKeyPresent   func() bool
}

// RegisterRoutes registers the transcription API routes.
func RegisterRoutes(router gin.IRouter, container *ServiceContainer, logger *slog.Logger) {
	handler := handlers.NewTranscriptionHandler(
		container.TranscriptionService,
		container.HistoryService,
		container.ProviderKeyPresent,
		logger,
	)

	router.POST("/transcribe", handler.Transcribe)

	history := router.Group("/history")
	{
		history.GET("", handler.ListHistory)
		history.DELETE("", handler.ClearHistory)
	}
}
