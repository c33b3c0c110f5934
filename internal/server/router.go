package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/igrejaviva/media-backend/internal/http/handlers"
	"github.com/igrejaviva/media-backend/internal/middleware"
)

type RouterConfig struct {
	CORSOrigins []string

	AuthMiddleware *middleware.AuthMiddleware

	AuthHandler         *handlers.AuthHandler
	TeachingHandler     *handlers.TeachingHandler
	TrackHandler        *handlers.TrackHandler
	SoloAudioHandler    *handlers.SoloAudioHandler
	PosterHandler       *handlers.PosterHandler
	EventHandler        *handlers.EventHandler
	TeachingTextHandler *handlers.TeachingTextHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	requireAuth := cfg.AuthMiddleware.RequireAuth()

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/register", cfg.AuthHandler.Register)
	}

	// Written teachings
	texts := api.Group("/teachings-text")
	{
		texts.GET("", cfg.TeachingTextHandler.List)
		texts.GET("/:id", cfg.TeachingTextHandler.Get)
		texts.POST("", requireAuth, cfg.TeachingTextHandler.Create)
		texts.PUT("/:id", requireAuth, cfg.TeachingTextHandler.Update)
		texts.DELETE("/:id", requireAuth, cfg.TeachingTextHandler.Delete)
	}

	// Audio teachings, tracks and standalone audios
	audios := api.Group("/audios")
	{
		audios.GET("/teachings", cfg.TeachingHandler.List)
		audios.GET("/teachings/:id", cfg.TeachingHandler.Get)
		audios.POST("/teachings", requireAuth, cfg.TeachingHandler.Create)
		audios.PUT("/teachings/:id", requireAuth, cfg.TeachingHandler.Update)
		audios.DELETE("/teachings/:id", requireAuth, cfg.TeachingHandler.Delete)

		audios.POST("/upload/cover", requireAuth, cfg.TeachingHandler.UploadCover)
		audios.POST("/upload", requireAuth, cfg.TrackHandler.Upload)
		audios.PUT("/tracks/:id", requireAuth, cfg.TrackHandler.Update)
		audios.DELETE("/tracks/:id", requireAuth, cfg.TrackHandler.Delete)

		audios.POST("/upload/single", requireAuth, cfg.SoloAudioHandler.Upload)
		audios.GET("/solo", cfg.SoloAudioHandler.List)
		audios.PUT("/solo/:id", requireAuth, cfg.SoloAudioHandler.Update)
		audios.DELETE("/solo/:id", requireAuth, cfg.SoloAudioHandler.Delete)
	}

	// Posters
	cartazes := api.Group("/cartazes")
	{
		cartazes.GET("", cfg.PosterHandler.List)
		cartazes.GET("/active", cfg.PosterHandler.GetActive)
		cartazes.GET("/:id", cfg.PosterHandler.Get)
		cartazes.POST("", requireAuth, cfg.PosterHandler.Create)
		cartazes.DELETE("/all/cleanup", requireAuth, cfg.PosterHandler.Cleanup)
		cartazes.DELETE("/:id", requireAuth, cfg.PosterHandler.Delete)
	}

	// Events
	events := api.Group("/events")
	{
		events.GET("", cfg.EventHandler.List)
		events.POST("", requireAuth, cfg.EventHandler.Create)
		events.PUT("/:id", requireAuth, cfg.EventHandler.Update)
		events.DELETE("/:id", requireAuth, cfg.EventHandler.Delete)
		events.POST("/:id/flyer", requireAuth, cfg.EventHandler.AttachFlyer)
		events.DELETE("/:id/flyer", requireAuth, cfg.EventHandler.DetachFlyer)
	}

	return router
}
