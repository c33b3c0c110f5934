package app

import (
	"github.com/gin-gonic/gin"

	"github.com/igrejaviva/media-backend/internal/middleware"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
	"github.com/igrejaviva/media-backend/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, svcs Services, hs Handlers) *gin.Engine {
	authMiddleware := middleware.NewAuthMiddleware(log, svcs.Auth)

	return server.NewRouter(server.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins,
		AuthMiddleware: authMiddleware,

		AuthHandler:         hs.Auth,
		TeachingHandler:     hs.Teaching,
		TrackHandler:        hs.Track,
		SoloAudioHandler:    hs.SoloAudio,
		PosterHandler:       hs.Poster,
		EventHandler:        hs.Event,
		TeachingTextHandler: hs.TeachingText,
	})
}
