package app

import (
	"github.com/igrejaviva/media-backend/internal/platform/gcs"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
	"github.com/igrejaviva/media-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Teaching     services.TeachingService
	Track        services.TrackService
	SoloAudio    services.SoloAudioService
	Poster       services.PosterService
	Event        services.EventService
	TeachingText services.TeachingTextService
}

func wireServices(log *logger.Logger, cfg Config, repos Repos, assets gcs.Store) (Services, error) {
	authService, err := services.NewAuthService(log, cfg.Auth, repos.Admin, repos.AdminToken)
	if err != nil {
		return Services{}, err
	}
	return Services{
		Auth:         authService,
		Teaching:     services.NewTeachingService(log, repos.Teaching, repos.Track, assets),
		Track:        services.NewTrackService(log, repos.Teaching, repos.Track, assets),
		SoloAudio:    services.NewSoloAudioService(log, repos.SoloAudio, assets),
		Poster:       services.NewPosterService(log, repos.Poster, assets),
		Event:        services.NewEventService(log, repos.Event, assets),
		TeachingText: services.NewTeachingTextService(log, repos.TeachingText),
	}, nil
}
