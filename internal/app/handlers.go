package app

import (
	"github.com/igrejaviva/media-backend/internal/http/handlers"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Teaching     *handlers.TeachingHandler
	Track        *handlers.TrackHandler
	SoloAudio    *handlers.SoloAudioHandler
	Poster       *handlers.PosterHandler
	Event        *handlers.EventHandler
	TeachingText *handlers.TeachingTextHandler
}

func wireHandlers(svcs Services) Handlers {
	return Handlers{
		Auth:         handlers.NewAuthHandler(svcs.Auth),
		Teaching:     handlers.NewTeachingHandler(svcs.Teaching),
		Track:        handlers.NewTrackHandler(svcs.Track),
		SoloAudio:    handlers.NewSoloAudioHandler(svcs.SoloAudio),
		Poster:       handlers.NewPosterHandler(svcs.Poster),
		Event:        handlers.NewEventHandler(svcs.Event),
		TeachingText: handlers.NewTeachingTextHandler(svcs.TeachingText),
	}
}
