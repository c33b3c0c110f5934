package domain

import (
	"github.com/igrejaviva/media-backend/internal/domain/auth"
	"github.com/igrejaviva/media-backend/internal/domain/media"
)

type (
	Teaching               = media.Teaching
	TeachingWithTrackCount = media.TeachingWithTrackCount
	Track                  = media.Track
	SoloAudio              = media.SoloAudio
	Poster                 = media.Poster
	Event                  = media.Event
	TeachingText           = media.TeachingText

	Admin      = auth.Admin
	AdminToken = auth.AdminToken
)
