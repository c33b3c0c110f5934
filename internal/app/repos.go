package app

import (
	"gorm.io/gorm"

	authrepos "github.com/igrejaviva/media-backend/internal/data/repos/auth"
	mediarepos "github.com/igrejaviva/media-backend/internal/data/repos/media"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type Repos struct {
	Teaching     mediarepos.TeachingRepo
	Track        mediarepos.TrackRepo
	SoloAudio    mediarepos.SoloAudioRepo
	Poster       mediarepos.PosterRepo
	Event        mediarepos.EventRepo
	TeachingText mediarepos.TeachingTextRepo

	Admin      authrepos.AdminRepo
	AdminToken authrepos.AdminTokenRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Teaching:     mediarepos.NewTeachingRepo(db, log),
		Track:        mediarepos.NewTrackRepo(db, log),
		SoloAudio:    mediarepos.NewSoloAudioRepo(db, log),
		Poster:       mediarepos.NewPosterRepo(db, log),
		Event:        mediarepos.NewEventRepo(db, log),
		TeachingText: mediarepos.NewTeachingTextRepo(db, log),

		Admin:      authrepos.NewAdminRepo(db, log),
		AdminToken: authrepos.NewAdminTokenRepo(db, log),
	}
}
