package services

import (
	"strings"

	"github.com/google/uuid"

	mediarepos "github.com/igrejaviva/media-backend/internal/data/repos/media"
	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/platform/gcs"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type CreateSoloAudioInput struct {
	Title    string
	Preacher string
	Audio    []byte
}

type UpdateSoloAudioInput struct {
	Title    *string `json:"title"`
	Preacher *string `json:"preacher"`
	NewAudio []byte  `json:"-"`
}

type SoloAudioService interface {
	Create(dbc dbctx.Context, in CreateSoloAudioInput) (*types.SoloAudio, error)
	List(dbc dbctx.Context) ([]*types.SoloAudio, error)
	Update(dbc dbctx.Context, id uuid.UUID, in UpdateSoloAudioInput) (*types.SoloAudio, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type soloAudioService struct {
	log    *logger.Logger
	solos  mediarepos.SoloAudioRepo
	assets gcs.Store
}

func NewSoloAudioService(log *logger.Logger, solos mediarepos.SoloAudioRepo, assets gcs.Store) SoloAudioService {
	return &soloAudioService{
		log:    log.With("service", "SoloAudioService"),
		solos:  solos,
		assets: assets,
	}
}

func (s *soloAudioService) Create(dbc dbctx.Context, in CreateSoloAudioInput) (*types.SoloAudio, error) {
	if err := validateAudioPayload(in.Audio); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = defaultTrackTitle
	}
	preacher := strings.TrimSpace(in.Preacher)
	if preacher == "" {
		preacher = defaultTrackPreacher
	}

	ref, err := s.assets.Upload(dbc.Ctx, in.Audio, "audios", gcs.AssetKindAudio)
	if err != nil {
		return nil, apierr.Upstream(err)
	}

	row := &types.SoloAudio{
		Title:    title,
		Preacher: preacher,
		AudioURL: ref.URL,
		AudioKey: ref.Key,
	}
	created, err := s.solos.Create(dbc, row)
	if err != nil {
		s.log.Warn("solo audio insert failed after upload", "orphan_key", ref.Key, "error", err)
		return nil, apierr.Internal(err)
	}
	s.log.Info("Solo audio created", "solo_audio_id", created.ID)
	return created, nil
}

func (s *soloAudioService) List(dbc dbctx.Context) ([]*types.SoloAudio, error) {
	rows, err := s.solos.ListNewestFirst(dbc)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return rows, nil
}

func (s *soloAudioService) Update(dbc dbctx.Context, id uuid.UUID, in UpdateSoloAudioInput) (*types.SoloAudio, error) {
	row, err := s.solos.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if row == nil {
		return nil, apierr.NotFound("solo audio %s not found", id)
	}

	updates := map[string]interface{}{}
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Preacher != nil && strings.TrimSpace(*in.Preacher) != "" {
		updates["preacher"] = strings.TrimSpace(*in.Preacher)
	}

	if len(in.NewAudio) > 0 {
		if err := validateAudioPayload(in.NewAudio); err != nil {
			return nil, err
		}
		if oldKey := strings.TrimSpace(row.AudioKey); oldKey != "" {
			if err := s.assets.Destroy(dbc.Ctx, oldKey); err != nil && !gcs.IsNotFound(err) {
				s.log.Warn("failed to delete old audio (ignored)", "key", oldKey, "error", err)
			}
		}
		ref, err := s.assets.Upload(dbc.Ctx, in.NewAudio, "audios", gcs.AssetKindAudio)
		if err != nil {
			return nil, apierr.Upstream(err)
		}
		updates["audio_url"] = ref.URL
		updates["audio_key"] = ref.Key
	}

	if len(updates) == 0 {
		return nil, apierr.NoOp()
	}

	n, err := s.solos.UpdateFields(dbc, id, updates)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if n == 0 {
		return nil, apierr.NotFound("solo audio %s not found", id)
	}
	updated, err := s.solos.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return updated, nil
}

func (s *soloAudioService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	row, err := s.solos.GetByID(dbc, id)
	if err != nil {
		return apierr.Internal(err)
	}
	if row == nil {
		return apierr.NotFound("solo audio %s not found", id)
	}
	if key := strings.TrimSpace(row.AudioKey); key != "" {
		if err := s.assets.Destroy(dbc.Ctx, key); err != nil && !gcs.IsNotFound(err) {
			s.log.Warn("failed to delete audio (ignored)", "key", key, "solo_audio_id", id, "error", err)
		}
	}
	if _, err := s.solos.FullDeleteByID(dbc, id); err != nil {
		return apierr.Internal(err)
	}
	s.log.Info("Solo audio deleted", "solo_audio_id", id)
	return nil
}
