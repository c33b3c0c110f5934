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

const (
	defaultTrackTitle    = "Sem título"
	defaultTrackPreacher = "Desconhecido"
)

type CreateTrackInput struct {
	TeachingID uuid.UUID
	Title      string
	Preacher   string
	Audio      []byte
}

type UpdateTrackInput struct {
	Title    *string `json:"title"`
	Preacher *string `json:"preacher"`
	NewAudio []byte  `json:"-"`
}

type TrackService interface {
	// Create uploads the audio first; the row is only written once the
	// blob exists. An insert failure leaves the orphaned key in the log.
	Create(dbc dbctx.Context, in CreateTrackInput) (*types.Track, error)
	Update(dbc dbctx.Context, id uuid.UUID, in UpdateTrackInput) (*types.Track, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type trackService struct {
	log       *logger.Logger
	teachings mediarepos.TeachingRepo
	tracks    mediarepos.TrackRepo
	assets    gcs.Store
}

func NewTrackService(log *logger.Logger, teachings mediarepos.TeachingRepo, tracks mediarepos.TrackRepo, assets gcs.Store) TrackService {
	return &trackService{
		log:       log.With("service", "TrackService"),
		teachings: teachings,
		tracks:    tracks,
		assets:    assets,
	}
}

func (s *trackService) Create(dbc dbctx.Context, in CreateTrackInput) (*types.Track, error) {
	if in.TeachingID == uuid.Nil {
		return nil, apierr.Validation("teachingId is required")
	}
	if err := validateAudioPayload(in.Audio); err != nil {
		return nil, err
	}
	parent, err := s.teachings.GetByID(dbc, in.TeachingID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if parent == nil {
		return nil, apierr.NotFound("teaching %s not found", in.TeachingID)
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

	row := &types.Track{
		TeachingID: in.TeachingID,
		Title:      title,
		Preacher:   preacher,
		AudioURL:   ref.URL,
		AudioKey:   ref.Key,
	}
	created, err := s.tracks.Create(dbc, row)
	if err != nil {
		s.log.Warn("track insert failed after audio upload", "orphan_key", ref.Key, "error", err)
		return nil, apierr.Internal(err)
	}
	s.log.Info("Track created", "track_id", created.ID, "teaching_id", in.TeachingID)
	return created, nil
}

func (s *trackService) Update(dbc dbctx.Context, id uuid.UUID, in UpdateTrackInput) (*types.Track, error) {
	row, err := s.tracks.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if row == nil {
		return nil, apierr.NotFound("track %s not found", id)
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

	n, err := s.tracks.UpdateFields(dbc, id, updates)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if n == 0 {
		return nil, apierr.NotFound("track %s not found", id)
	}
	updated, err := s.tracks.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return updated, nil
}

func (s *trackService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	row, err := s.tracks.GetByID(dbc, id)
	if err != nil {
		return apierr.Internal(err)
	}
	if row == nil {
		return apierr.NotFound("track %s not found", id)
	}
	if key := strings.TrimSpace(row.AudioKey); key != "" {
		if err := s.assets.Destroy(dbc.Ctx, key); err != nil && !gcs.IsNotFound(err) {
			s.log.Warn("failed to delete audio (ignored)", "key", key, "track_id", id, "error", err)
		}
	}
	if _, err := s.tracks.FullDeleteByID(dbc, id); err != nil {
		return apierr.Internal(err)
	}
	s.log.Info("Track deleted", "track_id", id)
	return nil
}
