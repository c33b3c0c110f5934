package services

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	mediarepos "github.com/igrejaviva/media-backend/internal/data/repos/media"
	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/platform/gcs"
	"github.com/igrejaviva/media-backend/internal/platform/imaging"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

const posterSize = 500

type CreatePosterInput struct {
	Title string
	Image []byte
}

type PosterService interface {
	// Create replaces the active poster: the previous image is reclaimed
	// and its row removed before the new one is uploaded and inserted.
	// After any successful call exactly one poster is live.
	Create(dbc dbctx.Context, in CreatePosterInput) (*types.Poster, error)
	GetActive(dbc dbctx.Context) (*types.Poster, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.Poster, error)
	List(dbc dbctx.Context) ([]*types.Poster, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	// Cleanup wipes every poster row and asset, reporting how many rows
	// were removed.
	Cleanup(dbc dbctx.Context) (int64, error)
}

type posterService struct {
	log     *logger.Logger
	posters mediarepos.PosterRepo
	assets  gcs.Store

	// mu serializes mutations so two concurrent creates cannot leave two
	// live rows or a dangling image.
	mu sync.Mutex
}

func NewPosterService(log *logger.Logger, posters mediarepos.PosterRepo, assets gcs.Store) PosterService {
	return &posterService{
		log:     log.With("service", "PosterService"),
		posters: posters,
		assets:  assets,
	}
}

func (s *posterService) Create(dbc dbctx.Context, in CreatePosterInput) (*types.Poster, error) {
	if err := validateImagePayload(in.Image); err != nil {
		return nil, err
	}
	normalized, err := imaging.NormalizeSquare(in.Image, posterSize)
	if err != nil {
		return nil, apierr.Validation("could not decode image: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.posters.GetNewest(dbc)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if current != nil {
		// The old image may already be gone (reclaimed out of band);
		// that counts as a clean replacement.
		if key := strings.TrimSpace(current.ImageKey); key != "" {
			if err := s.assets.Destroy(dbc.Ctx, key); err != nil && !gcs.IsNotFound(err) {
				s.log.Warn("failed to delete replaced poster image (ignored)", "key", key, "error", err)
			}
		}
		if _, err := s.posters.FullDeleteByID(dbc, current.ID); err != nil {
			return nil, apierr.Internal(err)
		}
	}

	ref, err := s.assets.Upload(dbc.Ctx, normalized, "cartazes", gcs.AssetKindImage)
	if err != nil {
		return nil, apierr.Upstream(err)
	}

	row := &types.Poster{
		Title:    strings.TrimSpace(in.Title),
		ImageURL: ref.URL,
		ImageKey: ref.Key,
	}
	created, err := s.posters.Create(dbc, row)
	if err != nil {
		s.log.Warn("poster insert failed after upload", "orphan_key", ref.Key, "error", err)
		return nil, apierr.Internal(err)
	}
	s.log.Info("Poster replaced", "poster_id", created.ID)
	return created, nil
}

func (s *posterService) GetActive(dbc dbctx.Context) (*types.Poster, error) {
	row, err := s.posters.GetNewest(dbc)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if row == nil {
		return nil, apierr.NotFound("no active poster")
	}
	return row, nil
}

func (s *posterService) Get(dbc dbctx.Context, id uuid.UUID) (*types.Poster, error) {
	row, err := s.posters.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if row == nil {
		return nil, apierr.NotFound("poster %s not found", id)
	}
	return row, nil
}

func (s *posterService) List(dbc dbctx.Context) ([]*types.Poster, error) {
	rows, err := s.posters.ListNewestFirst(dbc)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return rows, nil
}

func (s *posterService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.posters.GetByID(dbc, id)
	if err != nil {
		return apierr.Internal(err)
	}
	if target == nil {
		return apierr.NotFound("poster %s not found", id)
	}
	if key := strings.TrimSpace(target.ImageKey); key != "" {
		if err := s.assets.Destroy(dbc.Ctx, key); err != nil && !gcs.IsNotFound(err) {
			s.log.Warn("failed to delete poster image (ignored)", "key", key, "poster_id", id, "error", err)
		}
	}
	if _, err := s.posters.FullDeleteByID(dbc, id); err != nil {
		return apierr.Internal(err)
	}
	s.log.Info("Poster deleted", "poster_id", id)
	return nil
}

func (s *posterService) Cleanup(dbc dbctx.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.posters.ListNewestFirst(dbc)
	if err != nil {
		return 0, apierr.Internal(err)
	}
	for _, r := range rows {
		key := strings.TrimSpace(r.ImageKey)
		if key == "" {
			continue
		}
		if err := s.assets.Destroy(dbc.Ctx, key); err != nil && !gcs.IsNotFound(err) {
			s.log.Warn("failed to delete poster image during cleanup (ignored)", "key", key, "poster_id", r.ID, "error", err)
		}
	}
	removed, err := s.posters.FullDeleteAll(dbc)
	if err != nil {
		return 0, apierr.Internal(err)
	}
	s.log.Info("Poster cleanup finished", "removed", removed)
	return removed, nil
}
