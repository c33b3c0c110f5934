package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	mediarepos "github.com/igrejaviva/media-backend/internal/data/repos/media"
	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/platform/gcs"
	"github.com/igrejaviva/media-backend/internal/platform/imaging"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

const coverSize = 500

// destroyFanOutLimit bounds the parallel asset destroys during a cascade
// delete so a teaching with many tracks cannot flood the storage API.
const destroyFanOutLimit = 4

type CreateTeachingInput struct {
	Title    string `json:"title"`
	Preacher string `json:"preacher"`
	Category string `json:"category"`
	CoverURL string `json:"coverUrl"`
	CoverKey string `json:"coverKey"`
	// Cover, when set, is an image to upload inline instead of the
	// pre-uploaded coverUrl/coverKey pair.
	Cover []byte `json:"-"`
}

type UpdateTeachingInput struct {
	Title    *string `json:"title"`
	Preacher *string `json:"preacher"`
	Category *string `json:"category"`
	// NewCover, when set, replaces the stored cover image.
	NewCover []byte `json:"-"`
}

// TeachingDetail is the GET-by-id view: the record plus its tracks in
// playback order.
type TeachingDetail struct {
	*types.Teaching
	Tracks []*types.Track `json:"tracks"`
}

type TeachingService interface {
	UploadCover(ctx context.Context, raw []byte) (gcs.AssetRef, error)
	Create(dbc dbctx.Context, in CreateTeachingInput) (*types.Teaching, error)
	List(dbc dbctx.Context) ([]*types.TeachingWithTrackCount, error)
	GetWithTracks(dbc dbctx.Context, id uuid.UUID) (*TeachingDetail, error)
	Update(dbc dbctx.Context, id uuid.UUID, in UpdateTeachingInput) (*types.Teaching, error)
	// Delete cascades: the cover and every track audio are destroyed
	// (best effort) before the rows are removed, children first.
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type teachingService struct {
	log       *logger.Logger
	teachings mediarepos.TeachingRepo
	tracks    mediarepos.TrackRepo
	assets    gcs.Store
}

func NewTeachingService(log *logger.Logger, teachings mediarepos.TeachingRepo, tracks mediarepos.TrackRepo, assets gcs.Store) TeachingService {
	return &teachingService{
		log:       log.With("service", "TeachingService"),
		teachings: teachings,
		tracks:    tracks,
		assets:    assets,
	}
}

func (s *teachingService) UploadCover(ctx context.Context, raw []byte) (gcs.AssetRef, error) {
	if err := validateImagePayload(raw); err != nil {
		return gcs.AssetRef{}, err
	}
	normalized, err := imaging.NormalizeSquare(raw, coverSize)
	if err != nil {
		return gcs.AssetRef{}, apierr.Validation("could not decode image: %v", err)
	}
	ref, err := s.assets.Upload(ctx, normalized, "covers", gcs.AssetKindImage)
	if err != nil {
		return gcs.AssetRef{}, apierr.Upstream(err)
	}
	return ref, nil
}

func (s *teachingService) Create(dbc dbctx.Context, in CreateTeachingInput) (*types.Teaching, error) {
	title := strings.TrimSpace(in.Title)
	preacher := strings.TrimSpace(in.Preacher)
	category := strings.TrimSpace(in.Category)
	if title == "" || preacher == "" || category == "" {
		return nil, apierr.Validation("title, preacher and category are required")
	}
	coverURL := strings.TrimSpace(in.CoverURL)
	coverKey := strings.TrimSpace(in.CoverKey)
	if (coverURL == "") != (coverKey == "") {
		return nil, apierr.Validation("coverUrl and coverKey must be provided together")
	}
	if len(in.Cover) > 0 {
		if coverKey != "" {
			return nil, apierr.Validation("send either a cover file or coverUrl/coverKey, not both")
		}
		ref, err := s.UploadCover(dbc.Ctx, in.Cover)
		if err != nil {
			return nil, err
		}
		coverURL, coverKey = ref.URL, ref.Key
	}

	row := &types.Teaching{
		Title:    title,
		Preacher: preacher,
		Category: category,
		CoverURL: coverURL,
		CoverKey: coverKey,
	}
	created, err := s.teachings.Create(dbc, row)
	if err != nil {
		if coverKey != "" {
			s.log.Warn("teaching insert failed after cover upload", "orphan_key", coverKey, "error", err)
		}
		return nil, apierr.Internal(err)
	}
	s.log.Info("Teaching created", "teaching_id", created.ID)
	return created, nil
}

func (s *teachingService) List(dbc dbctx.Context) ([]*types.TeachingWithTrackCount, error) {
	rows, err := s.teachings.ListWithTrackCount(dbc)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return rows, nil
}

func (s *teachingService) GetWithTracks(dbc dbctx.Context, id uuid.UUID) (*TeachingDetail, error) {
	row, err := s.teachings.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if row == nil {
		return nil, apierr.NotFound("teaching %s not found", id)
	}
	tracks, err := s.tracks.GetByTeachingID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if tracks == nil {
		// Clients get "tracks": [] rather than null.
		tracks = []*types.Track{}
	}
	return &TeachingDetail{Teaching: row, Tracks: tracks}, nil
}

func (s *teachingService) Update(dbc dbctx.Context, id uuid.UUID, in UpdateTeachingInput) (*types.Teaching, error) {
	row, err := s.teachings.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if row == nil {
		return nil, apierr.NotFound("teaching %s not found", id)
	}

	updates := map[string]interface{}{}
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Preacher != nil && strings.TrimSpace(*in.Preacher) != "" {
		updates["preacher"] = strings.TrimSpace(*in.Preacher)
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
		updates["category"] = strings.TrimSpace(*in.Category)
	}

	if len(in.NewCover) > 0 {
		if err := validateImagePayload(in.NewCover); err != nil {
			return nil, err
		}
		normalized, err := imaging.NormalizeSquare(in.NewCover, coverSize)
		if err != nil {
			return nil, apierr.Validation("could not decode image: %v", err)
		}
		// Old object goes first so the bucket never holds two covers for
		// one teaching. Losing it is acceptable; losing track of the new
		// one is not.
		if oldKey := strings.TrimSpace(row.CoverKey); oldKey != "" {
			if err := s.assets.Destroy(dbc.Ctx, oldKey); err != nil && !gcs.IsNotFound(err) {
				s.log.Warn("failed to delete old cover (ignored)", "key", oldKey, "error", err)
			}
		}
		ref, err := s.assets.Upload(dbc.Ctx, normalized, "covers", gcs.AssetKindImage)
		if err != nil {
			return nil, apierr.Upstream(err)
		}
		updates["cover_url"] = ref.URL
		updates["cover_key"] = ref.Key
	}

	if len(updates) == 0 {
		return nil, apierr.NoOp()
	}

	n, err := s.teachings.UpdateFields(dbc, id, updates)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if n == 0 {
		return nil, apierr.NotFound("teaching %s not found", id)
	}
	updated, err := s.teachings.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return updated, nil
}

func (s *teachingService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	row, err := s.teachings.GetByID(dbc, id)
	if err != nil {
		return apierr.Internal(err)
	}
	if row == nil {
		return apierr.NotFound("teaching %s not found", id)
	}
	tracks, err := s.tracks.GetByTeachingID(dbc, id)
	if err != nil {
		return apierr.Internal(err)
	}

	keys := make([]string, 0, len(tracks)+1)
	if k := strings.TrimSpace(row.CoverKey); k != "" {
		keys = append(keys, k)
	}
	for _, tr := range tracks {
		if k := strings.TrimSpace(tr.AudioKey); k != "" {
			keys = append(keys, k)
		}
	}

	// Every unit logs its own failure and reports success, so one broken
	// object never stops the remaining destroys or the row removal.
	g, ctx := errgroup.WithContext(dbc.Ctx)
	g.SetLimit(destroyFanOutLimit)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			if err := s.assets.Destroy(ctx, key); err != nil && !gcs.IsNotFound(err) {
				s.log.Warn("failed to delete asset during cascade (ignored)", "key", key, "teaching_id", id, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	removedTracks, err := s.tracks.FullDeleteByTeachingID(dbc, id)
	if err != nil {
		return apierr.Internal(err)
	}
	if _, err := s.teachings.FullDeleteByID(dbc, id); err != nil {
		return apierr.Internal(err)
	}
	s.log.Info("Teaching deleted", "teaching_id", id, "tracks_removed", removedTracks)
	return nil
}
