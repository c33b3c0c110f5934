package media

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type TrackRepo interface {
	Create(dbc dbctx.Context, row *types.Track) (*types.Track, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Track, error)
	// GetByTeachingID returns the children in playback order (oldest first).
	// Cascade deletes and the teaching detail view both read through here so
	// the set is always the live one.
	GetByTeachingID(dbc dbctx.Context, teachingID uuid.UUID) ([]*types.Track, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	FullDeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
	FullDeleteByTeachingID(dbc dbctx.Context, teachingID uuid.UUID) (int64, error)
}

type trackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrackRepo(db *gorm.DB, baseLog *logger.Logger) TrackRepo {
	return &trackRepo{db: db, log: baseLog.With("repo", "TrackRepo")}
}

func (r *trackRepo) Create(dbc dbctx.Context, row *types.Track) (*types.Track, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *trackRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Track, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Track
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *trackRepo) GetByTeachingID(dbc dbctx.Context, teachingID uuid.UUID) ([]*types.Track, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Track
	if teachingID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("teaching_id = ?", teachingID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *trackRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return 0, nil
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.Track{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *trackRepo) FullDeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Where("id = ?", id).Delete(&types.Track{})
	return res.RowsAffected, res.Error
}

func (r *trackRepo) FullDeleteByTeachingID(dbc dbctx.Context, teachingID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if teachingID == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Where("teaching_id = ?", teachingID).Delete(&types.Track{})
	return res.RowsAffected, res.Error
}
