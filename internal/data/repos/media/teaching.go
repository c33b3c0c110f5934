package media

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type TeachingRepo interface {
	Create(dbc dbctx.Context, row *types.Teaching) (*types.Teaching, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Teaching, error)
	// ListWithTrackCount is the public list view: newest first, with the
	// per-teaching track count projected at read time.
	ListWithTrackCount(dbc dbctx.Context) ([]*types.TeachingWithTrackCount, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	FullDeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type teachingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTeachingRepo(db *gorm.DB, baseLog *logger.Logger) TeachingRepo {
	return &teachingRepo{db: db, log: baseLog.With("repo", "TeachingRepo")}
}

func (r *teachingRepo) Create(dbc dbctx.Context, row *types.Teaching) (*types.Teaching, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *teachingRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Teaching, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Teaching
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *teachingRepo) ListWithTrackCount(dbc dbctx.Context) ([]*types.TeachingWithTrackCount, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.TeachingWithTrackCount
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Teaching{}).
		Select("teaching.*, (SELECT COUNT(*) FROM track WHERE track.teaching_id = teaching.id) AS track_count").
		Order("created_at DESC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *teachingRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
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
		Model(&types.Teaching{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *teachingRepo) FullDeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Where("id = ?", id).Delete(&types.Teaching{})
	return res.RowsAffected, res.Error
}
