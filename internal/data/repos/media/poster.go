package media

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type PosterRepo interface {
	Create(dbc dbctx.Context, row *types.Poster) (*types.Poster, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Poster, error)
	// GetNewest returns the active poster, or nil when none exists.
	GetNewest(dbc dbctx.Context) (*types.Poster, error)
	ListNewestFirst(dbc dbctx.Context) ([]*types.Poster, error)
	FullDeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
	FullDeleteAll(dbc dbctx.Context) (int64, error)
}

type posterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPosterRepo(db *gorm.DB, baseLog *logger.Logger) PosterRepo {
	return &posterRepo{db: db, log: baseLog.With("repo", "PosterRepo")}
}

func (r *posterRepo) Create(dbc dbctx.Context, row *types.Poster) (*types.Poster, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *posterRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Poster, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Poster
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *posterRepo) GetNewest(dbc dbctx.Context) (*types.Poster, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var rows []*types.Poster
	if err := t.WithContext(dbc.Ctx).Order("created_at DESC").Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *posterRepo) ListNewestFirst(dbc dbctx.Context) ([]*types.Poster, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Poster
	if err := t.WithContext(dbc.Ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *posterRepo) FullDeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Where("id = ?", id).Delete(&types.Poster{})
	return res.RowsAffected, res.Error
}

func (r *posterRepo) FullDeleteAll(dbc dbctx.Context) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).Where("1 = 1").Delete(&types.Poster{})
	return res.RowsAffected, res.Error
}
