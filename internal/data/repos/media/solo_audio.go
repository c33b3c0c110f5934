package media

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type SoloAudioRepo interface {
	Create(dbc dbctx.Context, row *types.SoloAudio) (*types.SoloAudio, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.SoloAudio, error)
	ListNewestFirst(dbc dbctx.Context) ([]*types.SoloAudio, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	FullDeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type soloAudioRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSoloAudioRepo(db *gorm.DB, baseLog *logger.Logger) SoloAudioRepo {
	return &soloAudioRepo{db: db, log: baseLog.With("repo", "SoloAudioRepo")}
}

func (r *soloAudioRepo) Create(dbc dbctx.Context, row *types.SoloAudio) (*types.SoloAudio, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *soloAudioRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.SoloAudio, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.SoloAudio
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *soloAudioRepo) ListNewestFirst(dbc dbctx.Context) ([]*types.SoloAudio, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.SoloAudio
	if err := t.WithContext(dbc.Ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *soloAudioRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
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
		Model(&types.SoloAudio{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *soloAudioRepo) FullDeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Where("id = ?", id).Delete(&types.SoloAudio{})
	return res.RowsAffected, res.Error
}
