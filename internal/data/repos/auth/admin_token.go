package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type AdminTokenRepo interface {
	Create(dbc dbctx.Context, row *types.AdminToken) (*types.AdminToken, error)
	GetByAccessToken(dbc dbctx.Context, token string) (*types.AdminToken, error)
	DeleteByAdminID(dbc dbctx.Context, adminID uuid.UUID) (int64, error)
	DeleteExpired(dbc dbctx.Context) (int64, error)
}

type adminTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminTokenRepo(db *gorm.DB, baseLog *logger.Logger) AdminTokenRepo {
	return &adminTokenRepo{db: db, log: baseLog.With("repo", "AdminTokenRepo")}
}

func (r *adminTokenRepo) Create(dbc dbctx.Context, row *types.AdminToken) (*types.AdminToken, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *adminTokenRepo) GetByAccessToken(dbc dbctx.Context, token string) (*types.AdminToken, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if token == "" {
		return nil, nil
	}
	var rows []*types.AdminToken
	if err := t.WithContext(dbc.Ctx).Where("access_token = ?", token).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *adminTokenRepo) DeleteByAdminID(dbc dbctx.Context, adminID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if adminID == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Where("admin_id = ?", adminID).Delete(&types.AdminToken{})
	return res.RowsAffected, res.Error
}

func (r *adminTokenRepo) DeleteExpired(dbc dbctx.Context) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).Where("expires_at < ?", time.Now().UTC()).Delete(&types.AdminToken{})
	return res.RowsAffected, res.Error
}
