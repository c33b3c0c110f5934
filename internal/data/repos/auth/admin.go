package auth

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type AdminRepo interface {
	Create(dbc dbctx.Context, row *types.Admin) (*types.Admin, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Admin, error)
	GetByUsername(dbc dbctx.Context, username string) (*types.Admin, error)
}

type adminRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminRepo(db *gorm.DB, baseLog *logger.Logger) AdminRepo {
	return &adminRepo{db: db, log: baseLog.With("repo", "AdminRepo")}
}

func (r *adminRepo) Create(dbc dbctx.Context, row *types.Admin) (*types.Admin, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *adminRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Admin, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Admin
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *adminRepo) GetByUsername(dbc dbctx.Context, username string) (*types.Admin, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if username == "" {
		return nil, nil
	}
	var rows []*types.Admin
	if err := t.WithContext(dbc.Ctx).Where("username = ?", username).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
