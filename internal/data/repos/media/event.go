package media

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type EventRepo interface {
	Create(dbc dbctx.Context, row *types.Event) (*types.Event, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Event, error)
	// ListByCalendarOrder sorts by the month then day stored in the jsonb
	// date column, so the calendar view comes back in year order.
	ListByCalendarOrder(dbc dbctx.Context) ([]*types.Event, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	FullDeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	return &eventRepo{db: db, log: baseLog.With("repo", "EventRepo")}
}

func (r *eventRepo) Create(dbc dbctx.Context, row *types.Event) (*types.Event, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *eventRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Event, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Event
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *eventRepo) ListByCalendarOrder(dbc dbctx.Context) ([]*types.Event, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Event
	if err := t.WithContext(dbc.Ctx).
		Order("(date->>'month')::int ASC, (date->>'day')::int ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
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
		Model(&types.Event{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *eventRepo) FullDeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Where("id = ?", id).Delete(&types.Event{})
	return res.RowsAffected, res.Error
}
