package services

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	mediarepos "github.com/igrejaviva/media-backend/internal/data/repos/media"
	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/platform/gcs"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

// EventDate is the calendar position stored in the jsonb date column.
type EventDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
}

type CreateEventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Date        *EventDate `json:"date"`
	Time        string     `json:"time"`
}

type UpdateEventInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Date        *EventDate `json:"date"`
	Time        *string    `json:"time"`
}

type EventService interface {
	Create(dbc dbctx.Context, in CreateEventInput) (*types.Event, error)
	List(dbc dbctx.Context) ([]*types.Event, error)
	Update(dbc dbctx.Context, id uuid.UUID, in UpdateEventInput) (*types.Event, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	// AttachFlyer replaces any existing flyer; the old object is destroyed
	// first, best effort.
	AttachFlyer(dbc dbctx.Context, id uuid.UUID, raw []byte) (*types.Event, error)
	// DetachFlyer is the one removal where a failed destroy fails the
	// request: the record keeps pointing at the object until it is gone.
	DetachFlyer(dbc dbctx.Context, id uuid.UUID) (*types.Event, error)
}

type eventService struct {
	log    *logger.Logger
	events mediarepos.EventRepo
	assets gcs.Store
}

func NewEventService(log *logger.Logger, events mediarepos.EventRepo, assets gcs.Store) EventService {
	return &eventService{
		log:    log.With("service", "EventService"),
		events: events,
		assets: assets,
	}
}

func (s *eventService) Create(dbc dbctx.Context, in CreateEventInput) (*types.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apierr.Validation("title is required")
	}
	if in.Date == nil {
		return nil, apierr.Validation("date is required")
	}
	if in.Date.Day < 1 || in.Date.Day > 31 || in.Date.Month < 1 || in.Date.Month > 12 {
		return nil, apierr.Validation("date must have day 1-31 and month 1-12")
	}
	dateJSON, err := json.Marshal(in.Date)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	row := &types.Event{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Date:        datatypes.JSON(dateJSON),
		Time:        strings.TrimSpace(in.Time),
	}
	created, err := s.events.Create(dbc, row)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("Event created", "event_id", created.ID)
	return created, nil
}

func (s *eventService) List(dbc dbctx.Context) ([]*types.Event, error) {
	rows, err := s.events.ListByCalendarOrder(dbc)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return rows, nil
}

func (s *eventService) Update(dbc dbctx.Context, id uuid.UUID, in UpdateEventInput) (*types.Event, error) {
	row, err := s.events.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if row == nil {
		return nil, apierr.NotFound("event %s not found", id)
	}

	updates := map[string]interface{}{}
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		updates["category"] = strings.TrimSpace(*in.Category)
	}
	if in.Time != nil {
		updates["time"] = strings.TrimSpace(*in.Time)
	}
	if in.Date != nil {
		if in.Date.Day < 1 || in.Date.Day > 31 || in.Date.Month < 1 || in.Date.Month > 12 {
			return nil, apierr.Validation("date must have day 1-31 and month 1-12")
		}
		dateJSON, err := json.Marshal(in.Date)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		updates["date"] = datatypes.JSON(dateJSON)
	}

	if len(updates) == 0 {
		return nil, apierr.NoOp()
	}

	n, err := s.events.UpdateFields(dbc, id, updates)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if n == 0 {
		return nil, apierr.NotFound("event %s not found", id)
	}
	updated, err := s.events.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return updated, nil
}

func (s *eventService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	row, err := s.events.GetByID(dbc, id)
	if err != nil {
		return apierr.Internal(err)
	}
	if row == nil {
		return apierr.NotFound("event %s not found", id)
	}
	if key := strings.TrimSpace(row.FlyerKey); key != "" {
		if err := s.assets.Destroy(dbc.Ctx, key); err != nil && !gcs.IsNotFound(err) {
			s.log.Warn("failed to delete flyer (ignored)", "key", key, "event_id", id, "error", err)
		}
	}
	if _, err := s.events.FullDeleteByID(dbc, id); err != nil {
		return apierr.Internal(err)
	}
	s.log.Info("Event deleted", "event_id", id)
	return nil
}

func (s *eventService) AttachFlyer(dbc dbctx.Context, id uuid.UUID, raw []byte) (*types.Event, error) {
	if err := validateImagePayload(raw); err != nil {
		return nil, err
	}
	row, err := s.events.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if row == nil {
		return nil, apierr.NotFound("event %s not found", id)
	}

	if oldKey := strings.TrimSpace(row.FlyerKey); oldKey != "" {
		if err := s.assets.Destroy(dbc.Ctx, oldKey); err != nil && !gcs.IsNotFound(err) {
			s.log.Warn("failed to delete old flyer (ignored)", "key", oldKey, "error", err)
		}
	}

	ref, err := s.assets.Upload(dbc.Ctx, raw, "flyers", gcs.AssetKindImage)
	if err != nil {
		return nil, apierr.Upstream(err)
	}

	n, err := s.events.UpdateFields(dbc, id, map[string]interface{}{
		"flyer_url": ref.URL,
		"flyer_key": ref.Key,
	})
	if err != nil {
		s.log.Warn("event update failed after flyer upload", "orphan_key", ref.Key, "error", err)
		return nil, apierr.Internal(err)
	}
	if n == 0 {
		s.log.Warn("event vanished during flyer attach", "orphan_key", ref.Key, "event_id", id)
		return nil, apierr.NotFound("event %s not found", id)
	}
	updated, err := s.events.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return updated, nil
}

func (s *eventService) DetachFlyer(dbc dbctx.Context, id uuid.UUID) (*types.Event, error) {
	row, err := s.events.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if row == nil {
		return nil, apierr.NotFound("event %s not found", id)
	}
	key := strings.TrimSpace(row.FlyerKey)
	if key == "" && strings.TrimSpace(row.FlyerURL) == "" {
		return nil, apierr.NotFound("event %s has no flyer", id)
	}
	if key != "" {
		if err := s.assets.Destroy(dbc.Ctx, key); err != nil && !gcs.IsNotFound(err) {
			return nil, apierr.Upstream(err)
		}
	}
	if _, err := s.events.UpdateFields(dbc, id, map[string]interface{}{
		"flyer_url": "",
		"flyer_key": "",
	}); err != nil {
		return nil, apierr.Internal(err)
	}
	updated, err := s.events.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("Flyer detached", "event_id", id)
	return updated, nil
}
