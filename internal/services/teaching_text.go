package services

import (
	"strings"

	"github.com/google/uuid"

	mediarepos "github.com/igrejaviva/media-backend/internal/data/repos/media"
	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type CreateTeachingTextInput struct {
	Title      string `json:"title"`
	PastorName string `json:"pastorName"`
	Content    string `json:"content"`
}

type UpdateTeachingTextInput struct {
	Title      *string `json:"title"`
	PastorName *string `json:"pastorName"`
	Content    *string `json:"content"`
}

// TeachingTextService is plain CRUD; text teachings never own a blob.
type TeachingTextService interface {
	Create(dbc dbctx.Context, in CreateTeachingTextInput) (*types.TeachingText, error)
	List(dbc dbctx.Context) ([]*types.TeachingText, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.TeachingText, error)
	Update(dbc dbctx.Context, id uuid.UUID, in UpdateTeachingTextInput) (*types.TeachingText, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type teachingTextService struct {
	log   *logger.Logger
	texts mediarepos.TeachingTextRepo
}

func NewTeachingTextService(log *logger.Logger, texts mediarepos.TeachingTextRepo) TeachingTextService {
	return &teachingTextService{
		log:   log.With("service", "TeachingTextService"),
		texts: texts,
	}
}

func (s *teachingTextService) Create(dbc dbctx.Context, in CreateTeachingTextInput) (*types.TeachingText, error) {
	title := strings.TrimSpace(in.Title)
	pastor := strings.TrimSpace(in.PastorName)
	content := strings.TrimSpace(in.Content)
	if title == "" || pastor == "" || content == "" {
		return nil, apierr.Validation("title, pastorName and content are required")
	}
	created, err := s.texts.Create(dbc, &types.TeachingText{
		Title:      title,
		PastorName: pastor,
		Content:    content,
	})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("Teaching text created", "teaching_text_id", created.ID)
	return created, nil
}

func (s *teachingTextService) List(dbc dbctx.Context) ([]*types.TeachingText, error) {
	rows, err := s.texts.ListNewestFirst(dbc)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return rows, nil
}

func (s *teachingTextService) Get(dbc dbctx.Context, id uuid.UUID) (*types.TeachingText, error) {
	row, err := s.texts.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if row == nil {
		return nil, apierr.NotFound("teaching text %s not found", id)
	}
	return row, nil
}

func (s *teachingTextService) Update(dbc dbctx.Context, id uuid.UUID, in UpdateTeachingTextInput) (*types.TeachingText, error) {
	updates := map[string]interface{}{}
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.PastorName != nil && strings.TrimSpace(*in.PastorName) != "" {
		updates["pastor_name"] = strings.TrimSpace(*in.PastorName)
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) != "" {
		updates["content"] = strings.TrimSpace(*in.Content)
	}
	if len(updates) == 0 {
		return nil, apierr.NoOp()
	}
	n, err := s.texts.UpdateFields(dbc, id, updates)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if n == 0 {
		return nil, apierr.NotFound("teaching text %s not found", id)
	}
	updated, err := s.texts.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return updated, nil
}

func (s *teachingTextService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	n, err := s.texts.FullDeleteByID(dbc, id)
	if err != nil {
		return apierr.Internal(err)
	}
	if n == 0 {
		return apierr.NotFound("teaching text %s not found", id)
	}
	s.log.Info("Teaching text deleted", "teaching_text_id", id)
	return nil
}
