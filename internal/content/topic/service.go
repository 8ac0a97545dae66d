package topic

import (
	"context"
	"log/slog"

	"github.com/tdnguyen/apologia/internal/content/status"
	"github.com/tdnguyen/apologia/internal/platform/apperr"
	"github.com/tdnguyen/apologia/internal/platform/validate"
	"github.com/tdnguyen/apologia/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListTopics returns topics, optionally filtered to one religion
// (religionID = 0 means all).
func (service *Service) ListTopics(context context.Context, religionID, limit, offset int) ([]*Topic, int, error) {
	return service.repo.ListTopics(context, religionID, limit, offset)
}

func (service *Service) GetTopic(context context.Context, id int) (*Topic, error) {
	return service.repo.GetTopic(context, id)
}

func (service *Service) GetTopicBySlug(context context.Context, s string) (*Topic, error) {
	return service.repo.GetTopicBySlug(context, s)
}

func (service *Service) CreateTopic(context context.Context, topic *Topic) error {
	if err := validateTopic(topic); err != nil {
		return err
	}

	// The parent must exist before the insert so the caller gets a 404
	// instead of an opaque constraint conflict.
	exists, err := service.repo.ReligionExists(context, topic.ReligionID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Religion")
	}

	topic.SyncStatus = status.Draft
	topic.Slug = slug.From(topic.Title)

	if err := service.repo.CreateTopic(context, topic); err != nil {
		return err
	}

	service.logger.Info("topic_created",
		slog.Int("topic_id", topic.ID),
		slog.Int("religion_id", topic.ReligionID),
		slog.String("title", topic.Title),
	)
	return nil
}

// UpdateTopic edits a topic's text fields. Topics never move between
// religions, so religion_id is not updatable.
func (service *Service) UpdateTopic(context context.Context, id int, topic *Topic) error {
	topic.ID = id

	validator := &validate.Validator{}
	validator.Required(FieldTitle, topic.Title).MaxLen(FieldTitle, topic.Title, 200)
	validator.MaxLen(FieldTitleEn, topic.TitleEn, 200)
	validator.MaxLen(FieldDescription, topic.Description, 2000)
	if err := validator.Err(); err != nil {
		return err
	}

	topic.Slug = slug.From(topic.Title)

	if err := service.repo.UpdateTopic(context, topic); err != nil {
		return err
	}

	service.logger.Info("topic_updated", slog.Int("topic_id", topic.ID))
	return nil
}

// DeleteTopic removes a topic. It refuses while a detail record is still
// attached; the detail must be removed first.
func (service *Service) DeleteTopic(context context.Context, id int) error {
	hasDetail, err := service.repo.HasDetail(context, id)
	if err != nil {
		return err
	}
	if hasDetail {
		return apperr.Conflict("Topic still has a detail record; delete it first")
	}

	if err := service.repo.DeleteTopic(context, id); err != nil {
		return err
	}

	service.logger.Warn("topic_deleted", slog.Int("topic_id", id))
	return nil
}

// PublishTopic promotes a draft to the synced state.
func (service *Service) PublishTopic(context context.Context, id int) (*Topic, error) {
	published, err := service.repo.PublishTopic(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Info("topic_published", slog.Int("topic_id", id))
	return published, nil
}

func validateTopic(topic *Topic) error {
	validator := &validate.Validator{}

	validator.Positive(FieldReligionID, topic.ReligionID)
	validator.Required(FieldTitle, topic.Title).MaxLen(FieldTitle, topic.Title, 200)
	validator.MaxLen(FieldTitleEn, topic.TitleEn, 200)
	validator.MaxLen(FieldDescription, topic.Description, 2000)

	return validator.Err()
}
