package detail

import (
	"context"
	"log/slog"

	"github.com/tdnguyen/apologia/internal/content/status"
	"github.com/tdnguyen/apologia/internal/platform/apperr"
	"github.com/tdnguyen/apologia/internal/platform/validate"
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

func (service *Service) GetDetail(context context.Context, id int) (*Detail, error) {
	return service.repo.GetDetail(context, id)
}

func (service *Service) GetDetailByTopic(context context.Context, topicID int) (*Detail, error) {
	return service.repo.GetDetailByTopic(context, topicID)
}

func (service *Service) CreateDetail(context context.Context, detail *Detail) error {
	validator := &validate.Validator{}
	validator.Positive(FieldTopicID, detail.TopicID)
	validateContent(validator, detail)
	if err := validator.Err(); err != nil {
		return err
	}

	exists, err := service.repo.TopicExists(context, detail.TopicID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Topic")
	}

	// One detail per topic; a second insert is a conflict, not an edit.
	if _, err := service.repo.GetDetailByTopic(context, detail.TopicID); err == nil {
		return apperr.Conflict("Topic already has a detail record")
	}

	detail.Version = 1
	detail.SyncStatus = status.Draft

	if err := service.repo.CreateDetail(context, detail); err != nil {
		return err
	}

	service.logger.Info("detail_created",
		slog.Int("detail_id", detail.ID),
		slog.Int("topic_id", detail.TopicID),
	)
	return nil
}

// UpdateDetail replaces the content of an existing detail. The repository
// increments the version counter atomically with the content write.
func (service *Service) UpdateDetail(context context.Context, id int, detail *Detail) error {
	detail.ID = id

	validator := &validate.Validator{}
	validateContent(validator, detail)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateDetail(context, detail); err != nil {
		return err
	}

	service.logger.Info("detail_updated",
		slog.Int("detail_id", detail.ID),
		slog.Int("version", detail.Version),
	)
	return nil
}

func (service *Service) DeleteDetail(context context.Context, id int) error {
	if err := service.repo.DeleteDetail(context, id); err != nil {
		return err
	}

	service.logger.Warn("detail_deleted", slog.Int("detail_id", id))
	return nil
}

// PublishDetail promotes a draft to the synced state.
func (service *Service) PublishDetail(context context.Context, id int) (*Detail, error) {
	published, err := service.repo.PublishDetail(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Info("detail_published",
		slog.Int("detail_id", id),
		slog.Int("version", published.Version),
	)
	return published, nil
}

func validateContent(validator *validate.Validator, detail *Detail) {
	validator.Required(FieldExplanation, detail.Explanation).MaxLen(FieldExplanation, detail.Explanation, 20000)

	for _, verse := range detail.BibleVerses {
		validator.Required(FieldBibleVerses, verse).MaxLen(FieldBibleVerses, verse, 200)
	}
	for _, point := range detail.KeyPoints {
		validator.Required(FieldKeyPoints, point).MaxLen(FieldKeyPoints, point, 500)
	}
	for _, reference := range detail.References {
		validator.Required(FieldReferences, reference.Verse).MaxLen(FieldReferences, reference.Verse, 200)
		validator.MaxLen(FieldReferences, reference.Text, 2000)
		validator.MaxLen(FieldReferences, reference.Explanation, 2000)
	}
}
