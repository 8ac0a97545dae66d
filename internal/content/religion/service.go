package religion

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

func (service *Service) ListReligions(context context.Context, limit, offset int) ([]*Religion, int, error) {
	return service.repo.ListReligions(context, limit, offset)
}

func (service *Service) GetReligion(context context.Context, id int) (*Religion, error) {
	return service.repo.GetReligion(context, id)
}

func (service *Service) GetReligionBySlug(context context.Context, s string) (*Religion, error) {
	return service.repo.GetReligionBySlug(context, s)
}

func (service *Service) CreateReligion(context context.Context, religion *Religion) error {
	if err := validateReligion(religion); err != nil {
		return err
	}

	// New rows always start as drafts; publishing is a separate operator action.
	religion.SyncStatus = status.Draft
	religion.Slug = slug.From(religion.Name)

	if err := service.repo.CreateReligion(context, religion); err != nil {
		return err
	}

	service.logger.Info("religion_created",
		slog.Int("religion_id", religion.ID),
		slog.String("name", religion.Name),
	)
	return nil
}

func (service *Service) UpdateReligion(context context.Context, id int, religion *Religion) error {
	religion.ID = id
	if err := validateReligion(religion); err != nil {
		return err
	}

	religion.Slug = slug.From(religion.Name)

	if err := service.repo.UpdateReligion(context, religion); err != nil {
		return err
	}

	service.logger.Info("religion_updated", slog.Int("religion_id", religion.ID))
	return nil
}

// DeleteReligion removes a religion. It refuses while any topic still
// references the religion; topics must be removed first.
func (service *Service) DeleteReligion(context context.Context, id int) error {
	topicCount, err := service.repo.CountTopics(context, id)
	if err != nil {
		return err
	}
	if topicCount > 0 {
		return apperr.Conflict("Religion still has topics; delete them first")
	}

	if err := service.repo.DeleteReligion(context, id); err != nil {
		return err
	}

	service.logger.Warn("religion_deleted", slog.Int("religion_id", id))
	return nil
}

// PublishReligion promotes a draft to the synced state, making it visible
// to mobile clients on their next sync call.
func (service *Service) PublishReligion(context context.Context, id int) (*Religion, error) {
	published, err := service.repo.PublishReligion(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Info("religion_published", slog.Int("religion_id", id))
	return published, nil
}

func validateReligion(religion *Religion) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, religion.Name).MaxLen(FieldName, religion.Name, 120)
	validator.MaxLen(FieldNameEn, religion.NameEn, 120)
	validator.MaxLen(FieldDescription, religion.Description, 2000)
	validator.MaxLen(FieldIcon, religion.Icon, 120)

	if religion.Color != "" {
		validator.HexColor(FieldColor, religion.Color)
	}

	return validator.Err()
}
