package religion

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListReligions(context context.Context, limit, offset int) ([]*Religion, int, error)
	GetReligion(context context.Context, id int) (*Religion, error)
	GetReligionBySlug(context context.Context, slug string) (*Religion, error)
	CreateReligion(context context.Context, religion *Religion) error
	UpdateReligion(context context.Context, religion *Religion) error
	DeleteReligion(context context.Context, id int) error

	// PublishReligion flips the sync status to synced and refreshes
	// updated_at so the row enters the next incremental delta.
	PublishReligion(context context.Context, id int) (*Religion, error)

	// CountTopics returns how many topics reference the religion.
	// Deletion is refused while the count is non-zero.
	CountTopics(context context.Context, religionID int) (int, error)
}
