package detail

import "context"

// Repository defines the data access contract.
type Repository interface {
	GetDetail(context context.Context, id int) (*Detail, error)
	GetDetailByTopic(context context.Context, topicID int) (*Detail, error)

	// CreateDetail inserts a new detail with version 1.
	CreateDetail(context context.Context, detail *Detail) error

	// UpdateDetail replaces the content fields and increments version by
	// exactly 1 in the same statement, so concurrent editors cannot produce
	// duplicate version numbers.
	UpdateDetail(context context.Context, detail *Detail) error

	DeleteDetail(context context.Context, id int) error

	// PublishDetail flips the sync status to synced and refreshes updated_at.
	PublishDetail(context context.Context, id int) (*Detail, error)

	// TopicExists reports whether the referenced topic is present.
	TopicExists(context context.Context, topicID int) (bool, error)
}
