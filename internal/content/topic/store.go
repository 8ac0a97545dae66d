package topic

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListTopics(context context.Context, religionID int, limit, offset int) ([]*Topic, int, error)
	GetTopic(context context.Context, id int) (*Topic, error)
	GetTopicBySlug(context context.Context, slug string) (*Topic, error)
	CreateTopic(context context.Context, topic *Topic) error
	UpdateTopic(context context.Context, topic *Topic) error
	DeleteTopic(context context.Context, id int) error

	// PublishTopic flips the sync status to synced and refreshes updated_at.
	PublishTopic(context context.Context, id int) (*Topic, error)

	// ReligionExists reports whether the referenced religion is present.
	ReligionExists(context context.Context, religionID int) (bool, error)

	// HasDetail reports whether a detail record is attached to the topic.
	// Deletion is refused while one exists.
	HasDetail(context context.Context, topicID int) (bool, error)
}
