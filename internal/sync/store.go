package sync

import (
	"context"
	"time"
)

// Repository is the read-only projection the feed is built from. Every query
// sees published rows only; drafts never leave the CMS.
type Repository interface {
	// PublishedReligions returns synced religions updated after since.
	// A zero since returns the whole published set.
	PublishedReligions(context context.Context, since time.Time) ([]ReligionRecord, error)

	// PublishedTopics returns synced topics updated after since, filtered
	// independently of their parent religions.
	PublishedTopics(context context.Context, since time.Time) ([]TopicRecord, error)

	// PublishedDetails returns synced details updated after since, filtered
	// independently of their parent topics.
	PublishedDetails(context context.Context, since time.Time) ([]TopicDetailRecord, error)

	// CountPublished tallies the published rows per level.
	CountPublished(context context.Context) (Statistics, error)

	// MaxDetailVersion returns the highest detail edit counter, or 1 when no
	// details exist yet.
	MaxDetailVersion(context context.Context) (int, error)

	// RecentActivity returns the most recently updated details joined with
	// their topic and religion names, newest first.
	RecentActivity(context context.Context, limit int) ([]ActivityRecord, error)
}
