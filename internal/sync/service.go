package sync

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

type Service struct {
	repo   Repository
	cache  SnapshotCache
	logger *slog.Logger
}

func NewService(repo Repository, cache SnapshotCache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Download builds the feed payload for a client watermark. lastSync == 0
// means a first run (or forced resync) and returns the full published
// catalogue; anything later returns only rows updated after the watermark,
// each level filtered independently.
//
// The call is all-or-nothing: if any level fails the client gets an error and
// no partial data, and simply retries with the same watermark.
func (service *Service) Download(context context.Context, lastSync int64) (*FeedData, error) {
	if lastSync == 0 {
		return service.fullSnapshot(context)
	}
	return service.buildFeed(context, SyncTypeIncremental, time.UnixMilli(lastSync))
}

func (service *Service) fullSnapshot(context context.Context) (*FeedData, error) {
	// Cache failures degrade to a database read, never to an error.
	cached, err := service.cache.Get(context)
	if err != nil {
		service.logger.Warn("sync_snapshot_cache_read_failed", slog.String("error", err.Error()))
	}
	if cached != nil {
		return cached, nil
	}

	feed, err := service.buildFeed(context, SyncTypeFull, time.Time{})
	if err != nil {
		return nil, err
	}

	if err := service.cache.Set(context, feed); err != nil {
		service.logger.Warn("sync_snapshot_cache_write_failed", slog.String("error", err.Error()))
	}
	return feed, nil
}

func (service *Service) buildFeed(context context.Context, syncType string, since time.Time) (*FeedData, error) {
	religions, err := service.repo.PublishedReligions(context, since)
	if err != nil {
		return nil, err
	}
	topics, err := service.repo.PublishedTopics(context, since)
	if err != nil {
		return nil, err
	}
	details, err := service.repo.PublishedDetails(context, since)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	feed := &FeedData{
		SyncType:      syncType,
		Religions:     religions,
		Topics:        topics,
		TopicDetails:  details,
		LastUpdated:   now,
		SyncTimestamp: now,
	}

	service.logger.Info("sync_feed_built",
		slog.String("sync_type", syncType),
		slog.Int("religions", len(religions)),
		slog.Int("topics", len(topics)),
		slog.Int("topic_details", len(details)),
	)
	return feed, nil
}

// Status reports what the feed would serve right now: per-level counts, the
// maximum detail edit counter, and the most recent edits.
func (service *Service) Status(context context.Context, activityLimit int) (*StatusData, error) {
	stats, err := service.repo.CountPublished(context)
	if err != nil {
		return nil, err
	}
	version, err := service.repo.MaxDetailVersion(context)
	if err != nil {
		return nil, err
	}
	activity, err := service.repo.RecentActivity(context, activityLimit)
	if err != nil {
		return nil, err
	}

	return &StatusData{
		Version:        version,
		LastUpdated:    time.Now().UnixMilli(),
		Statistics:     stats,
		RecentActivity: activity,
		SyncHealth:     "healthy",
	}, nil
}

// Trigger invalidates the snapshot cache, rebuilds the full snapshot, and
// returns an operator-facing confirmation. There is no push channel to
// clients; they pick up the fresh data on their next pull.
func (service *Service) Trigger(context context.Context) (*TriggerData, error) {
	if err := service.cache.Invalidate(context); err != nil {
		service.logger.Warn("sync_snapshot_cache_invalidate_failed", slog.String("error", err.Error()))
	}

	stats, err := service.repo.CountPublished(context)
	if err != nil {
		return nil, err
	}
	version, err := service.repo.MaxDetailVersion(context)
	if err != nil {
		return nil, err
	}

	// Rebuilding here re-primes the cache and measures the payload clients
	// will actually download.
	feed, err := service.fullSnapshot(context)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(feed)
	if err != nil {
		return nil, err
	}

	service.logger.Info("sync_triggered",
		slog.Int("version", version),
		slog.Int("total_items", stats.TotalItems),
		slog.Int("data_size", len(raw)),
	)

	return &TriggerData{
		Timestamp:          time.Now().UnixMilli(),
		Version:            version,
		Statistics:         stats,
		Status:             "ready",
		Message:            "Content is published and ready for client pulls",
		MobileAppsNotified: 0,
		DataSize:           len(raw),
	}, nil
}
