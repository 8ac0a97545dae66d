package sync_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/apologia/internal/sync"
)

// fakeRepository serves canned rows and applies the same visibility rules the
// SQL store does: published rows only, each level filtered by its own
// updated_at.
type fakeRepository struct {
	religions []fakeRow[sync.ReligionRecord]
	topics    []fakeRow[sync.TopicRecord]
	details   []fakeRow[sync.TopicDetailRecord]

	queries int
}

type fakeRow[T any] struct {
	record    T
	published bool
	updatedAt time.Time
}

func visible[T any](rows []fakeRow[T], since time.Time) []T {
	out := []T{}
	for _, row := range rows {
		if !row.published {
			continue
		}
		if !since.IsZero() && !row.updatedAt.After(since) {
			continue
		}
		out = append(out, row.record)
	}
	return out
}

func (f *fakeRepository) PublishedReligions(_ context.Context, since time.Time) ([]sync.ReligionRecord, error) {
	f.queries++
	return visible(f.religions, since), nil
}

func (f *fakeRepository) PublishedTopics(_ context.Context, since time.Time) ([]sync.TopicRecord, error) {
	return visible(f.topics, since), nil
}

func (f *fakeRepository) PublishedDetails(_ context.Context, since time.Time) ([]sync.TopicDetailRecord, error) {
	return visible(f.details, since), nil
}

func (f *fakeRepository) CountPublished(_ context.Context) (sync.Statistics, error) {
	stats := sync.Statistics{
		Religions:    len(visible(f.religions, time.Time{})),
		Topics:       len(visible(f.topics, time.Time{})),
		TopicDetails: len(visible(f.details, time.Time{})),
	}
	stats.TotalItems = stats.Religions + stats.Topics + stats.TopicDetails
	return stats, nil
}

func (f *fakeRepository) MaxDetailVersion(_ context.Context) (int, error) {
	max := 1
	for _, row := range f.details {
		if row.record.Version > max {
			max = row.record.Version
		}
	}
	return max, nil
}

func (f *fakeRepository) RecentActivity(_ context.Context, limit int) ([]sync.ActivityRecord, error) {
	return []sync.ActivityRecord{}, nil
}

// fakeCache is an in-memory stand-in for the Redis snapshot cache.
type fakeCache struct {
	snapshot *sync.FeedData
}

func (c *fakeCache) Get(_ context.Context) (*sync.FeedData, error) { return c.snapshot, nil }
func (c *fakeCache) Set(_ context.Context, s *sync.FeedData) error { c.snapshot = s; return nil }
func (c *fakeCache) Invalidate(_ context.Context) error            { c.snapshot = nil; return nil }

func at(ms int64) time.Time { return time.UnixMilli(ms) }

func seedRepository() *fakeRepository {
	return &fakeRepository{
		religions: []fakeRow[sync.ReligionRecord]{
			{record: sync.ReligionRecord{ID: 1, Name: "Kitô giáo", UpdatedAt: 1000}, published: true, updatedAt: at(1000)},
			{record: sync.ReligionRecord{ID: 2, Name: "Phật giáo", UpdatedAt: 9000}, published: false, updatedAt: at(9000)},
		},
		topics: []fakeRow[sync.TopicRecord]{
			{record: sync.TopicRecord{ID: 10, ReligionID: 1, Title: "Ba Ngôi", UpdatedAt: 2000}, published: true, updatedAt: at(2000)},
		},
		details: []fakeRow[sync.TopicDetailRecord]{
			{record: sync.TopicDetailRecord{ID: 100, TopicID: 10, Version: 3, UpdatedAt: 5000}, published: true, updatedAt: at(5000)},
			{record: sync.TopicDetailRecord{ID: 101, TopicID: 10, Version: 7, UpdatedAt: 9000}, published: false, updatedAt: at(9000)},
		},
	}
}

func newService(repo *fakeRepository, cache sync.SnapshotCache) *sync.Service {
	return sync.NewService(repo, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestDownload_FullSnapshotIsIdempotent verifies that two first-run calls with
no writes in between return identical record sets.
*/
func TestDownload_FullSnapshotIsIdempotent(t *testing.T) {
	service := newService(seedRepository(), &fakeCache{})

	first, err := service.Download(context.Background(), 0)
	require.NoError(t, err)
	second, err := service.Download(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, sync.SyncTypeFull, first.SyncType)
	assert.Equal(t, first.Religions, second.Religions)
	assert.Equal(t, first.Topics, second.Topics)
	assert.Equal(t, first.TopicDetails, second.TopicDetails)
}

/*
TestDownload_WatermarkCatchUp verifies that an edit after the client's
watermark is delivered, and that advancing the watermark past the edit
excludes it.
*/
func TestDownload_WatermarkCatchUp(t *testing.T) {
	service := newService(seedRepository(), &fakeCache{})

	// Detail 100 was edited at t=5000.
	feed, err := service.Download(context.Background(), 4000)
	require.NoError(t, err)
	assert.Equal(t, sync.SyncTypeIncremental, feed.SyncType)
	require.Len(t, feed.TopicDetails, 1)
	assert.Equal(t, 100, feed.TopicDetails[0].ID)

	feed, err = service.Download(context.Background(), 5001)
	require.NoError(t, err)
	assert.Empty(t, feed.TopicDetails)
}

/*
TestDownload_DraftsNeverAppear verifies the publish gate: draft rows stay
invisible in both full and incremental responses, however fresh they are.
*/
func TestDownload_DraftsNeverAppear(t *testing.T) {
	service := newService(seedRepository(), &fakeCache{})

	full, err := service.Download(context.Background(), 0)
	require.NoError(t, err)
	incremental, err := service.Download(context.Background(), 1)
	require.NoError(t, err)

	for _, feed := range []*sync.FeedData{full, incremental} {
		for _, religion := range feed.Religions {
			assert.NotEqual(t, 2, religion.ID)
		}
		for _, detail := range feed.TopicDetails {
			assert.NotEqual(t, 101, detail.ID)
		}
	}
}

/*
TestDownload_DetailWithoutParentTopic verifies per-level independence: a
detail edited after the watermark is returned even when its parent topic was
not, so clients must merge the two levels separately.
*/
func TestDownload_DetailWithoutParentTopic(t *testing.T) {
	service := newService(seedRepository(), &fakeCache{})

	// Topic 10 last changed at t=2000, its detail at t=5000.
	feed, err := service.Download(context.Background(), 3000)
	require.NoError(t, err)

	assert.Empty(t, feed.Topics)
	require.Len(t, feed.TopicDetails, 1)
	assert.Equal(t, 10, feed.TopicDetails[0].TopicID)
}

/*
TestDownload_FullSnapshotUsesCache verifies that repeated first-run calls are
served from the snapshot cache instead of re-querying the store.
*/
func TestDownload_FullSnapshotUsesCache(t *testing.T) {
	repo := seedRepository()
	service := newService(repo, &fakeCache{})

	_, err := service.Download(context.Background(), 0)
	require.NoError(t, err)
	_, err = service.Download(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.queries)
}

/*
TestTrigger_InvalidatesAndReprimesCache verifies that a trigger rebuilds the
snapshot from the store and reports the payload size.
*/
func TestTrigger_InvalidatesAndReprimesCache(t *testing.T) {
	repo := seedRepository()
	cache := &fakeCache{}
	service := newService(repo, cache)

	// Prime the cache, then trigger.
	_, err := service.Download(context.Background(), 0)
	require.NoError(t, err)

	confirmation, err := service.Trigger(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.queries, "trigger must bypass the stale snapshot")
	assert.NotNil(t, cache.snapshot, "trigger must re-prime the cache")
	assert.Equal(t, "ready", confirmation.Status)
	assert.Equal(t, 7, confirmation.Version)
	assert.Equal(t, 0, confirmation.MobileAppsNotified)
	assert.Positive(t, confirmation.DataSize)
}

/*
TestStatus_ReportsCountsAndMaxVersion verifies the operator status payload.
*/
func TestStatus_ReportsCountsAndMaxVersion(t *testing.T) {
	service := newService(seedRepository(), &fakeCache{})

	report, err := service.Status(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Statistics.Religions)
	assert.Equal(t, 1, report.Statistics.Topics)
	assert.Equal(t, 1, report.Statistics.TopicDetails)
	assert.Equal(t, 3, report.Statistics.TotalItems)
	assert.Equal(t, 7, report.Version)
	assert.Equal(t, "healthy", report.SyncHealth)
}
