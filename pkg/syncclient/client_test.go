// Copyright (c) 2026 Apologia. All rights reserved.
// Author: tam.nguyendinh.vn@gmail.com

package syncclient_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/apologia/pkg/syncclient"
)

// memoryStore is the simplest possible conforming Store.
type memoryStore struct {
	religions map[int]syncclient.Religion
	topics    map[int]syncclient.Topic
	details   map[int]syncclient.TopicDetail
	watermark int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		religions: map[int]syncclient.Religion{},
		topics:    map[int]syncclient.Topic{},
		details:   map[int]syncclient.TopicDetail{},
	}
}

func (s *memoryStore) UpsertReligion(_ context.Context, r syncclient.Religion) error {
	s.religions[r.ID] = r
	return nil
}

func (s *memoryStore) UpsertTopic(_ context.Context, t syncclient.Topic) error {
	s.topics[t.ID] = t
	return nil
}

func (s *memoryStore) UpsertTopicDetail(_ context.Context, d syncclient.TopicDetail) error {
	s.details[d.ID] = d
	return nil
}

func (s *memoryStore) HasTopic(_ context.Context, topicID int) (bool, error) {
	_, ok := s.topics[topicID]
	return ok, nil
}

func (s *memoryStore) Watermark(_ context.Context) (int64, error) { return s.watermark, nil }

func (s *memoryStore) SetWatermark(_ context.Context, ts int64) error {
	s.watermark = ts
	return nil
}

func sampleFeed() *syncclient.Feed {
	return &syncclient.Feed{
		SyncType: "full",
		Religions: []syncclient.Religion{
			{ID: 1, Name: "Kitô giáo", UpdatedAt: 1000},
		},
		Topics: []syncclient.Topic{
			{ID: 10, ReligionID: 1, Title: "Ba Ngôi", UpdatedAt: 2000},
		},
		TopicDetails: []syncclient.TopicDetail{
			{ID: 100, TopicID: 10, Explanation: "…", Version: 1, UpdatedAt: 3000},
		},
		SyncTimestamp: 5000,
	}
}

/*
TestApply_MergesAndAdvancesWatermark covers the happy path: every record is
upserted and the watermark moves to the response's syncTimestamp.
*/
func TestApply_MergesAndAdvancesWatermark(t *testing.T) {
	store := newMemoryStore()

	result, err := syncclient.Apply(context.Background(), store, sampleFeed())
	require.NoError(t, err)

	assert.Equal(t, 1, result.ReligionsApplied)
	assert.Equal(t, 1, result.TopicsApplied)
	assert.Equal(t, 1, result.DetailsApplied)
	assert.Zero(t, result.OrphanedDetails)
	assert.EqualValues(t, 5000, store.watermark)
}

/*
TestApply_IsIdempotent replays the same delta twice, as happens after a crash
before the watermark was persisted, and expects identical final state.
*/
func TestApply_IsIdempotent(t *testing.T) {
	store := newMemoryStore()
	feed := sampleFeed()

	_, err := syncclient.Apply(context.Background(), store, feed)
	require.NoError(t, err)

	before := len(store.religions) + len(store.topics) + len(store.details)

	result, err := syncclient.Apply(context.Background(), store, feed)
	require.NoError(t, err)

	after := len(store.religions) + len(store.topics) + len(store.details)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, result.DetailsApplied)
	assert.EqualValues(t, 5000, store.watermark)
}

/*
TestApply_SkipsOrphanedDetail feeds a detail whose parent topic is neither in
the payload nor stored locally. It must be counted, not applied, and must not
fail the merge.
*/
func TestApply_SkipsOrphanedDetail(t *testing.T) {
	store := newMemoryStore()

	feed := &syncclient.Feed{
		SyncType: "incremental",
		TopicDetails: []syncclient.TopicDetail{
			{ID: 200, TopicID: 99, Version: 4, UpdatedAt: 4000},
		},
		SyncTimestamp: 6000,
	}

	result, err := syncclient.Apply(context.Background(), store, feed)
	require.NoError(t, err)

	assert.Equal(t, 1, result.OrphanedDetails)
	assert.Zero(t, result.DetailsApplied)
	assert.Empty(t, store.details)
	assert.EqualValues(t, 6000, store.watermark, "a skipped orphan still advances the watermark")
}

/*
TestApply_DetailForLocallyKnownTopic verifies the other half of the orphan
rule: if the topic already exists locally from an earlier sync, a detail
arriving alone is applied.
*/
func TestApply_DetailForLocallyKnownTopic(t *testing.T) {
	store := newMemoryStore()

	// First sync delivers the topic.
	_, err := syncclient.Apply(context.Background(), store, sampleFeed())
	require.NoError(t, err)

	// Later incremental delivers only an edited detail.
	delta := &syncclient.Feed{
		SyncType: "incremental",
		TopicDetails: []syncclient.TopicDetail{
			{ID: 100, TopicID: 10, Explanation: "revised", Version: 2, UpdatedAt: 7000},
		},
		SyncTimestamp: 8000,
	}

	result, err := syncclient.Apply(context.Background(), store, delta)
	require.NoError(t, err)

	assert.Equal(t, 1, result.DetailsApplied)
	assert.Zero(t, result.OrphanedDetails)
	assert.Equal(t, 2, store.details[100].Version)
	assert.Equal(t, "revised", store.details[100].Explanation)
}
