// Copyright (c) 2026 Apologia. All rights reserved.
// Author: tam.nguyendinh.vn@gmail.com

/*
Package syncclient is the reference implementation of the mobile merge
contract.

A client holds a single scalar watermark and merges each feed response with
insert-or-replace upserts keyed by id. The server is the sole writer, so
there is no conflict resolution: whatever record the server sent wins.
Delivery is at-least-once; replaying the same delta after a crash must leave
the store in the same state.

Ports of this logic to device storage engines should preserve three rules:

  - Merge parents before children (religions, topics, then details).
  - A detail whose topic is neither in the payload nor already stored is
    skipped and counted, not an error.
  - The watermark advances only after the whole payload merged successfully.
*/
package syncclient

import "context"

// Feed mirrors the download payload: camelCase keys, ms-epoch timestamps,
// flat denormalized arrays.
type Feed struct {
	SyncType      string        `json:"syncType"`
	Religions     []Religion    `json:"religions"`
	Topics        []Topic       `json:"topics"`
	TopicDetails  []TopicDetail `json:"topicDetails"`
	LastUpdated   int64         `json:"lastUpdated"`
	SyncTimestamp int64         `json:"syncTimestamp"`
}

type Religion struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	NameEn      string `json:"nameEn"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

type Topic struct {
	ID          int    `json:"id"`
	ReligionID  int    `json:"religionId"`
	Title       string `json:"title"`
	TitleEn     string `json:"titleEn"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

type TopicDetail struct {
	ID          int         `json:"id"`
	TopicID     int         `json:"topicId"`
	Explanation string      `json:"explanation"`
	BibleVerses []string    `json:"bibleVerses"`
	KeyPoints   []string    `json:"keyPoints"`
	References  []Reference `json:"references"`
	Version     int         `json:"version"`
	CreatedAt   int64       `json:"createdAt"`
	UpdatedAt   int64       `json:"updatedAt"`
}

type Reference struct {
	Verse       string `json:"verse"`
	Text        string `json:"text"`
	Explanation string `json:"explanation"`
}

// Store is the device-local persistence the merge writes into. Upserts are
// insert-or-replace keyed by id.
type Store interface {
	UpsertReligion(context context.Context, religion Religion) error
	UpsertTopic(context context.Context, topic Topic) error
	UpsertTopicDetail(context context.Context, detail TopicDetail) error

	// HasTopic reports whether a topic is already stored locally.
	HasTopic(context context.Context, topicID int) (bool, error)

	// Watermark returns the last successfully merged syncTimestamp, 0 on a
	// fresh install.
	Watermark(context context.Context) (int64, error)
	SetWatermark(context context.Context, timestamp int64) error
}

// Result summarizes one merged payload.
type Result struct {
	ReligionsApplied int
	TopicsApplied    int
	DetailsApplied   int

	// OrphanedDetails counts details skipped because their topic is unknown
	// both in the payload and locally. Nonzero values indicate a server-side
	// consistency gap worth logging; the next full sync repairs it.
	OrphanedDetails int
}

// Apply merges a feed response into the store and advances the watermark.
// It is idempotent: applying the same feed twice yields the same state.
func Apply(context context.Context, store Store, feed *Feed) (Result, error) {
	var result Result

	for _, religion := range feed.Religions {
		if err := store.UpsertReligion(context, religion); err != nil {
			return result, err
		}
		result.ReligionsApplied++
	}

	for _, topic := range feed.Topics {
		if err := store.UpsertTopic(context, topic); err != nil {
			return result, err
		}
		result.TopicsApplied++
	}

	for _, detail := range feed.TopicDetails {
		// Levels are filtered independently on the server, so a detail can
		// arrive without its parent topic in the same payload. It is only
		// applied if the topic is already known locally.
		known, err := store.HasTopic(context, detail.TopicID)
		if err != nil {
			return result, err
		}
		if !known {
			result.OrphanedDetails++
			continue
		}

		if err := store.UpsertTopicDetail(context, detail); err != nil {
			return result, err
		}
		result.DetailsApplied++
	}

	// Only now is it safe to move the watermark: a crash above replays the
	// same delta, which the upserts absorb.
	if err := store.SetWatermark(context, feed.SyncTimestamp); err != nil {
		return result, err
	}
	return result, nil
}
