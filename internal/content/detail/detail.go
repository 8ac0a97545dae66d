package detail

import (
	"time"

	"github.com/tdnguyen/apologia/internal/content/status"
)

// Detail is the study material attached to a topic (1:0..1). Its version
// counter starts at 1 and is incremented by exactly 1 on every successful
// content update; it never decreases. The maximum version across all details
// is the catalogue's global content version.
type Detail struct {
	ID          int           `json:"id"`
	TopicID     int           `json:"topic_id"`
	Explanation string        `json:"explanation"`
	BibleVerses []string      `json:"bible_verses"`
	KeyPoints   []string      `json:"key_points"`
	References  []Reference   `json:"references"`
	Version     int           `json:"version"`
	SyncStatus  status.Status `json:"sync_status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Reference is a single cited passage with commentary.
type Reference struct {
	Verse       string `json:"verse"`
	Text        string `json:"text"`
	Explanation string `json:"explanation"`
}

// Global field names for validation
const (
	FieldTopicID     = "topic_id"
	FieldExplanation = "explanation"
	FieldBibleVerses = "bible_verses"
	FieldKeyPoints   = "key_points"
	FieldReferences  = "references"
)
