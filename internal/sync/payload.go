package sync

import "github.com/tdnguyen/apologia/internal/content/detail"

// The mobile feed is a frozen wire contract: camelCase keys and
// millisecond-epoch timestamps, unlike the snake_case admin API. Records are
// flat and denormalized so the client can upsert each level independently.

const (
	SyncTypeFull        = "full"
	SyncTypeIncremental = "incremental"
)

// ReligionRecord is the feed projection of a religion row.
type ReligionRecord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	NameEn      string `json:"nameEn"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// TopicRecord is the feed projection of a topic row.
type TopicRecord struct {
	ID          int    `json:"id"`
	ReligionID  int    `json:"religionId"`
	Title       string `json:"title"`
	TitleEn     string `json:"titleEn"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// TopicDetailRecord is the feed projection of a topic detail row. The version
// field is the per-record edit counter, not the sync watermark.
type TopicDetailRecord struct {
	ID          int                `json:"id"`
	TopicID     int                `json:"topicId"`
	Explanation string             `json:"explanation"`
	BibleVerses []string           `json:"bibleVerses"`
	KeyPoints   []string           `json:"keyPoints"`
	References  []detail.Reference `json:"references"`
	Version     int                `json:"version"`
	CreatedAt   int64              `json:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt"`
}

// FeedData is the payload of a download response. SyncTimestamp is the new
// watermark the client must persist after a successful merge; there is no
// separate version alias for it.
type FeedData struct {
	SyncType      string              `json:"syncType"`
	Religions     []ReligionRecord    `json:"religions"`
	Topics        []TopicRecord       `json:"topics"`
	TopicDetails  []TopicDetailRecord `json:"topicDetails"`
	LastUpdated   int64               `json:"lastUpdated"`
	SyncTimestamp int64               `json:"syncTimestamp"`
}

// Statistics summarizes how much published content the feed serves.
type Statistics struct {
	Religions    int `json:"religions"`
	Topics       int `json:"topics"`
	TopicDetails int `json:"topicDetails"`
	TotalItems   int `json:"totalItems"`
}

// ActivityRecord is one row of the operator-facing recent activity report.
type ActivityRecord struct {
	TopicTitle   string `json:"topicTitle"`
	ReligionName string `json:"religionName"`
	Version      int    `json:"version"`
	UpdatedAt    int64  `json:"updatedAt"`
}

// StatusData is the payload of the operator status report. Version here is
// the maximum detail edit counter across the catalogue.
type StatusData struct {
	Version        int              `json:"version"`
	LastUpdated    int64            `json:"lastUpdated"`
	Statistics     Statistics       `json:"statistics"`
	RecentActivity []ActivityRecord `json:"recentActivity"`
	SyncHealth     string           `json:"syncHealth"`
}

// TriggerData confirms to an operator that the feed is ready. There is no
// push channel to clients, so MobileAppsNotified is always zero.
type TriggerData struct {
	Timestamp          int64      `json:"timestamp"`
	Version            int        `json:"version"`
	Statistics         Statistics `json:"statistics"`
	Status             string     `json:"status"`
	Message            string     `json:"message"`
	MobileAppsNotified int        `json:"mobileAppsNotified"`
	DataSize           int        `json:"dataSize"`
}

// envelope is the legacy success wrapper every sync endpoint uses.
type envelope struct {
	Success       bool   `json:"success"`
	Data          any    `json:"data"`
	SyncTimestamp int64  `json:"syncTimestamp,omitempty"`
	Message       string `json:"message,omitempty"`
}

// errorEnvelope is the legacy failure wrapper. Timestamp is ms-epoch.
type errorEnvelope struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}
