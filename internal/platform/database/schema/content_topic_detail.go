package schema

// TopicDetailTable represents the 'content.topic_detail' table
type TopicDetailTable struct {
	Table       string
	ID          string
	TopicID     string
	Explanation string
	BibleVerses string
	KeyPoints   string
	References  string
	Version     string
	SyncStatus  string
	CreatedAt   string
	UpdatedAt   string
}

// TopicDetail is the schema definition for content.topic_detail
var TopicDetail = TopicDetailTable{
	Table:       "content.topic_detail",
	ID:          "id",
	TopicID:     "topic_id",
	Explanation: "explanation",
	BibleVerses: "bible_verses",
	KeyPoints:   "key_points",
	References:  "refs",
	Version:     "version",
	SyncStatus:  "sync_status",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t TopicDetailTable) Columns() []string {
	return []string{t.ID, t.TopicID, t.Explanation, t.BibleVerses, t.KeyPoints, t.References, t.Version, t.SyncStatus, t.CreatedAt, t.UpdatedAt}
}
