package schema

// TopicTable represents the 'content.topic' table
type TopicTable struct {
	Table       string
	ID          string
	ReligionID  string
	Title       string
	TitleEn     string
	Slug        string
	Description string
	SyncStatus  string
	CreatedAt   string
	UpdatedAt   string
}

// Topic is the schema definition for content.topic
var Topic = TopicTable{
	Table:       "content.topic",
	ID:          "id",
	ReligionID:  "religion_id",
	Title:       "title",
	TitleEn:     "title_en",
	Slug:        "slug",
	Description: "description",
	SyncStatus:  "sync_status",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t TopicTable) Columns() []string {
	return []string{t.ID, t.ReligionID, t.Title, t.TitleEn, t.Slug, t.Description, t.SyncStatus, t.CreatedAt, t.UpdatedAt}
}
