package schema

// ReligionTable represents the 'content.religion' table
type ReligionTable struct {
	Table       string
	ID          string
	Name        string
	NameEn      string
	Slug        string
	Description string
	Color       string
	Icon        string
	SyncStatus  string
	CreatedAt   string
	UpdatedAt   string
}

// Religion is the schema definition for content.religion
var Religion = ReligionTable{
	Table:       "content.religion",
	ID:          "id",
	Name:        "name",
	NameEn:      "name_en",
	Slug:        "slug",
	Description: "description",
	Color:       "color",
	Icon:        "icon",
	SyncStatus:  "sync_status",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t ReligionTable) Columns() []string {
	return []string{t.ID, t.Name, t.NameEn, t.Slug, t.Description, t.Color, t.Icon, t.SyncStatus, t.CreatedAt, t.UpdatedAt}
}
