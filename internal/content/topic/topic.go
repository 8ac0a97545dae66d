package topic

import (
	"time"

	"github.com/tdnguyen/apologia/internal/content/status"
)

// Topic is a single teaching subject inside a religion. It owns at most one
// detail record and cannot be deleted while that detail exists.
type Topic struct {
	ID          int           `json:"id"`
	ReligionID  int           `json:"religion_id"`
	Title       string        `json:"title"`
	TitleEn     string        `json:"title_en"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	SyncStatus  status.Status `json:"sync_status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Global field names for validation
const (
	FieldReligionID  = "religion_id"
	FieldTitle       = "title"
	FieldTitleEn     = "title_en"
	FieldDescription = "description"
)
