package religion

import (
	"time"

	"github.com/tdnguyen/apologia/internal/content/status"
)

// Religion is the top-level grouping of the content catalogue. It owns zero
// or more topics; it cannot be deleted while any topic references it.
type Religion struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	NameEn      string        `json:"name_en"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Color       string        `json:"color"`
	Icon        string        `json:"icon"`
	SyncStatus  status.Status `json:"sync_status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldNameEn      = "name_en"
	FieldDescription = "description"
	FieldColor       = "color"
	FieldIcon        = "icon"
)
