package export

import (
	"context"
	"time"

	"github.com/tdnguyen/apologia/internal/content/status"
)

// The export reads the whole catalogue, drafts included: it is an operator
// backup/review tool, not a client feed, so the publish gate does not apply.

type ReligionRow struct {
	ID         int
	Name       string
	NameEn     string
	Slug       string
	Color      string
	SyncStatus status.Status
	UpdatedAt  time.Time
}

type TopicRow struct {
	ID           int
	ReligionName string
	Title        string
	TitleEn      string
	Slug         string
	SyncStatus   status.Status
	UpdatedAt    time.Time
}

type DetailRow struct {
	ID          int
	TopicTitle  string
	Explanation string
	BibleVerses []string
	KeyPoints   []string
	Version     int
	SyncStatus  status.Status
	UpdatedAt   time.Time
}

// Repository defines the read-only catalogue dump the workbook is built from.
type Repository interface {
	AllReligions(context context.Context) ([]ReligionRow, error)
	AllTopics(context context.Context) ([]TopicRow, error)
	AllDetails(context context.Context) ([]DetailRow, error)
}
