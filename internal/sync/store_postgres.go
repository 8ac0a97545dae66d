package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tdnguyen/apologia/internal/content/status"
	"github.com/tdnguyen/apologia/internal/platform/database/schema"
	"github.com/tdnguyen/apologia/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// sinceClause returns the per-level delta filter. Each level is filtered by
// its own updated_at, independent of its parent.
func sinceClause(updatedAt string, since time.Time) string {
	if since.IsZero() {
		return ""
	}
	return fmt.Sprintf(" AND %s > $2", updatedAt)
}

func sinceArgs(since time.Time) []any {
	args := []any{status.Synced}
	if !since.IsZero() {
		args = append(args, since)
	}
	return args
}

func (repository *PostgresRepository) PublishedReligions(context context.Context, since time.Time) ([]ReligionRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1%s
		ORDER BY %s
	`,
		schema.Religion.ID, schema.Religion.Name, schema.Religion.NameEn, schema.Religion.Description,
		schema.Religion.Color, schema.Religion.Icon, schema.Religion.CreatedAt, schema.Religion.UpdatedAt,
		schema.Religion.Table,
		schema.Religion.SyncStatus, sinceClause(schema.Religion.UpdatedAt, since),
		schema.Religion.ID,
	)

	rows, err := repository.db.Query(context, query, sinceArgs(since)...)
	if err != nil {
		return nil, dberr.Wrap(err, "sync_religions")
	}
	defer rows.Close()

	records := []ReligionRecord{}
	for rows.Next() {
		var r ReligionRecord
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&r.ID, &r.Name, &r.NameEn, &r.Description, &r.Color, &r.Icon, &createdAt, &updatedAt); err != nil {
			return nil, dberr.Wrap(err, "sync_religions_scan")
		}
		r.CreatedAt = createdAt.UnixMilli()
		r.UpdatedAt = updatedAt.UnixMilli()
		records = append(records, r)
	}
	return records, dberr.Wrap(rows.Err(), "sync_religions_rows")
}

func (repository *PostgresRepository) PublishedTopics(context context.Context, since time.Time) ([]TopicRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1%s
		ORDER BY %s
	`,
		schema.Topic.ID, schema.Topic.ReligionID, schema.Topic.Title, schema.Topic.TitleEn,
		schema.Topic.Description, schema.Topic.CreatedAt, schema.Topic.UpdatedAt,
		schema.Topic.Table,
		schema.Topic.SyncStatus, sinceClause(schema.Topic.UpdatedAt, since),
		schema.Topic.ID,
	)

	rows, err := repository.db.Query(context, query, sinceArgs(since)...)
	if err != nil {
		return nil, dberr.Wrap(err, "sync_topics")
	}
	defer rows.Close()

	records := []TopicRecord{}
	for rows.Next() {
		var t TopicRecord
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&t.ID, &t.ReligionID, &t.Title, &t.TitleEn, &t.Description, &createdAt, &updatedAt); err != nil {
			return nil, dberr.Wrap(err, "sync_topics_scan")
		}
		t.CreatedAt = createdAt.UnixMilli()
		t.UpdatedAt = updatedAt.UnixMilli()
		records = append(records, t)
	}
	return records, dberr.Wrap(rows.Err(), "sync_topics_rows")
}

func (repository *PostgresRepository) PublishedDetails(context context.Context, since time.Time) ([]TopicDetailRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1%s
		ORDER BY %s
	`,
		schema.TopicDetail.ID, schema.TopicDetail.TopicID, schema.TopicDetail.Explanation,
		schema.TopicDetail.BibleVerses, schema.TopicDetail.KeyPoints, schema.TopicDetail.References,
		schema.TopicDetail.Version, schema.TopicDetail.CreatedAt, schema.TopicDetail.UpdatedAt,
		schema.TopicDetail.Table,
		schema.TopicDetail.SyncStatus, sinceClause(schema.TopicDetail.UpdatedAt, since),
		schema.TopicDetail.ID,
	)

	rows, err := repository.db.Query(context, query, sinceArgs(since)...)
	if err != nil {
		return nil, dberr.Wrap(err, "sync_details")
	}
	defer rows.Close()

	records := []TopicDetailRecord{}
	for rows.Next() {
		var d TopicDetailRecord
		var rawReferences []byte
		var createdAt, updatedAt time.Time
		err := rows.Scan(&d.ID, &d.TopicID, &d.Explanation, &d.BibleVerses, &d.KeyPoints,
			&rawReferences, &d.Version, &createdAt, &updatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "sync_details_scan")
		}
		if len(rawReferences) > 0 {
			if err := json.Unmarshal(rawReferences, &d.References); err != nil {
				return nil, fmt.Errorf("sync: corrupt references payload for detail %d: %w", d.ID, err)
			}
		}
		d.CreatedAt = createdAt.UnixMilli()
		d.UpdatedAt = updatedAt.UnixMilli()
		records = append(records, d)
	}
	return records, dberr.Wrap(rows.Err(), "sync_details_rows")
}

func (repository *PostgresRepository) CountPublished(context context.Context) (Statistics, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s WHERE %s = $1),
			(SELECT COUNT(*) FROM %s WHERE %s = $1),
			(SELECT COUNT(*) FROM %s WHERE %s = $1)
	`,
		schema.Religion.Table, schema.Religion.SyncStatus,
		schema.Topic.Table, schema.Topic.SyncStatus,
		schema.TopicDetail.Table, schema.TopicDetail.SyncStatus,
	)

	var stats Statistics
	err := repository.db.QueryRow(context, query, status.Synced).
		Scan(&stats.Religions, &stats.Topics, &stats.TopicDetails)
	if err != nil {
		return Statistics{}, dberr.Wrap(err, "sync_counts")
	}

	stats.TotalItems = stats.Religions + stats.Topics + stats.TopicDetails
	return stats, nil
}

func (repository *PostgresRepository) MaxDetailVersion(context context.Context) (int, error) {
	// An empty catalogue still reports version 1 so clients have a floor.
	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 1) FROM %s`,
		schema.TopicDetail.Version, schema.TopicDetail.Table)

	var version int
	if err := repository.db.QueryRow(context, query).Scan(&version); err != nil {
		return 0, dberr.Wrap(err, "sync_max_version")
	}
	return version, nil
}

func (repository *PostgresRepository) RecentActivity(context context.Context, limit int) ([]ActivityRecord, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, r.%s, d.%s, d.%s
		FROM %s d
		JOIN %s t ON t.%s = d.%s
		JOIN %s r ON r.%s = t.%s
		ORDER BY d.%s DESC
		LIMIT $1
	`,
		schema.Topic.Title, schema.Religion.Name, schema.TopicDetail.Version, schema.TopicDetail.UpdatedAt,
		schema.TopicDetail.Table,
		schema.Topic.Table, schema.Topic.ID, schema.TopicDetail.TopicID,
		schema.Religion.Table, schema.Religion.ID, schema.Topic.ReligionID,
		schema.TopicDetail.UpdatedAt,
	)

	rows, err := repository.db.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "sync_recent_activity")
	}
	defer rows.Close()

	records := []ActivityRecord{}
	for rows.Next() {
		var a ActivityRecord
		var updatedAt time.Time
		if err := rows.Scan(&a.TopicTitle, &a.ReligionName, &a.Version, &updatedAt); err != nil {
			return nil, dberr.Wrap(err, "sync_recent_activity_scan")
		}
		a.UpdatedAt = updatedAt.UnixMilli()
		records = append(records, a)
	}
	return records, dberr.Wrap(rows.Err(), "sync_recent_activity_rows")
}
