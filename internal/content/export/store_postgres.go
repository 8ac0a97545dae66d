package export

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tdnguyen/apologia/internal/platform/database/schema"
	"github.com/tdnguyen/apologia/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) AllReligions(context context.Context) ([]ReligionRow, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s
	`,
		schema.Religion.ID, schema.Religion.Name, schema.Religion.NameEn, schema.Religion.Slug,
		schema.Religion.Color, schema.Religion.SyncStatus, schema.Religion.UpdatedAt,
		schema.Religion.Table,
		schema.Religion.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "export_religions")
	}
	defer rows.Close()

	out := []ReligionRow{}
	for rows.Next() {
		var row ReligionRow
		if err := rows.Scan(&row.ID, &row.Name, &row.NameEn, &row.Slug, &row.Color, &row.SyncStatus, &row.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "export_religions_scan")
		}
		out = append(out, row)
	}
	return out, dberr.Wrap(rows.Err(), "export_religions_rows")
}

func (repository *PostgresRepository) AllTopics(context context.Context) ([]TopicRow, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, r.%s, t.%s, t.%s, t.%s, t.%s, t.%s
		FROM %s t
		JOIN %s r ON r.%s = t.%s
		ORDER BY t.%s
	`,
		schema.Topic.ID, schema.Religion.Name, schema.Topic.Title, schema.Topic.TitleEn,
		schema.Topic.Slug, schema.Topic.SyncStatus, schema.Topic.UpdatedAt,
		schema.Topic.Table,
		schema.Religion.Table, schema.Religion.ID, schema.Topic.ReligionID,
		schema.Topic.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "export_topics")
	}
	defer rows.Close()

	out := []TopicRow{}
	for rows.Next() {
		var row TopicRow
		if err := rows.Scan(&row.ID, &row.ReligionName, &row.Title, &row.TitleEn, &row.Slug, &row.SyncStatus, &row.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "export_topics_scan")
		}
		out = append(out, row)
	}
	return out, dberr.Wrap(rows.Err(), "export_topics_rows")
}

func (repository *PostgresRepository) AllDetails(context context.Context) ([]DetailRow, error) {
	query := fmt.Sprintf(`
		SELECT d.%s, t.%s, d.%s, d.%s, d.%s, d.%s, d.%s, d.%s
		FROM %s d
		JOIN %s t ON t.%s = d.%s
		ORDER BY d.%s
	`,
		schema.TopicDetail.ID, schema.Topic.Title, schema.TopicDetail.Explanation,
		schema.TopicDetail.BibleVerses, schema.TopicDetail.KeyPoints,
		schema.TopicDetail.Version, schema.TopicDetail.SyncStatus, schema.TopicDetail.UpdatedAt,
		schema.TopicDetail.Table,
		schema.Topic.Table, schema.Topic.ID, schema.TopicDetail.TopicID,
		schema.TopicDetail.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "export_details")
	}
	defer rows.Close()

	out := []DetailRow{}
	for rows.Next() {
		var row DetailRow
		if err := rows.Scan(&row.ID, &row.TopicTitle, &row.Explanation, &row.BibleVerses, &row.KeyPoints, &row.Version, &row.SyncStatus, &row.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "export_details_scan")
		}
		out = append(out, row)
	}
	return out, dberr.Wrap(rows.Err(), "export_details_rows")
}
