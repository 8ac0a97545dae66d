package detail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tdnguyen/apologia/internal/content/status"
	"github.com/tdnguyen/apologia/internal/platform/apperr"
	"github.com/tdnguyen/apologia/internal/platform/database/schema"
	"github.com/tdnguyen/apologia/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// detailColumns is the SELECT list shared by all single-row queries.
func detailColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.TopicDetail.ID, schema.TopicDetail.TopicID, schema.TopicDetail.Explanation,
		schema.TopicDetail.BibleVerses, schema.TopicDetail.KeyPoints, schema.TopicDetail.References,
		schema.TopicDetail.Version, schema.TopicDetail.SyncStatus,
		schema.TopicDetail.CreatedAt, schema.TopicDetail.UpdatedAt,
	)
}

// scanDetail reads one row into a Detail, decoding the jsonb references column.
func scanDetail(row interface{ Scan(...any) error }) (*Detail, error) {
	d := &Detail{}
	var rawReferences []byte

	err := row.Scan(
		&d.ID, &d.TopicID, &d.Explanation,
		&d.BibleVerses, &d.KeyPoints, &rawReferences,
		&d.Version, &d.SyncStatus, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(rawReferences) > 0 {
		if err := json.Unmarshal(rawReferences, &d.References); err != nil {
			return nil, fmt.Errorf("detail: corrupt references payload for id %d: %w", d.ID, err)
		}
	}

	return d, nil
}

func (repository *PostgresRepository) GetDetail(context context.Context, id int) (*Detail, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		detailColumns(), schema.TopicDetail.Table, schema.TopicDetail.ID)

	d, err := scanDetail(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_detail")
	}
	return d, nil
}

func (repository *PostgresRepository) GetDetailByTopic(context context.Context, topicID int) (*Detail, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		detailColumns(), schema.TopicDetail.Table, schema.TopicDetail.TopicID)

	d, err := scanDetail(repository.db.QueryRow(context, query, topicID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_detail_by_topic")
	}
	return d, nil
}

func (repository *PostgresRepository) CreateDetail(context context.Context, d *Detail) error {
	rawReferences, err := json.Marshal(d.References)
	if err != nil {
		return apperr.Internal(err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.TopicDetail.Table,
		schema.TopicDetail.TopicID, schema.TopicDetail.Explanation, schema.TopicDetail.BibleVerses,
		schema.TopicDetail.KeyPoints, schema.TopicDetail.References, schema.TopicDetail.Version,
		schema.TopicDetail.SyncStatus,
		schema.TopicDetail.CreatedAt, schema.TopicDetail.UpdatedAt,
		schema.TopicDetail.ID, schema.TopicDetail.CreatedAt, schema.TopicDetail.UpdatedAt,
	)

	err = repository.db.QueryRow(context, query,
		d.TopicID, d.Explanation, d.BibleVerses, d.KeyPoints, rawReferences, d.Version, d.SyncStatus,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	return dberr.Wrap(err, "create_detail")
}

func (repository *PostgresRepository) UpdateDetail(context context.Context, d *Detail) error {
	rawReferences, err := json.Marshal(d.References)
	if err != nil {
		return apperr.Internal(err)
	}

	// version = version + 1 in the same statement keeps the counter strictly
	// monotonic under concurrent edits.
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = %s + 1, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s, %s
	`,
		schema.TopicDetail.Table,
		schema.TopicDetail.Explanation, schema.TopicDetail.BibleVerses, schema.TopicDetail.KeyPoints,
		schema.TopicDetail.References,
		schema.TopicDetail.Version, schema.TopicDetail.Version,
		schema.TopicDetail.UpdatedAt,
		schema.TopicDetail.ID,
		schema.TopicDetail.TopicID, schema.TopicDetail.Version, schema.TopicDetail.SyncStatus, schema.TopicDetail.UpdatedAt,
	)

	err = repository.db.QueryRow(context, query,
		d.ID, d.Explanation, d.BibleVerses, d.KeyPoints, rawReferences,
	).Scan(&d.TopicID, &d.Version, &d.SyncStatus, &d.UpdatedAt)
	return dberr.Wrap(err, "update_detail")
}

func (repository *PostgresRepository) DeleteDetail(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.TopicDetail.Table, schema.TopicDetail.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_detail")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) PublishDetail(context context.Context, id int) (*Detail, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.TopicDetail.Table,
		schema.TopicDetail.SyncStatus, schema.TopicDetail.UpdatedAt,
		schema.TopicDetail.ID,
		detailColumns(),
	)

	d, err := scanDetail(repository.db.QueryRow(context, query, id, status.Synced))
	if err != nil {
		return nil, dberr.Wrap(err, "publish_detail")
	}
	return d, nil
}

func (repository *PostgresRepository) TopicExists(context context.Context, topicID int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Topic.Table, schema.Topic.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, topicID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "detail_topic_exists")
	}
	return exists, nil
}
