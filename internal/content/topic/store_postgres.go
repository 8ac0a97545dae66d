package topic

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) ListTopics(context context.Context, religionID, limit, offset int) ([]*Topic, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.Topic.ID, schema.Topic.ReligionID, schema.Topic.Title, schema.Topic.TitleEn,
		schema.Topic.Slug, schema.Topic.Description, schema.Topic.SyncStatus,
		schema.Topic.CreatedAt, schema.Topic.UpdatedAt,
		schema.Topic.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Topic.Table)

	args := []any{}
	countArgs := []any{}

	if religionID > 0 {
		filter := fmt.Sprintf(` WHERE %s = $1`, schema.Topic.ReligionID)
		query += filter
		countQuery += filter
		args = append(args, religionID)
		countArgs = append(countArgs, religionID)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.Topic.Title, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_topics")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_topics")
	}
	defer rows.Close()

	var topics []*Topic
	for rows.Next() {
		t := &Topic{}
		if err := rows.Scan(&t.ID, &t.ReligionID, &t.Title, &t.TitleEn, &t.Slug, &t.Description,
			&t.SyncStatus, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_topic")
		}
		topics = append(topics, t)
	}

	return topics, total, nil
}

func (repository *PostgresRepository) GetTopic(context context.Context, id int) (*Topic, error) {
	return repository.getByColumn(context, schema.Topic.ID, id)
}

func (repository *PostgresRepository) GetTopicBySlug(context context.Context, slug string) (*Topic, error) {
	return repository.getByColumn(context, schema.Topic.Slug, slug)
}

func (repository *PostgresRepository) getByColumn(context context.Context, column string, value any) (*Topic, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Topic.ID, schema.Topic.ReligionID, schema.Topic.Title, schema.Topic.TitleEn,
		schema.Topic.Slug, schema.Topic.Description, schema.Topic.SyncStatus,
		schema.Topic.CreatedAt, schema.Topic.UpdatedAt,
		schema.Topic.Table, column,
	)
	t := &Topic{}

	err := repository.db.QueryRow(context, query, value).Scan(
		&t.ID, &t.ReligionID, &t.Title, &t.TitleEn, &t.Slug, &t.Description,
		&t.SyncStatus, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_topic")
	}

	return t, nil
}

func (repository *PostgresRepository) CreateTopic(context context.Context, t *Topic) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Topic.Table,
		schema.Topic.ReligionID, schema.Topic.Title, schema.Topic.TitleEn, schema.Topic.Slug,
		schema.Topic.Description, schema.Topic.SyncStatus,
		schema.Topic.CreatedAt, schema.Topic.UpdatedAt,
		schema.Topic.ID, schema.Topic.CreatedAt, schema.Topic.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		t.ReligionID, t.Title, t.TitleEn, t.Slug, t.Description, t.SyncStatus,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return dberr.Wrap(err, "create_topic")
}

func (repository *PostgresRepository) UpdateTopic(context context.Context, t *Topic) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s
	`,
		schema.Topic.Table,
		schema.Topic.Title, schema.Topic.TitleEn, schema.Topic.Slug, schema.Topic.Description,
		schema.Topic.UpdatedAt,
		schema.Topic.ID,
		schema.Topic.ReligionID, schema.Topic.SyncStatus, schema.Topic.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		t.ID, t.Title, t.TitleEn, t.Slug, t.Description,
	).Scan(&t.ReligionID, &t.SyncStatus, &t.UpdatedAt)
	return dberr.Wrap(err, "update_topic")
}

func (repository *PostgresRepository) DeleteTopic(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Topic.Table, schema.Topic.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_topic")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) PublishTopic(context context.Context, id int) (*Topic, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s, %s, %s, %s, %s, %s, %s
	`,
		schema.Topic.Table,
		schema.Topic.SyncStatus, schema.Topic.UpdatedAt,
		schema.Topic.ID,
		schema.Topic.ID, schema.Topic.ReligionID, schema.Topic.Title, schema.Topic.TitleEn,
		schema.Topic.Slug, schema.Topic.Description, schema.Topic.SyncStatus,
		schema.Topic.CreatedAt, schema.Topic.UpdatedAt,
	)
	t := &Topic{}

	err := repository.db.QueryRow(context, query, id, status.Synced).Scan(
		&t.ID, &t.ReligionID, &t.Title, &t.TitleEn, &t.Slug, &t.Description,
		&t.SyncStatus, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "publish_topic")
	}

	return t, nil
}

func (repository *PostgresRepository) ReligionExists(context context.Context, religionID int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Religion.Table, schema.Religion.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, religionID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "topic_religion_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) HasDetail(context context.Context, topicID int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.TopicDetail.Table, schema.TopicDetail.TopicID)

	var exists bool
	if err := repository.db.QueryRow(context, query, topicID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "topic_has_detail")
	}
	return exists, nil
}
