package religion

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

func (repository *PostgresRepository) ListReligions(context context.Context, limit, offset int) ([]*Religion, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`,
		schema.Religion.ID, schema.Religion.Name, schema.Religion.NameEn, schema.Religion.Slug,
		schema.Religion.Description, schema.Religion.Color, schema.Religion.Icon,
		schema.Religion.SyncStatus, schema.Religion.CreatedAt, schema.Religion.UpdatedAt,
		schema.Religion.Table, schema.Religion.Name,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Religion.Table)

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_religions")
	}

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_religions")
	}
	defer rows.Close()

	var religions []*Religion
	for rows.Next() {
		r := &Religion{}
		if err := rows.Scan(&r.ID, &r.Name, &r.NameEn, &r.Slug, &r.Description, &r.Color, &r.Icon,
			&r.SyncStatus, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_religion")
		}
		religions = append(religions, r)
	}

	return religions, total, nil
}

func (repository *PostgresRepository) GetReligion(context context.Context, id int) (*Religion, error) {
	return repository.getByColumn(context, schema.Religion.ID, id)
}

func (repository *PostgresRepository) GetReligionBySlug(context context.Context, slug string) (*Religion, error) {
	return repository.getByColumn(context, schema.Religion.Slug, slug)
}

func (repository *PostgresRepository) getByColumn(context context.Context, column string, value any) (*Religion, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Religion.ID, schema.Religion.Name, schema.Religion.NameEn, schema.Religion.Slug,
		schema.Religion.Description, schema.Religion.Color, schema.Religion.Icon,
		schema.Religion.SyncStatus, schema.Religion.CreatedAt, schema.Religion.UpdatedAt,
		schema.Religion.Table, column,
	)
	r := &Religion{}

	err := repository.db.QueryRow(context, query, value).Scan(
		&r.ID, &r.Name, &r.NameEn, &r.Slug, &r.Description, &r.Color, &r.Icon,
		&r.SyncStatus, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_religion")
	}

	return r, nil
}

func (repository *PostgresRepository) CreateReligion(context context.Context, r *Religion) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Religion.Table,
		schema.Religion.Name, schema.Religion.NameEn, schema.Religion.Slug, schema.Religion.Description,
		schema.Religion.Color, schema.Religion.Icon, schema.Religion.SyncStatus,
		schema.Religion.CreatedAt, schema.Religion.UpdatedAt,
		schema.Religion.ID, schema.Religion.CreatedAt, schema.Religion.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		r.Name, r.NameEn, r.Slug, r.Description, r.Color, r.Icon, r.SyncStatus,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	return dberr.Wrap(err, "create_religion")
}

func (repository *PostgresRepository) UpdateReligion(context context.Context, r *Religion) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.Religion.Table,
		schema.Religion.Name, schema.Religion.NameEn, schema.Religion.Slug, schema.Religion.Description,
		schema.Religion.Color, schema.Religion.Icon, schema.Religion.UpdatedAt,
		schema.Religion.ID,
		schema.Religion.SyncStatus, schema.Religion.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		r.ID, r.Name, r.NameEn, r.Slug, r.Description, r.Color, r.Icon,
	).Scan(&r.SyncStatus, &r.UpdatedAt)
	return dberr.Wrap(err, "update_religion")
}

func (repository *PostgresRepository) DeleteReligion(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Religion.Table, schema.Religion.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_religion")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) PublishReligion(context context.Context, id int) (*Religion, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
	`,
		schema.Religion.Table,
		schema.Religion.SyncStatus, schema.Religion.UpdatedAt,
		schema.Religion.ID,
		schema.Religion.ID, schema.Religion.Name, schema.Religion.NameEn, schema.Religion.Slug,
		schema.Religion.Description, schema.Religion.Color, schema.Religion.Icon,
		schema.Religion.SyncStatus, schema.Religion.CreatedAt, schema.Religion.UpdatedAt,
	)
	r := &Religion{}

	err := repository.db.QueryRow(context, query, id, status.Synced).Scan(
		&r.ID, &r.Name, &r.NameEn, &r.Slug, &r.Description, &r.Color, &r.Icon,
		&r.SyncStatus, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "publish_religion")
	}

	return r, nil
}

func (repository *PostgresRepository) CountTopics(context context.Context, religionID int) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.Topic.Table, schema.Topic.ReligionID)

	var count int
	if err := repository.db.QueryRow(context, query, religionID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_religion_topics")
	}
	return count, nil
}
