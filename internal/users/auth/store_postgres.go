// Copyright (c) 2026 Apologia. All rights reserved.
// Author: tam.nguyendinh.vn@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tdnguyen/apologia/internal/platform/database/schema"
	"github.com/tdnguyen/apologia/internal/platform/dberr"
)

type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func accountColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.DisplayName,
		schema.UsersAccount.Role, schema.UsersAccount.Overrides,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
	)
}

func scanAccount(row interface{ Scan(...any) error }) (*Account, error) {
	account := &Account{}
	err := row.Scan(
		&account.ID, &account.Username, &account.Email,
		&account.PasswordHash, &account.DisplayName,
		&account.Role, &account.Overrides,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), schema.UsersAccount.Table, schema.UsersAccount.ID)

	account, err := scanAccount(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "account_find_by_id")
	}
	return account, nil
}

func (repository *PostgresAccountRepository) FindByLogin(context context.Context, login string) (*Account, error) {
	// A login identifier may be a username or an email address.
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 OR %s = LOWER($1)`,
		accountColumns(), schema.UsersAccount.Table,
		schema.UsersAccount.Username, schema.UsersAccount.Email)

	account, err := scanAccount(repository.db.QueryRow(context, query, login))
	if err != nil {
		return nil, dberr.Wrap(err, "account_find_by_login")
	}
	return account, nil
}

func (repository *PostgresAccountRepository) Create(context context.Context, account *Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, LOWER($3), $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.DisplayName,
		schema.UsersAccount.Role, schema.UsersAccount.Overrides,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		account.ID, account.Username, account.Email,
		account.PasswordHash, account.DisplayName,
		account.Role, account.Overrides,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	return dberr.Wrap(err, "account_create")
}

func (repository *PostgresAccountRepository) List(context context.Context) ([]*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`,
		accountColumns(), schema.UsersAccount.Table, schema.UsersAccount.CreatedAt)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "account_list")
	}
	defer rows.Close()

	accounts := []*Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "account_list_scan")
		}
		accounts = append(accounts, account)
	}
	return accounts, dberr.Wrap(rows.Err(), "account_list_rows")
}

func (repository *PostgresAccountRepository) UpdatePassword(context context.Context, accountID, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UsersAccount.Table,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.ID,
	)

	cmd, err := repository.db.Exec(context, query, accountID, newHash)
	if err != nil {
		return dberr.Wrap(err, "account_update_password")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
