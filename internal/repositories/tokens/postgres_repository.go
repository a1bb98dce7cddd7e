package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lenshive/backend/internal/common"
	"github.com/lenshive/backend/internal/dbx"
	"github.com/lenshive/backend/internal/models"
)

// Postgres unique_violation.
const uniqueViolationCode = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.AuthToken, error) {
	query :=
		`SELECT user_id, token, created_at FROM auth_tokens
		 WHERE user_id = $1
		 `

	return r.scanToken(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, token string) (*models.AuthToken, error) {
	query :=
		`INSERT INTO auth_tokens (user_id, token)
         VALUES ($1, $2)
		 RETURNING user_id, token, created_at
		 `

	t := &models.AuthToken{}
	err := r.db.QueryRowContext(ctx, query, userID, token).
		Scan(&t.UserID, &t.Token, &t.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.AuthToken, error) {
	query :=
		`SELECT user_id, token, created_at FROM auth_tokens
		 WHERE token = $1
		 `

	return r.scanToken(r.db.QueryRowContext(ctx, query, token))
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string) (bool, error) {
	query :=
		`DELETE FROM auth_tokens
		 WHERE user_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

func (r *PostgresRepository) scanToken(row *sql.Row) (*models.AuthToken, error) {
	t := &models.AuthToken{}
	err := row.Scan(&t.UserID, &t.Token, &t.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}
