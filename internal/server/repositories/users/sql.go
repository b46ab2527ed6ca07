// Package users provides the SQL-backed account repository. Queries use
// $N placeholders, which both pgx and modernc SQLite accept.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/habitcheck/internal/common"
	"github.com/dmitrijs2005/habitcheck/internal/dbx"
	"github.com/dmitrijs2005/habitcheck/internal/server/models"
)

// SQLRepository implements account storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Create inserts user and fills in ID and timestamps. A taken username
// yields common.ErrorAlreadyExists.
func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, token, is_admin, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)
		 RETURNING id`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.Token, user.IsAdmin, now).Scan(&user.ID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	return user, nil
}

// GetUserByLogin looks a user up by exact (case-sensitive) username.
func (r *SQLRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, token, is_admin, created_at, updated_at FROM users
		 WHERE username = $1`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userName).Scan(
		&user.ID, &user.UserName, &user.Token, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// List returns every account in creation order.
func (r *SQLRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, username, token, is_admin, created_at, updated_at FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.UserName, &u.Token, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// UpdateToken replaces the stored token. Unknown usernames yield
// common.ErrorNotFound.
func (r *SQLRepository) UpdateToken(ctx context.Context, userName string, token string) error {
	query :=
		`UPDATE users SET token = $1, updated_at = $2
		 WHERE username = $3`

	res, err := r.db.ExecContext(ctx, query, token, time.Now().UTC(), userName)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
