// Package entries provides the SQL-backed store for daily habit entries.
package entries

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

// SQLRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

const entryColumns = `id, entry_date, username, journal, meditation, movement, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.Entry, error) {
	var e models.Entry
	if err := s.Scan(&e.ID, &e.Date, &e.UserName, &e.Journal, &e.Meditation, &e.Movement, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByKey returns the entry for (date, userName) or common.ErrorNotFound.
func (r *SQLRepository) FindByKey(ctx context.Context, date, userName string) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		WHERE entry_date = $1 AND username = $2`

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, date, userName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// Insert creates a new row. When the (date, username) pair is already taken
// it returns common.ErrorAlreadyExists and writes nothing.
func (r *SQLRepository) Insert(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		INSERT INTO entries (entry_date, username, journal, meditation, movement, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		entry.Date, entry.UserName, entry.Journal, entry.Meditation, entry.Movement, now).Scan(&entry.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	entry.CreatedAt = now
	entry.UpdatedAt = now
	return entry, nil
}

// UpdateByKey overwrites the three habit flags of the row keyed by
// (entry.Date, entry.UserName) and returns the row as stored. A missing row
// yields common.ErrorNotFound.
func (r *SQLRepository) UpdateByKey(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		UPDATE entries
		SET journal = $1, meditation = $2, movement = $3, updated_at = $4
		WHERE entry_date = $5 AND username = $6`

	res, err := r.db.ExecContext(ctx, query,
		entry.Journal, entry.Meditation, entry.Movement, time.Now().UTC(), entry.Date, entry.UserName)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return r.FindByKey(ctx, entry.Date, entry.UserName)
	case 0:
		return nil, common.ErrorNotFound
	default:
		return nil, fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// List returns every entry, newest date first, then by username.
func (r *SQLRepository) List(ctx context.Context) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		ORDER BY entry_date DESC, username ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
