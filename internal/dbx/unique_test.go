package dbx

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestIsUniqueViolation_Postgres(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "unique_entry_per_user_date"}
	notNull := &pgconn.PgError{Code: "23502"}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("db error: %w", unique)))
	assert.False(t, IsUniqueViolation(notNull))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite", "file:dbx_unique?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE u (id INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO u (name) VALUES ('Mira')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO u (name) VALUES ('Mira')`)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(fmt.Errorf("db error: %w", err)))

	_, err = db.Exec(`INSERT INTO u (name) VALUES (NULL)`)
	require.Error(t, err)
	assert.False(t, IsUniqueViolation(err), "NOT NULL failure is not a uniqueness signal")
}

func TestIsUniqueViolation_Other(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("duplicate key value")))
	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
}
