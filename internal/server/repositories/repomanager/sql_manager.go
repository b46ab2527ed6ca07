// Package repomanager vends SQL-backed repositories for a configured dialect
// and applies the embedded goose migrations for it.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/habitcheck/internal/dbx"
	"github.com/dmitrijs2005/habitcheck/internal/server/migrations"
	"github.com/dmitrijs2005/habitcheck/internal/server/repositories/entries"
	"github.com/dmitrijs2005/habitcheck/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager binds repositories to a DBTX and migrates the schema
// for its dialect.
type SQLRepositoryManager struct {
	dialect Dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Entries returns an entries.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies every pending migration for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.gooseDialect()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, m.dialect.migrationsDir()); err != nil {
		return err
	}
	return nil
}

// Dialect reports the backend the manager was built for.
func (m *SQLRepositoryManager) Dialect() Dialect {
	return m.dialect
}

func NewRepositoryManager(d Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: d}
}
