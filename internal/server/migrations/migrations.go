// Package migrations provisions the schema with goose. Each version is a Go
// migration whose DDL is derived from a repository mapping, so the schema
// always matches the columns the repositories read and write.
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/godiecl/fivet-grpc/internal/dbx"
	"github.com/godiecl/fivet-grpc/internal/logging"
	"github.com/godiecl/fivet-grpc/internal/server/repositories/personas"
	"github.com/pressly/goose/v3"
)

// tableDDL is what a migration needs from a mapping.
type tableDDL interface {
	CreateTableSQL(d dbx.Dialect) string
	DropTableSQL() string
}

// tables lists the mapped tables in version order, starting at 1.
var tables = []tableDDL{
	personas.Mapping,
}

// Migrator applies and rolls back the schema on one database.
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
	log      logging.Logger
}

// New builds a Migrator for db in dialect d.
func New(db *sql.DB, d dbx.Dialect, logger logging.Logger) (*Migrator, error) {
	if logger == nil {
		logger = logging.Nop{}
	}

	gd, err := gooseDialect(d)
	if err != nil {
		return nil, err
	}

	ms := make([]*goose.Migration, 0, len(tables))
	for i, t := range tables {
		ms = append(ms, newMigration(int64(i+1), t, d))
	}

	p, err := goose.NewProvider(gd, db, nil,
		goose.WithGoMigrations(ms...),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &Migrator{db: db, provider: p, log: logger.With("module", "migrations")}, nil
}

func newMigration(version int64, t tableDDL, d dbx.Dialect) *goose.Migration {
	up := &goose.GoFunc{RunTx: func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, t.CreateTableSQL(d))
		return err
	}}
	down := &goose.GoFunc{RunTx: func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, t.DropTableSQL())
		return err
	}}
	return goose.NewGoMigration(version, up, down)
}

func gooseDialect(d dbx.Dialect) (goose.Dialect, error) {
	switch d.Name {
	case dbx.Postgres.Name:
		return goose.DialectPostgres, nil
	case dbx.SQLite.Name:
		return goose.DialectSQLite3, nil
	}
	return "", fmt.Errorf("migrations: no goose dialect for %q", d.Name)
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	m.report(ctx, results)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Reset drops every mapped table and recreates it empty. It destroys all
// stored data.
func (m *Migrator) Reset(ctx context.Context) error {
	m.log.Warn(ctx, "resetting schema, stored data is dropped")

	results, err := m.provider.DownTo(ctx, 0)
	m.report(ctx, results)
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}

	// tables created outside goose are not covered by DownTo
	for _, t := range tables {
		if _, err := m.db.ExecContext(ctx, t.DropTableSQL()); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return m.Up(ctx)
}

// Version returns the schema version recorded in the database.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	return m.provider.GetDBVersion(ctx)
}

func (m *Migrator) report(ctx context.Context, results []*goose.MigrationResult) {
	for _, r := range results {
		m.log.Info(ctx, "migration applied",
			"version", r.Source.Version, "direction", r.Direction, "duration", r.Duration)
	}
}
