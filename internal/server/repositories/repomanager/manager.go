// Package repomanager hands out repositories bound to a database handle and
// provisions the schema they need.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/godiecl/fivet-grpc/internal/dbx"
	"github.com/godiecl/fivet-grpc/internal/logging"
	"github.com/godiecl/fivet-grpc/internal/server/migrations"
	"github.com/godiecl/fivet-grpc/internal/server/repositories/personas"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	ResetSchema(ctx context.Context, db *sql.DB) error
	Personas(db dbx.DBTX) (personas.Repository, error)
}

// SQLRepositoryManager vends SQL repositories for one dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
	log     logging.Logger
}

// migrator is the part of *migrations.Migrator the manager drives.
type migrator interface {
	Up(ctx context.Context) error
	Reset(ctx context.Context) error
}

// newMigrator is a seam for testing schema provisioning.
var newMigrator = func(db *sql.DB, d dbx.Dialect, logger logging.Logger) (migrator, error) {
	return migrations.New(db, d, logger)
}

// New returns a RepositoryManager for databases of dialect d.
func New(d dbx.Dialect, logger logging.Logger) *SQLRepositoryManager {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &SQLRepositoryManager{dialect: d, log: logger}
}

// Personas returns a persona repository bound to db.
func (m *SQLRepositoryManager) Personas(db dbx.DBTX) (personas.Repository, error) {
	return personas.NewRepository(db, m.log)
}

// RunMigrations applies pending schema migrations.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	mg, err := newMigrator(db, m.dialect, m.log)
	if err != nil {
		return err
	}
	return mg.Up(ctx)
}

// ResetSchema drops and recreates every table. Stored data is lost.
func (m *SQLRepositoryManager) ResetSchema(ctx context.Context, db *sql.DB) error {
	mg, err := newMigrator(db, m.dialect, m.log)
	if err != nil {
		return err
	}
	return mg.Reset(ctx)
}
