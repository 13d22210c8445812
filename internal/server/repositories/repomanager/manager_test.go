package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/godiecl/fivet-grpc/internal/dbx"
	"github.com/godiecl/fivet-grpc/internal/logging"
	"github.com/godiecl/fivet-grpc/internal/server/repositories/personas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	up, reset int
	err       error
}

func (f *fakeMigrator) Up(context.Context) error    { f.up++; return f.err }
func (f *fakeMigrator) Reset(context.Context) error { f.reset++; return f.err }

func stubMigrator(t *testing.T, f *fakeMigrator, newErr error) {
	t.Helper()
	orig := newMigrator
	newMigrator = func(db *sql.DB, d dbx.Dialect, logger logging.Logger) (migrator, error) {
		if newErr != nil {
			return nil, newErr
		}
		return f, nil
	}
	t.Cleanup(func() { newMigrator = orig })
}

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_ReturnsInterface(t *testing.T) {
	var m RepositoryManager = New(dbx.Postgres, nil)
	assert.NotNil(t, m)
}

func TestPersonas_ReturnsRepository(t *testing.T) {
	db := newDB(t)

	repo, err := New(dbx.SQLite, logging.Nop{}).Personas(db)
	require.NoError(t, err)

	var _ personas.Repository = repo
	assert.NotNil(t, repo)
}

func TestRunMigrations_Success(t *testing.T) {
	f := &fakeMigrator{}
	stubMigrator(t, f, nil)

	require.NoError(t, New(dbx.Postgres, nil).RunMigrations(context.Background(), newDB(t)))
	assert.Equal(t, 1, f.up)
	assert.Zero(t, f.reset)
}

func TestRunMigrations_Error(t *testing.T) {
	stubMigrator(t, &fakeMigrator{err: errors.New("boom")}, nil)

	err := New(dbx.Postgres, nil).RunMigrations(context.Background(), newDB(t))
	assert.EqualError(t, err, "boom")
}

func TestResetSchema(t *testing.T) {
	f := &fakeMigrator{}
	stubMigrator(t, f, nil)

	require.NoError(t, New(dbx.SQLite, nil).ResetSchema(context.Background(), newDB(t)))
	assert.Equal(t, 1, f.reset)
	assert.Zero(t, f.up)
}

func TestResetSchema_MigratorError(t *testing.T) {
	stubMigrator(t, nil, errors.New("no dialect"))

	err := New(dbx.SQLite, nil).ResetSchema(context.Background(), newDB(t))
	assert.EqualError(t, err, "no dialect")
}
