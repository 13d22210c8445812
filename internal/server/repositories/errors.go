package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/godiecl/fivet-grpc/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// NotFoundError is returned by Delete when no live row carries the id.
// errors.Is(err, common.ErrorNotFound) reports true for it.
type NotFoundError struct {
	Table string
	ID    int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no live row with id %d", e.Table, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == common.ErrorNotFound
}

// PersistenceError is returned when an insert or update did not affect
// exactly one row. Err holds the engine failure, if there was one.
// errors.Is(err, common.ErrorPersistence) reports true for it.
type PersistenceError struct {
	Op    string
	Table string
	Rows  int64
	Err   error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("%s %s: %d rows affected, want 1", e.Op, e.Table, e.Rows)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool {
	return target == common.ErrorPersistence
}

// IsUniqueViolation reports whether err was caused by a unique constraint,
// on either PostgreSQL or SQLite.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
			strings.Contains(liteErr.Error(), "UNIQUE")
	}

	return false
}
