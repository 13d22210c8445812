// Package repositories implements generic soft-delete persistence for any
// record type described by a Mapping.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/godiecl/fivet-grpc/internal/common"
	"github.com/godiecl/fivet-grpc/internal/dbx"
	"github.com/godiecl/fivet-grpc/internal/logging"
	"github.com/godiecl/fivet-grpc/internal/server/models"
)

// Repository is the persistence contract shared by every record type.
// Reads never return soft-deleted rows.
type Repository[T models.Entity] interface {
	// Get returns the live row with the given id; ok is false when there is none.
	Get(ctx context.Context, id int64) (t T, ok bool, err error)
	// GetBy returns the first live row, by ascending id, whose attribute
	// equals value.
	GetBy(ctx context.Context, attribute string, value any) (t T, ok bool, err error)
	// GetAll returns every live row ordered by id.
	GetAll(ctx context.Context) ([]T, error)
	// Save inserts t and assigns its id and timestamps.
	Save(ctx context.Context, t T) error
	// Update writes every mapped column of a live row.
	Update(ctx context.Context, t T) error
	// Delete soft-deletes the live row with the given id.
	Delete(ctx context.Context, id int64) error
	// DeleteEntity soft-deletes t.
	DeleteEntity(ctx context.Context, t T) error
}

// SQLRepository implements Repository over a dbx.DBTX.
type SQLRepository[T models.Entity] struct {
	db      dbx.DBTX
	mapping Mapping[T]
	log     logging.Logger
	now     func() time.Time

	selectColumns string
}

var _ Repository[*models.Persona] = (*SQLRepository[*models.Persona])(nil)

// New returns a repository for the records described by m.
func New[T models.Entity](db dbx.DBTX, m Mapping[T], logger logging.Logger) (*SQLRepository[T], error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop{}
	}

	names := []string{columnID}
	for _, c := range m.columns() {
		names = append(names, c.Name)
	}

	return &SQLRepository[T]{
		db:            db,
		mapping:       m,
		log:           logger.With("module", "repository", "table", m.Table),
		now:           func() time.Time { return time.Now().UTC().Round(0) },
		selectColumns: strings.Join(names, ", "),
	}, nil
}

// Mapping returns the mapping the repository was built with.
func (r *SQLRepository[T]) Mapping() Mapping[T] { return r.mapping }

func (r *SQLRepository[T]) Get(ctx context.Context, id int64) (T, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND deleted_at IS NULL`,
		r.selectColumns, r.mapping.Table)

	return r.queryOne(ctx, query, id)
}

func (r *SQLRepository[T]) GetBy(ctx context.Context, attribute string, value any) (T, bool, error) {
	var zero T

	if attribute != columnID {
		if _, ok := r.mapping.column(attribute); !ok {
			return zero, false, fmt.Errorf("%w: %s.%s", common.ErrorUnknownAttribute, r.mapping.Table, attribute)
		}
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND deleted_at IS NULL ORDER BY id LIMIT 2`,
		r.selectColumns, r.mapping.Table, attribute)

	found, err := r.queryAll(ctx, query, value)
	if err != nil {
		return zero, false, err
	}

	switch len(found) {
	case 0:
		return zero, false, nil
	case 1:
		return found[0], true, nil
	default:
		r.log.Warn(ctx, "more than one live row matches, returning the first",
			"attribute", attribute, "id", found[0].Base().ID)
		return found[0], true, nil
	}
}

func (r *SQLRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE deleted_at IS NULL ORDER BY id`,
		r.selectColumns, r.mapping.Table)

	return r.queryAll(ctx, query)
}

func (r *SQLRepository[T]) Save(ctx context.Context, t T) error {
	base := t.Base()
	prev := *base

	now := r.now()
	base.CreatedAt = now
	base.UpdatedAt = now
	base.DeletedAt = nil

	cols := r.mapping.columns()
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		marks[i] = fmt.Sprintf("$%d", i+1)
		args[i] = c.value(t)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING id`,
		r.mapping.Table, strings.Join(names, ", "), strings.Join(marks, ", "))

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		*base = prev
		return &PersistenceError{Op: "insert", Table: r.mapping.Table, Err: err}
	}

	base.ID = id
	r.log.Debug(ctx, "row inserted", "id", id)
	return nil
}

func (r *SQLRepository[T]) Update(ctx context.Context, t T) error {
	base := t.Base()
	prevUpdated := base.UpdatedAt
	base.UpdatedAt = r.now()

	var (
		sets []string
		args []any
	)
	for _, c := range r.mapping.columns() {
		if c.Name == columnCreatedAt {
			continue
		}
		args = append(args, c.value(t))
		sets = append(sets, fmt.Sprintf("%s = $%d", c.Name, len(args)))
	}
	args = append(args, base.ID)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d AND deleted_at IS NULL`,
		r.mapping.Table, strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		base.UpdatedAt = prevUpdated
		return &PersistenceError{Op: "update", Table: r.mapping.Table, Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		base.UpdatedAt = prevUpdated
		return &PersistenceError{Op: "update", Table: r.mapping.Table, Err: err}
	}
	if n != 1 {
		base.UpdatedAt = prevUpdated
		return &PersistenceError{Op: "update", Table: r.mapping.Table, Rows: n}
	}

	r.log.Debug(ctx, "row updated", "id", base.ID)
	return nil
}

func (r *SQLRepository[T]) Delete(ctx context.Context, id int64) error {
	_, err := r.softDelete(ctx, id)
	return err
}

func (r *SQLRepository[T]) DeleteEntity(ctx context.Context, t T) error {
	stored, err := r.softDelete(ctx, t.Base().ID)
	if err != nil {
		return err
	}

	t.Base().DeletedAt = stored.Base().DeletedAt
	t.Base().UpdatedAt = stored.Base().UpdatedAt
	return nil
}

// softDelete marks the live row with id as deleted and returns it as stored.
func (r *SQLRepository[T]) softDelete(ctx context.Context, id int64) (T, error) {
	t, ok, err := r.Get(ctx, id)
	if err != nil {
		return t, err
	}
	if !ok {
		return t, &NotFoundError{Table: r.mapping.Table, ID: id}
	}

	deletedAt := r.now()
	t.Base().DeletedAt = &deletedAt

	if err := r.Update(ctx, t); err != nil {
		return t, err
	}

	r.log.Info(ctx, "row soft-deleted", "id", id)
	return t, nil
}

func (r *SQLRepository[T]) queryOne(ctx context.Context, query string, args ...any) (T, bool, error) {
	var zero T

	t := r.mapping.New()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(r.targets(t)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("db error: %w", err)
	}
	return t, true, nil
}

func (r *SQLRepository[T]) queryAll(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []T
	for rows.Next() {
		t := r.mapping.New()
		if err := rows.Scan(r.targets(t)...); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository[T]) targets(t T) []any {
	cols := r.mapping.columns()
	dst := make([]any, 0, len(cols)+1)
	dst = append(dst, &t.Base().ID)
	for _, c := range cols {
		dst = append(dst, c.target(t))
	}
	return dst
}
