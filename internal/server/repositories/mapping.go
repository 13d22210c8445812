package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/godiecl/fivet-grpc/internal/dbx"
	"github.com/godiecl/fivet-grpc/internal/server/models"
)

// ColumnType is the storage type of a mapped column.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInteger
	// TypeTimestamp columns hold ISO-8601 strings, see FormatTimestamp.
	TypeTimestamp
)

func (t ColumnType) sql() string {
	if t == TypeInteger {
		return "BIGINT"
	}
	return "TEXT"
}

// Column maps one attribute of T to a named column. Build columns with Text,
// OptionalText, Integer, Timestamp or OptionalTimestamp.
type Column[T any] struct {
	Name     string
	Type     ColumnType
	Nullable bool
	IsUnique bool

	// value returns what is written for t.
	value func(t T) any
	// target returns the scan destination inside t.
	target func(t T) any
}

// Unique returns a copy of c carrying a UNIQUE constraint.
func (c Column[T]) Unique() Column[T] {
	c.IsUnique = true
	return c
}

func (c Column[T]) ddl() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte(' ')
	b.WriteString(c.Type.sql())
	if !c.Nullable {
		b.WriteString(" NOT NULL")
	}
	if c.IsUnique {
		b.WriteString(" UNIQUE")
	}
	return b.String()
}

// Text maps a required string attribute.
func Text[T any](name string, field func(T) *string) Column[T] {
	return Column[T]{
		Name:   name,
		Type:   TypeText,
		value:  func(t T) any { return *field(t) },
		target: func(t T) any { return field(t) },
	}
}

// OptionalText maps a string attribute whose empty value is stored as NULL.
func OptionalText[T any](name string, field func(T) *string) Column[T] {
	return Column[T]{
		Name:     name,
		Type:     TypeText,
		Nullable: true,
		value: func(t T) any {
			if s := *field(t); s != "" {
				return s
			}
			return nil
		},
		target: func(t T) any { return nullTextScanner{dst: field(t)} },
	}
}

// Integer maps a required int64 attribute.
func Integer[T any](name string, field func(T) *int64) Column[T] {
	return Column[T]{
		Name:   name,
		Type:   TypeInteger,
		value:  func(t T) any { return *field(t) },
		target: func(t T) any { return field(t) },
	}
}

// Timestamp maps a required time attribute.
func Timestamp[T any](name string, field func(T) *time.Time) Column[T] {
	return Column[T]{
		Name:   name,
		Type:   TypeTimestamp,
		value:  func(t T) any { return FormatTimestamp(*field(t)) },
		target: func(t T) any { return timestampScanner{dst: field(t)} },
	}
}

// OptionalTimestamp maps a *time.Time attribute; nil is stored as NULL.
func OptionalTimestamp[T any](name string, field func(T) **time.Time) Column[T] {
	return Column[T]{
		Name:     name,
		Type:     TypeTimestamp,
		Nullable: true,
		value:    func(t T) any { return nullableTimestamp(*field(t)) },
		target:   func(t T) any { return nullTimestampScanner{dst: field(t)} },
	}
}

// Mapping describes how an entity type is stored: its table, how to make an
// empty value to scan into, and its own columns. The lifecycle columns
// (id, created_at, updated_at, deleted_at) are added by the repository.
type Mapping[T models.Entity] struct {
	Table   string
	New     func() T
	Columns []Column[T]
}

const (
	columnID        = "id"
	columnCreatedAt = "created_at"
	columnUpdatedAt = "updated_at"
	columnDeletedAt = "deleted_at"
)

// columns returns the lifecycle columns followed by the mapped ones. The id
// column is handled separately since the engine assigns it.
func (m Mapping[T]) columns() []Column[T] {
	lifecycle := []Column[T]{
		Timestamp(columnCreatedAt, func(t T) *time.Time { return &t.Base().CreatedAt }),
		Timestamp(columnUpdatedAt, func(t T) *time.Time { return &t.Base().UpdatedAt }),
		OptionalTimestamp(columnDeletedAt, func(t T) **time.Time { return &t.Base().DeletedAt }),
	}
	return append(lifecycle, m.Columns...)
}

// Validate checks that the mapping can be turned into SQL.
func (m Mapping[T]) Validate() error {
	if m.Table == "" {
		return fmt.Errorf("mapping: empty table name")
	}
	if m.New == nil {
		return fmt.Errorf("mapping %s: New is nil", m.Table)
	}

	seen := map[string]bool{columnID: true}
	for _, c := range m.columns() {
		if c.Name == "" {
			return fmt.Errorf("mapping %s: column without name", m.Table)
		}
		if seen[c.Name] {
			return fmt.Errorf("mapping %s: duplicate column %q", m.Table, c.Name)
		}
		if c.value == nil || c.target == nil {
			return fmt.Errorf("mapping %s: column %q has no accessors", m.Table, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// CreateTableSQL returns the DDL that creates the table in dialect d.
func (m Mapping[T]) CreateTableSQL(d dbx.Dialect) string {
	defs := []string{columnID + " " + d.IdentityColumn}
	for _, c := range m.columns() {
		defs = append(defs, c.ddl())
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", m.Table, strings.Join(defs, ",\n\t"))
}

// DropTableSQL returns the DDL that drops the table if present.
func (m Mapping[T]) DropTableSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", m.Table)
}

func (m Mapping[T]) column(name string) (Column[T], bool) {
	for _, c := range m.columns() {
		if c.Name == name {
			return c, true
		}
	}
	return Column[T]{}, false
}
