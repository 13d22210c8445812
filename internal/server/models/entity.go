// Package models holds the persisted record types. Every record embeds
// Lifecycle, which carries the identity and soft-delete state the
// repositories manage.
package models

import "time"

// Lifecycle is the identity/lifecycle shape shared by all persisted records.
//
// ID, CreatedAt and UpdatedAt are assigned by the repository on Save.
// DeletedAt is nil while the record is live and is set exactly once, when
// the record is soft-deleted.
type Lifecycle struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Base exposes the embedded Lifecycle; it makes any pointer to a struct that
// embeds Lifecycle satisfy Entity.
func (l *Lifecycle) Base() *Lifecycle { return l }

// IsDeleted reports whether the record has been soft-deleted.
func (l *Lifecycle) IsDeleted() bool { return l.DeletedAt != nil }

// Entity is implemented by every persisted record type.
type Entity interface {
	Base() *Lifecycle
}
