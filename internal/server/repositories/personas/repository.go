// Package personas maps models.Persona onto the "personas" table.
package personas

import (
	"github.com/godiecl/fivet-grpc/internal/dbx"
	"github.com/godiecl/fivet-grpc/internal/logging"
	"github.com/godiecl/fivet-grpc/internal/server/models"
	"github.com/godiecl/fivet-grpc/internal/server/repositories"
)

// Table is the table personas are stored in.
const Table = "personas"

// Attribute names accepted by GetBy.
const (
	AttrLoginID     = "login_id"
	AttrDisplayName = "display_name"
	AttrEmail       = "email"
	AttrAddress     = "address"
)

// Repository is the persistence contract for personas.
type Repository = repositories.Repository[*models.Persona]

// Mapping describes the personas table. login_id and email are unique over
// all rows, soft-deleted ones included.
var Mapping = repositories.Mapping[*models.Persona]{
	Table: Table,
	New:   func() *models.Persona { return &models.Persona{} },
	Columns: []repositories.Column[*models.Persona]{
		repositories.Text(AttrLoginID, func(p *models.Persona) *string { return &p.LoginID }).Unique(),
		repositories.Text(AttrDisplayName, func(p *models.Persona) *string { return &p.DisplayName }),
		repositories.Text(AttrEmail, func(p *models.Persona) *string { return &p.Email }).Unique(),
		repositories.Text("password_hash", func(p *models.Persona) *string { return &p.PasswordHash }),
		repositories.OptionalText(AttrAddress, func(p *models.Persona) *string { return &p.Address }),
	},
}

// NewRepository returns a persona repository bound to db.
func NewRepository(db dbx.DBTX, logger logging.Logger) (*repositories.SQLRepository[*models.Persona], error) {
	return repositories.New(db, Mapping, logger)
}
