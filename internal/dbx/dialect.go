package dbx

// Dialect captures what differs between the supported storage engines.
// Queries themselves are written once with $N placeholders, which both
// PostgreSQL and SQLite accept.
type Dialect struct {
	// Name identifies the engine ("postgres" or "sqlite").
	Name string
	// DriverName is the database/sql driver registered for the engine.
	DriverName string
	// IdentityColumn is the DDL for an auto-assigned integer primary key.
	IdentityColumn string
}

var (
	Postgres = Dialect{
		Name:           "postgres",
		DriverName:     "pgx",
		IdentityColumn: "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY",
	}

	SQLite = Dialect{
		Name:           "sqlite",
		DriverName:     "sqlite",
		IdentityColumn: "INTEGER PRIMARY KEY AUTOINCREMENT",
	}
)
