package dbx

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Dialect captures the few places where Postgres and SQLite SQL differ.
type Dialect struct {
	Name        string
	Placeholder sq.PlaceholderFormat
	// LockSuffix is appended to the SELECT of a read-modify-write.
	LockSuffix string
	schema     []string
}

var Postgres = Dialect{
	Name:        "postgres",
	Placeholder: sq.Dollar,
	LockSuffix:  "FOR UPDATE",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS authors (
			id   BIGSERIAL PRIMARY KEY,
			name TEXT,
			age  INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			isbn      TEXT PRIMARY KEY,
			title     TEXT,
			author_id BIGINT REFERENCES authors(id) ON DELETE SET NULL
		)`,
	},
}

var SQLite = Dialect{
	Name:        "sqlite",
	Placeholder: sq.Question,
	schema: []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS authors (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			age  INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			isbn      TEXT PRIMARY KEY,
			title     TEXT,
			author_id INTEGER REFERENCES authors(id) ON DELETE SET NULL
		)`,
	},
}

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "", "postgres", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unsupported db driver %q", driver)
}

// Builder returns a squirrel statement builder using this dialect's placeholders.
func (d Dialect) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder)
}
