package apperr

import (
	"errors"
	"net/http"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// FromSQLite maps constraint failures from the embedded store the same way
// FromPG maps them for Postgres.
func FromSQLite(err error) (Problem, bool) {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return Problem{}, false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return conflict("author", "fk", "referenced record does not exist"), true
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return conflict("", "unique", "value already exists"), true
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return badRequest("", "not_null", "required field is missing"), true
	}
	return Problem{Status: http.StatusInternalServerError, Title: "Database error"}, true
}
