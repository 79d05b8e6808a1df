package apperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Map well-known constraint names to fields (extend as you add constraints)
var constraintField = map[string]string{
	"authors_pkey":         "id",
	"books_pkey":           "isbn",
	"books_author_id_fkey": "author",
}

// Guess a field from a column name present in PG error detail
func fieldFromDetail(detail string) string {
	for _, k := range []string{"author_id", "isbn", "title", "name", "age", "id"} {
		if strings.Contains(detail, k) {
			if k == "author_id" {
				return "author"
			}
			return k
		}
	}
	return ""
}

func fieldFromConstraint(c string) string {
	if f, ok := constraintField[c]; ok {
		return f
	}
	return ""
}

// FromPG maps a *pgconn.PgError to a Problem. Returns (Problem, true) if mapped.
func FromPG(err error) (Problem, bool) {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return Problem{}, false
	}

	p := Problem{
		Title:  "Database error",
		Status: http.StatusInternalServerError,
	}

	field := fieldFromConstraint(pg.ConstraintName)
	if field == "" && pg.Detail != "" {
		field = fieldFromDetail(pg.Detail)
	}

	switch pg.Code {
	case "23505": // unique_violation
		p = conflict(field, "unique", "value already exists")
	case "23503": // foreign_key_violation
		p = conflict(field, "fk", "referenced record does not exist")
	case "23502": // not_null_violation
		if field == "" {
			field = pg.ColumnName
		}
		p = badRequest(field, "not_null", "required field is missing")
	case "22P02": // invalid_text_representation
		p = badRequest(field, "invalid", "invalid format")
	case "22001": // string_data_right_truncation
		p = badRequest(field, "too_long", "value is too long")
	case "22003": // numeric_value_out_of_range
		p = badRequest(field, "out_of_range", "value is out of range")
	case "40001": // serialization_failure
		p = Problem{Status: http.StatusConflict, Title: "Conflict", Detail: "transaction conflict, please retry", Retryable: true}
	case "40P01": // deadlock_detected
		p = Problem{Status: http.StatusConflict, Title: "Conflict", Detail: "deadlock detected, please retry", Retryable: true}
	}
	return p, true
}

func conflict(field, code, msg string) Problem {
	if field == "" {
		field = "resource"
	}
	return Problem{
		Status:      http.StatusConflict,
		Title:       "Conflict",
		FieldErrors: []FieldError{{Field: field, Code: code, Message: msg}},
	}
}

func badRequest(field, code, msg string) Problem {
	if field == "" {
		field = "field"
	}
	return Problem{
		Status:      http.StatusBadRequest,
		Title:       "Bad Request",
		FieldErrors: []FieldError{{Field: field, Code: code, Message: msg}},
	}
}

// HandleDBError maps err to a Problem and writes it. Returns true if handled.
func HandleDBError(w http.ResponseWriter, r *http.Request, err error, fallbackTitle string) bool {
	if err == nil {
		return false
	}
	if p, ok := FromPG(err); ok {
		Write(w, r, p)
		return true
	}
	if p, ok := FromSQLite(err); ok {
		Write(w, r, p)
		return true
	}
	Write(w, r, Problem{Status: http.StatusInternalServerError, Title: fallbackTitle})
	return true
}
