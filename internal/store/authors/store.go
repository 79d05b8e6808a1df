// Package authors is the SQL data-access object for the authors table.
package authors

import (
	"database/sql"

	"github.com/5w1tchy/library-api/internal/models"
	"github.com/5w1tchy/library-api/internal/store/dbx"
	"github.com/5w1tchy/library-api/internal/store/shared"
)

// SortColumns maps the public sort properties to columns.
var SortColumns = map[string]string{
	"id":   "id",
	"name": "name",
	"age":  "age",
}

type Store struct {
	db *sql.DB
	d  dbx.Dialect
}

func New(db *sql.DB, d dbx.Dialect) *Store { return &Store{db: db, d: d} }

type scanner interface {
	Scan(dest ...any) error
}

func scanAuthor(row scanner) (models.Author, error) {
	var (
		a    models.Author
		name sql.NullString
		age  sql.NullInt64
	)
	if err := row.Scan(&a.ID, &name, &age); err != nil {
		return models.Author{}, err
	}
	a.Name = shared.StringPtr(name)
	a.Age = shared.IntPtr(age)
	return a, nil
}
