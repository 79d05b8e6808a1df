// Package books is the SQL data-access object for the books table. Reads
// join the referenced author so callers get it hydrated.
package books

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/5w1tchy/library-api/internal/models"
	"github.com/5w1tchy/library-api/internal/store/dbx"
	"github.com/5w1tchy/library-api/internal/store/shared"
)

// SortColumns maps the public sort properties to columns.
var SortColumns = map[string]string{
	"isbn":   "b.isbn",
	"title":  "b.title",
	"author": "b.author_id",
}

type Store struct {
	db *sql.DB
	d  dbx.Dialect
}

func New(db *sql.DB, d dbx.Dialect) *Store { return &Store{db: db, d: d} }

func (s *Store) selectBooks() sq.SelectBuilder {
	return s.d.Builder().
		Select("b.isbn", "b.title", "a.id", "a.name", "a.age").
		From("books b").
		LeftJoin("authors a ON a.id = b.author_id")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (models.Book, error) {
	var (
		b        models.Book
		title    sql.NullString
		authorID sql.NullInt64
		name     sql.NullString
		age      sql.NullInt64
	)
	if err := row.Scan(&b.ISBN, &title, &authorID, &name, &age); err != nil {
		return models.Book{}, err
	}
	b.Title = shared.StringPtr(title)
	if authorID.Valid {
		b.Author = &models.Author{
			ID:   authorID.Int64,
			Name: shared.StringPtr(name),
			Age:  shared.IntPtr(age),
		}
	}
	return b, nil
}

// authorRef is the author_id column value for b.
func authorRef(b models.Book) any {
	if b.Author == nil || b.Author.ID == 0 {
		return nil
	}
	return b.Author.ID
}
