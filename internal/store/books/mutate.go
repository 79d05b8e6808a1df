package books

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/5w1tchy/library-api/internal/models"
	"github.com/5w1tchy/library-api/internal/store/dbx"
	"github.com/5w1tchy/library-api/internal/store/shared"
)

// Save upserts the book by ISBN and returns the stored row with its author
// loaded. An author with an id is referenced as is and must exist; an author
// without one is inserted first, in the same transaction.
func (s *Store) Save(ctx context.Context, book models.Book) (models.Book, error) {
	var out models.Book
	err := dbx.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.insertAuthor(ctx, tx, &book); err != nil {
			return err
		}
		b := s.d.Builder().Insert("books").
			Columns("isbn", "title", "author_id").
			Values(book.ISBN, shared.Arg(book.Title), authorRef(book)).
			Suffix("ON CONFLICT (isbn) DO UPDATE SET title = EXCLUDED.title, author_id = EXCLUDED.author_id")
		if _, err := dbx.Exec(ctx, tx, b); err != nil {
			return err
		}

		var err error
		out, err = s.findByISBN(ctx, tx, book.ISBN, false)
		return err
	})
	if err != nil {
		return models.Book{}, err
	}
	return out, nil
}

// insertAuthor stores b.Author when it has no id yet and points b at the new row.
func (s *Store) insertAuthor(ctx context.Context, tx *sql.Tx, b *models.Book) error {
	if b.Author == nil || b.Author.ID != 0 {
		return nil
	}
	a := *b.Author
	q := s.d.Builder().Insert("authors").
		Columns("name", "age").
		Values(shared.Arg(a.Name), shared.Arg(a.Age)).
		Suffix("RETURNING id")
	if err := dbx.Get(ctx, tx, q, &a.ID); err != nil {
		return err
	}
	b.Author = &a
	return nil
}

// UpdateFunc loads the book, lets fn modify it and writes title and author
// back in one transaction. Returns shared.ErrNotFound for an unknown ISBN.
func (s *Store) UpdateFunc(ctx context.Context, isbn string, fn func(*models.Book)) (models.Book, error) {
	var out models.Book
	err := dbx.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		cur, err := s.findByISBN(ctx, tx, isbn, true)
		if err != nil {
			return err
		}
		fn(&cur)
		cur.ISBN = isbn
		if err := s.insertAuthor(ctx, tx, &cur); err != nil {
			return err
		}

		b := s.d.Builder().Update("books").
			Set("title", shared.Arg(cur.Title)).
			Set("author_id", authorRef(cur)).
			Where(sq.Eq{"isbn": isbn})
		if _, err := dbx.Exec(ctx, tx, b); err != nil {
			return err
		}

		out, err = s.findByISBN(ctx, tx, isbn, false)
		return err
	})
	if err != nil {
		return models.Book{}, err
	}
	return out, nil
}

// DeleteByISBN removes the book. A missing ISBN is not an error.
func (s *Store) DeleteByISBN(ctx context.Context, isbn string) error {
	_, err := dbx.Exec(ctx, s.db, s.d.Builder().Delete("books").Where(sq.Eq{"isbn": isbn}))
	return err
}
