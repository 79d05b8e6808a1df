package books

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/5w1tchy/library-api/internal/models"
	"github.com/5w1tchy/library-api/internal/store/dbx"
	"github.com/5w1tchy/library-api/internal/store/shared"
)

func (s *Store) FindByISBN(ctx context.Context, isbn string) (models.Book, error) {
	return s.findByISBN(ctx, s.db, isbn, false)
}

func (s *Store) findByISBN(ctx context.Context, g dbx.Getter, isbn string, lock bool) (models.Book, error) {
	b := s.selectBooks().Where(sq.Eq{"b.isbn": isbn})
	if lock && s.d.LockSuffix != "" {
		// the authors side of the outer join cannot be locked
		b = b.Suffix(s.d.LockSuffix + " OF b")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return models.Book{}, err
	}
	book, err := scanBook(g.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, shared.ErrNotFound
	}
	return book, err
}

func (s *Store) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	b := s.d.Builder().Select("1").From("books").Where(sq.Eq{"isbn": isbn}).
		Prefix("SELECT EXISTS (").Suffix(")")
	var exists bool
	if err := dbx.Get(ctx, s.db, b, &exists); err != nil {
		return false, err
	}
	return exists, nil
}
