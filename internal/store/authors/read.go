package authors

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/5w1tchy/library-api/internal/models"
	"github.com/5w1tchy/library-api/internal/store/dbx"
	"github.com/5w1tchy/library-api/internal/store/shared"
)

func (s *Store) selectAuthors() sq.SelectBuilder {
	return s.d.Builder().Select("id", "name", "age").From("authors")
}

func (s *Store) FindByID(ctx context.Context, id int64) (models.Author, error) {
	return s.findByID(ctx, s.db, id, false)
}

func (s *Store) findByID(ctx context.Context, g dbx.Getter, id int64, lock bool) (models.Author, error) {
	b := s.selectAuthors().Where(sq.Eq{"id": id})
	if lock && s.d.LockSuffix != "" {
		b = b.Suffix(s.d.LockSuffix)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return models.Author{}, err
	}
	a, err := scanAuthor(g.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Author{}, shared.ErrNotFound
	}
	return a, err
}

func (s *Store) ExistsByID(ctx context.Context, id int64) (bool, error) {
	b := s.d.Builder().Select("1").From("authors").Where(sq.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")")
	var exists bool
	if err := dbx.Get(ctx, s.db, b, &exists); err != nil {
		return false, err
	}
	return exists, nil
}
