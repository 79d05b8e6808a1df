package books

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/5w1tchy/library-api/internal/models"
	"github.com/5w1tchy/library-api/internal/page"
	"github.com/5w1tchy/library-api/internal/store/dbx"
)

func (s *Store) FindAll(ctx context.Context) ([]models.Book, error) {
	return s.collect(ctx, s.selectBooks().OrderBy("b.isbn ASC"))
}

func (s *Store) FindPage(ctx context.Context, req page.Request) (page.Page[models.Book], error) {
	req = req.Normalize()

	var total int64
	if err := dbx.Get(ctx, s.db, s.d.Builder().Select("COUNT(*)").From("books"), &total); err != nil {
		return page.Page[models.Book]{}, err
	}

	b := s.selectBooks().
		OrderBy(req.OrderBy(SortColumns, "b.isbn ASC")...).
		Limit(uint64(req.Size)).
		Offset(req.Offset())
	out, err := s.collect(ctx, b)
	if err != nil {
		return page.Page[models.Book]{}, err
	}
	return page.New(out, req, total), nil
}

func (s *Store) collect(ctx context.Context, b sq.SelectBuilder) ([]models.Book, error) {
	rows, err := dbx.Query(ctx, s.db, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Book, 0, 16)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
