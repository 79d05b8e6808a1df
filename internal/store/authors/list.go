package authors

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/5w1tchy/library-api/internal/models"
	"github.com/5w1tchy/library-api/internal/page"
	"github.com/5w1tchy/library-api/internal/store/dbx"
)

func (s *Store) FindAll(ctx context.Context) ([]models.Author, error) {
	return s.collect(ctx, s.selectAuthors().OrderBy("id ASC"))
}

func (s *Store) FindPage(ctx context.Context, req page.Request) (page.Page[models.Author], error) {
	req = req.Normalize()

	var total int64
	if err := dbx.Get(ctx, s.db, s.d.Builder().Select("COUNT(*)").From("authors"), &total); err != nil {
		return page.Page[models.Author]{}, err
	}

	b := s.selectAuthors().
		OrderBy(req.OrderBy(SortColumns, "id ASC")...).
		Limit(uint64(req.Size)).
		Offset(req.Offset())
	out, err := s.collect(ctx, b)
	if err != nil {
		return page.Page[models.Author]{}, err
	}
	return page.New(out, req, total), nil
}

// AgeLessThan returns authors strictly younger than age, in id order.
// Authors with no age recorded never match.
func (s *Store) AgeLessThan(ctx context.Context, age int) ([]models.Author, error) {
	return s.collect(ctx, s.selectAuthors().Where(sq.Lt{"age": age}).OrderBy("id ASC"))
}

func (s *Store) collect(ctx context.Context, b sq.SelectBuilder) ([]models.Author, error) {
	rows, err := dbx.Query(ctx, s.db, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Author, 0, 16)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
