package authors

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/5w1tchy/library-api/internal/models"
	"github.com/5w1tchy/library-api/internal/store/dbx"
	"github.com/5w1tchy/library-api/internal/store/shared"
)

// Save inserts a new author when a.ID is zero and returns it with the
// generated id. Otherwise it writes every column of the row with that id,
// inserting it if missing.
func (s *Store) Save(ctx context.Context, a models.Author) (models.Author, error) {
	if a.ID == 0 {
		b := s.d.Builder().Insert("authors").
			Columns("name", "age").
			Values(shared.Arg(a.Name), shared.Arg(a.Age)).
			Suffix("RETURNING id")
		if err := dbx.Get(ctx, s.db, b, &a.ID); err != nil {
			return models.Author{}, err
		}
		return a, nil
	}

	b := s.d.Builder().Insert("authors").
		Columns("id", "name", "age").
		Values(a.ID, shared.Arg(a.Name), shared.Arg(a.Age)).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, age = EXCLUDED.age")
	if _, err := dbx.Exec(ctx, s.db, b); err != nil {
		return models.Author{}, err
	}
	return a, nil
}

// Update overwrites name and age of an existing author. It never inserts and
// returns shared.ErrNotFound when no row has a.ID.
func (s *Store) Update(ctx context.Context, a models.Author) (models.Author, error) {
	b := s.d.Builder().Update("authors").
		Set("name", shared.Arg(a.Name)).
		Set("age", shared.Arg(a.Age)).
		Where(sq.Eq{"id": a.ID})
	res, err := dbx.Exec(ctx, s.db, b)
	if err != nil {
		return models.Author{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Author{}, err
	}
	if n == 0 {
		return models.Author{}, shared.ErrNotFound
	}
	return a, nil
}

// UpdateFunc loads the author with id, lets fn modify it and writes it back,
// all in one transaction. It returns shared.ErrNotFound if there is no such
// author. fn cannot change the id.
func (s *Store) UpdateFunc(ctx context.Context, id int64, fn func(*models.Author)) (models.Author, error) {
	var out models.Author
	err := dbx.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		cur, err := s.findByID(ctx, tx, id, true)
		if err != nil {
			return err
		}
		fn(&cur)
		cur.ID = id

		b := s.d.Builder().Update("authors").
			Set("name", shared.Arg(cur.Name)).
			Set("age", shared.Arg(cur.Age)).
			Where(sq.Eq{"id": id})
		if _, err := dbx.Exec(ctx, tx, b); err != nil {
			return err
		}
		out = cur
		return nil
	})
	if err != nil {
		return models.Author{}, err
	}
	return out, nil
}

// DeleteByID removes the author. A missing id is not an error.
func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	_, err := dbx.Exec(ctx, s.db, s.d.Builder().Delete("authors").Where(sq.Eq{"id": id}))
	return err
}
