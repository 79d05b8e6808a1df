package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/5w1tchy/library-api/internal/models"
	"github.com/5w1tchy/library-api/internal/page"
)

type AuthorStore interface {
	Save(ctx context.Context, a models.Author) (models.Author, error)
	FindAll(ctx context.Context) ([]models.Author, error)
	FindPage(ctx context.Context, req page.Request) (page.Page[models.Author], error)
	FindByID(ctx context.Context, id int64) (models.Author, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, a models.Author) (models.Author, error)
	UpdateFunc(ctx context.Context, id int64, fn func(*models.Author)) (models.Author, error)
	DeleteByID(ctx context.Context, id int64) error
	AgeLessThan(ctx context.Context, age int) ([]models.Author, error)
}

type Authors struct {
	store AuthorStore
}

func NewAuthors(store AuthorStore) *Authors { return &Authors{store: store} }

// Save inserts a (ID == 0) or overwrites the author with a.ID.
func (s *Authors) Save(ctx context.Context, a models.Author) (models.Author, error) {
	saved, err := s.store.Save(ctx, a)
	if err != nil {
		return models.Author{}, fmt.Errorf("save author: %w", err)
	}
	return saved, nil
}

// Replace overwrites every field of the existing author a.ID. It returns
// ErrNotFound instead of creating a missing author.
func (s *Authors) Replace(ctx context.Context, a models.Author) (models.Author, error) {
	out, err := s.store.Update(ctx, a)
	if err != nil {
		return models.Author{}, fmt.Errorf("replace author %d: %w", a.ID, translate(err))
	}
	return out, nil
}

func (s *Authors) FindAll(ctx context.Context) ([]models.Author, error) {
	out, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return out, nil
}

func (s *Authors) FindPage(ctx context.Context, req page.Request) (page.Page[models.Author], error) {
	p, err := s.store.FindPage(ctx, req)
	if err != nil {
		return page.Page[models.Author]{}, fmt.Errorf("list authors: %w", err)
	}
	return p, nil
}

// FindOne reports ok=false when there is no author with id.
func (s *Authors) FindOne(ctx context.Context, id int64) (a models.Author, ok bool, err error) {
	a, err = s.store.FindByID(ctx, id)
	if errors.Is(translate(err), ErrNotFound) {
		return models.Author{}, false, nil
	}
	if err != nil {
		return models.Author{}, false, fmt.Errorf("get author %d: %w", id, err)
	}
	return a, true, nil
}

func (s *Authors) IsPresent(ctx context.Context, id int64) (bool, error) {
	ok, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check author %d: %w", id, err)
	}
	return ok, nil
}

// PartialUpdate copies every non-nil field of patch onto the stored author
// and persists the result. An empty string is a value and overwrites.
// Returns ErrNotFound when the author is gone.
func (s *Authors) PartialUpdate(ctx context.Context, id int64, patch models.Author) (models.Author, error) {
	out, err := s.store.UpdateFunc(ctx, id, func(cur *models.Author) {
		mergeAuthor(cur, patch)
	})
	if err != nil {
		return models.Author{}, fmt.Errorf("patch author %d: %w", id, translate(err))
	}
	return out, nil
}

func (s *Authors) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete author %d: %w", id, err)
	}
	return nil
}

func (s *Authors) AgeLessThan(ctx context.Context, age int) ([]models.Author, error) {
	out, err := s.store.AgeLessThan(ctx, age)
	if err != nil {
		return nil, fmt.Errorf("authors younger than %d: %w", age, err)
	}
	return out, nil
}

func mergeAuthor(dst *models.Author, patch models.Author) {
	if patch.Name != nil {
		dst.Name = patch.Name
	}
	if patch.Age != nil {
		dst.Age = patch.Age
	}
}
