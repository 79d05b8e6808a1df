package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/5w1tchy/library-api/internal/models"
	"github.com/5w1tchy/library-api/internal/page"
)

type BookStore interface {
	Save(ctx context.Context, b models.Book) (models.Book, error)
	FindAll(ctx context.Context) ([]models.Book, error)
	FindPage(ctx context.Context, req page.Request) (page.Page[models.Book], error)
	FindByISBN(ctx context.Context, isbn string) (models.Book, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	UpdateFunc(ctx context.Context, isbn string, fn func(*models.Book)) (models.Book, error)
	DeleteByISBN(ctx context.Context, isbn string) error
}

type Books struct {
	store BookStore
}

func NewBooks(store BookStore) *Books { return &Books{store: store} }

// Save stores b under isbn, replacing whatever ISBN the body carried.
func (s *Books) Save(ctx context.Context, isbn string, b models.Book) (models.Book, error) {
	b.ISBN = isbn
	saved, err := s.store.Save(ctx, b)
	if err != nil {
		return models.Book{}, fmt.Errorf("save book %s: %w", isbn, err)
	}
	return saved, nil
}

func (s *Books) FindAll(ctx context.Context) ([]models.Book, error) {
	out, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return out, nil
}

func (s *Books) FindPage(ctx context.Context, req page.Request) (page.Page[models.Book], error) {
	p, err := s.store.FindPage(ctx, req)
	if err != nil {
		return page.Page[models.Book]{}, fmt.Errorf("list books: %w", err)
	}
	return p, nil
}

func (s *Books) FindOne(ctx context.Context, isbn string) (b models.Book, ok bool, err error) {
	b, err = s.store.FindByISBN(ctx, isbn)
	if errors.Is(translate(err), ErrNotFound) {
		return models.Book{}, false, nil
	}
	if err != nil {
		return models.Book{}, false, fmt.Errorf("get book %s: %w", isbn, err)
	}
	return b, true, nil
}

func (s *Books) IsPresent(ctx context.Context, isbn string) (bool, error) {
	ok, err := s.store.ExistsByISBN(ctx, isbn)
	if err != nil {
		return false, fmt.Errorf("check book %s: %w", isbn, err)
	}
	return ok, nil
}

// PartialUpdate overwrites title and/or author reference when set on patch.
func (s *Books) PartialUpdate(ctx context.Context, isbn string, patch models.Book) (models.Book, error) {
	out, err := s.store.UpdateFunc(ctx, isbn, func(cur *models.Book) {
		mergeBook(cur, patch)
	})
	if err != nil {
		return models.Book{}, fmt.Errorf("patch book %s: %w", isbn, translate(err))
	}
	return out, nil
}

func (s *Books) Delete(ctx context.Context, isbn string) error {
	if err := s.store.DeleteByISBN(ctx, isbn); err != nil {
		return fmt.Errorf("delete book %s: %w", isbn, err)
	}
	return nil
}

func mergeBook(dst *models.Book, patch models.Book) {
	if patch.Title != nil {
		dst.Title = patch.Title
	}
	if patch.Author != nil {
		dst.Author = patch.Author
	}
}
