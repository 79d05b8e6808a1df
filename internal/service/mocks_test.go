package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/5w1tchy/library-api/internal/models"
	"github.com/5w1tchy/library-api/internal/page"
)

type mockAuthorStore struct{ mock.Mock }

func (m *mockAuthorStore) Save(ctx context.Context, a models.Author) (models.Author, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(models.Author), args.Error(1)
}

func (m *mockAuthorStore) Update(ctx context.Context, a models.Author) (models.Author, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(models.Author), args.Error(1)
}

func (m *mockAuthorStore) FindAll(ctx context.Context) ([]models.Author, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]models.Author)
	return out, args.Error(1)
}

func (m *mockAuthorStore) FindPage(ctx context.Context, req page.Request) (page.Page[models.Author], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(page.Page[models.Author]), args.Error(1)
}

func (m *mockAuthorStore) FindByID(ctx context.Context, id int64) (models.Author, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Author), args.Error(1)
}

func (m *mockAuthorStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// UpdateFunc applies fn to the author returned by the expectation, the way
// the SQL store applies it to the locked row.
func (m *mockAuthorStore) UpdateFunc(ctx context.Context, id int64, fn func(*models.Author)) (models.Author, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return models.Author{}, err
	}
	cur := args.Get(0).(models.Author)
	fn(&cur)
	return cur, nil
}

func (m *mockAuthorStore) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAuthorStore) AgeLessThan(ctx context.Context, age int) ([]models.Author, error) {
	args := m.Called(ctx, age)
	out, _ := args.Get(0).([]models.Author)
	return out, args.Error(1)
}

type mockBookStore struct{ mock.Mock }

func (m *mockBookStore) Save(ctx context.Context, b models.Book) (models.Book, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(models.Book), args.Error(1)
}

func (m *mockBookStore) FindAll(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]models.Book)
	return out, args.Error(1)
}

func (m *mockBookStore) FindPage(ctx context.Context, req page.Request) (page.Page[models.Book], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(page.Page[models.Book]), args.Error(1)
}

func (m *mockBookStore) FindByISBN(ctx context.Context, isbn string) (models.Book, error) {
	args := m.Called(ctx, isbn)
	return args.Get(0).(models.Book), args.Error(1)
}

func (m *mockBookStore) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	args := m.Called(ctx, isbn)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookStore) UpdateFunc(ctx context.Context, isbn string, fn func(*models.Book)) (models.Book, error) {
	args := m.Called(ctx, isbn)
	if err := args.Error(1); err != nil {
		return models.Book{}, err
	}
	cur := args.Get(0).(models.Book)
	fn(&cur)
	return cur, nil
}

func (m *mockBookStore) DeleteByISBN(ctx context.Context, isbn string) error {
	return m.Called(ctx, isbn).Error(0)
}

func ptr[T any](v T) *T { return &v }
