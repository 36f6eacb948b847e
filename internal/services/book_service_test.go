package services

import (
	"context"
	"testing"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/internal/repository"
	"github.com/sambathreasmey/library-management-system/test/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	args := m.Called(ctx, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepo) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepo) Update(ctx context.Context, id int64, p model.BookUpdateRequest) (*model.Book, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepo) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TableResult), args.Error(1)
}

func TestBookService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("copies defaults to one", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := NewBookService(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(b *model.Book) bool {
			return b.Title == "Dune" && b.Copies == 1
		})).Return(&model.Book{ID: 1, Title: "Dune", Copies: 1}, nil)

		book, err := svc.Create(ctx, fixtures.NewBookCreateRequest("Dune", "Frank Herbert"))
		require.NoError(t, err)
		assert.Equal(t, 1, book.Copies)
	})

	t.Run("explicit copies win", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := NewBookService(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(b *model.Book) bool {
			return b.Copies == 3
		})).Return(&model.Book{ID: 2, Copies: 3}, nil)

		p := fixtures.NewBookCreateRequest("Dune", "Frank Herbert")
		p.Copies = fixtures.Ptr(3)
		_, err := svc.Create(ctx, p)
		require.NoError(t, err)
	})

	t.Run("missing title", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := NewBookService(repo)

		_, err := svc.Create(ctx, model.BookCreateRequest{Author: "Frank Herbert"})
		assert.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestBookService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("empty title pointer rejected", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := NewBookService(repo)

		empty := ""
		_, err := svc.Update(ctx, 1, model.BookUpdateRequest{Title: &empty})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("nil fields pass through", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := NewBookService(repo)

		author := "Herbert"
		repo.On("Update", mock.Anything, int64(1), mock.Anything).
			Return(&model.Book{ID: 1, Author: author}, nil)

		book, err := svc.Update(ctx, 1, model.BookUpdateRequest{Author: &author})
		require.NoError(t, err)
		assert.Equal(t, author, book.Author)
	})

	t.Run("unknown id maps to not found", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := NewBookService(repo)

		repo.On("Update", mock.Anything, int64(9), mock.Anything).Return(nil, repository.ErrNotFound)
		_, err := svc.Update(ctx, 9, model.BookUpdateRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBookService_Get(t *testing.T) {
	repo := new(MockBookRepo)
	svc := NewBookService(repo)

	repo.On("GetByID", mock.Anything, int64(5)).Return(fixtures.BookWithID(5), nil)

	book, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), book.ID)
}

func TestBookService_Delete(t *testing.T) {
	repo := new(MockBookRepo)
	svc := NewBookService(repo)

	repo.On("Delete", mock.Anything, int64(9)).Return(repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 9), ErrNotFound)
}
