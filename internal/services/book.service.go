package services

import (
	"context"
	"errors"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/internal/repository"
)

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, id int64, p model.BookUpdateRequest) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
	Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error)
}

type BookService struct {
	books BookRepository
}

func NewBookService(books BookRepository) *BookService {
	return &BookService{
		books: books,
	}
}

func (s *BookService) Create(ctx context.Context, p model.BookCreateRequest) (*model.Book, error) {
	if err := p.Validate(); err != nil {
		return nil, validationErr(err)
	}

	copies := 1
	if p.Copies != nil {
		copies = *p.Copies
	}

	return s.books.Create(ctx, &model.Book{
		Title:         p.Title,
		Author:        p.Author,
		ISBN:          p.ISBN,
		PublishedYear: p.PublishedYear,
		Copies:        copies,
	})
}

func (s *BookService) Get(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return book, nil
}

func (s *BookService) Update(ctx context.Context, id int64, p model.BookUpdateRequest) (*model.Book, error) {
	if p.Title != nil && *p.Title == "" {
		return nil, validationErr(errors.New("title cannot be empty"))
	}
	if p.Author != nil && *p.Author == "" {
		return nil, validationErr(errors.New("author cannot be empty"))
	}

	book, err := s.books.Update(ctx, id, p)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id int64) error {
	return mapRepoErr(s.books.Delete(ctx, id))
}

func (s *BookService) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	return s.books.Table(ctx, q)
}

func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrInUse):
		return ErrInUse
	default:
		return err
	}
}
