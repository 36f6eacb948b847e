package repository

import (
	"context"
	"errors"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/pkg/pg"
	"gorm.io/gorm"
)

var bookTable = TableSpec{
	Columns:      []string{"id", "title", "author", "isbn", "published_year", "copies", "created_at"},
	Searchable:   []string{"title", "author", "isbn"},
	DefaultOrder: "created_at DESC",
}

type BookRepository struct {
	*pg.DB
}

func NewBookRepository(db *pg.DB) *BookRepository {
	return &BookRepository{
		db,
	}
}

func (r *BookRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	entity := toBookEntity(book)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toBookModel(entity), nil
}

func (r *BookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	var entity BookEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toBookModel(&entity), nil
}

// Update overwrites only the fields carried by the request, nil fields
// keep the stored value.
func (r *BookRepository) Update(ctx context.Context, id int64, p model.BookUpdateRequest) (*model.Book, error) {
	var entity BookEntity
	err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if p.Title != nil {
		entity.Title = *p.Title
	}
	if p.Author != nil {
		entity.Author = *p.Author
	}
	if p.ISBN != nil {
		entity.ISBN = p.ISBN
	}
	if p.PublishedYear != nil {
		entity.PublishedYear = p.PublishedYear
	}
	if p.Copies != nil {
		entity.Copies = *p.Copies
	}

	if err := r.Write(ctx).WithContext(ctx).Save(&entity).Error; err != nil {
		return nil, err
	}
	return toBookModel(&entity), nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Where("id = ?", id).Delete(&BookEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Table runs the generic search/sort/paginate pipeline over books.
func (r *BookRepository) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	q.Normalize()

	var total int64
	if err := r.Read(ctx).WithContext(ctx).Model(&BookEntity{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var filtered int64
	countQ := bookTable.ApplySearch(r.Read(ctx).WithContext(ctx).Model(&BookEntity{}), q.Search)
	if err := countQ.Count(&filtered).Error; err != nil {
		return nil, err
	}

	var entities []*BookEntity
	pageQ := bookTable.ApplySearch(r.Read(ctx).WithContext(ctx).Model(&BookEntity{}), q.Search).
		Order(bookTable.OrderClause(q)).
		Offset(q.Start).
		Limit(q.Length)
	if err := pageQ.Find(&entities).Error; err != nil {
		return nil, err
	}

	rows := make([]model.BookRow, len(entities))
	for i, e := range entities {
		rows[i] = e.toRow()
	}

	return &model.TableResult{
		Draw:            q.Draw,
		RecordsTotal:    total,
		RecordsFiltered: filtered,
		Data:            rows,
	}, nil
}
