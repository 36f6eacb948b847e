package repository

import (
	"strconv"
	"time"

	"github.com/sambathreasmey/library-management-system/internal/model"
)

type BookEntity struct {
	ID            int64     `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	Title         string    `db:"title"          gorm:"column:title;not null"`
	Author        string    `db:"author"         gorm:"column:author;not null"`
	ISBN          *string   `db:"isbn"           gorm:"column:isbn;unique"`
	PublishedYear *int      `db:"published_year" gorm:"column:published_year"`
	Copies        int       `db:"copies"         gorm:"column:copies;not null;default:1"`
	CreatedAt     time.Time `db:"created_at"     gorm:"column:created_at;autoCreateTime"`
}

func (BookEntity) TableName() string {
	return "books"
}

func toBookEntity(m *model.Book) *BookEntity {
	if m == nil {
		return nil
	}
	return &BookEntity{
		ID:            m.ID,
		Title:         m.Title,
		Author:        m.Author,
		ISBN:          m.ISBN,
		PublishedYear: m.PublishedYear,
		Copies:        m.Copies,
		CreatedAt:     m.CreatedAt,
	}
}

func toBookModel(e *BookEntity) *model.Book {
	if e == nil {
		return nil
	}
	return &model.Book{
		ID:            e.ID,
		Title:         e.Title,
		Author:        e.Author,
		ISBN:          e.ISBN,
		PublishedYear: e.PublishedYear,
		Copies:        e.Copies,
		CreatedAt:     e.CreatedAt,
	}
}

func (e *BookEntity) toRow() model.BookRow {
	row := model.BookRow{
		ID:        e.ID,
		Title:     e.Title,
		Author:    e.Author,
		Copies:    e.Copies,
		CreatedAt: e.CreatedAt.Format("2006-01-02 15:04"),
	}
	if e.ISBN != nil {
		row.ISBN = *e.ISBN
	}
	if e.PublishedYear != nil {
		row.PublishedYear = strconv.Itoa(*e.PublishedYear)
	}
	return row
}
