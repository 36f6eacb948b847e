package model

import (
	"errors"
	"time"
)

type Book struct {
	ID            int64     `json:"id"             db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	Title         string    `json:"title"          db:"title"          gorm:"column:title;not null"`
	Author        string    `json:"author"         db:"author"         gorm:"column:author;not null"`
	ISBN          *string   `json:"isbn"           db:"isbn"           gorm:"column:isbn;unique"`
	PublishedYear *int      `json:"published_year" db:"published_year" gorm:"column:published_year"`
	Copies        int       `json:"copies"         db:"copies"         gorm:"column:copies;default:1"`
	CreatedAt     time.Time `json:"created_at"     db:"created_at"     gorm:"column:created_at;autoCreateTime"`
}

func (Book) TableName() string { return "books" }

// BookCreateRequest is the input for creating a book. ISBN and
// PublishedYear are optional, Copies defaults to 1 when nil.
type BookCreateRequest struct {
	Title         string
	Author        string
	ISBN          *string
	PublishedYear *int
	Copies        *int
}

func (p BookCreateRequest) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	if p.Author == "" {
		return errors.New("author is required")
	}
	return nil
}

// BookUpdateRequest carries partial updates, nil fields keep the
// stored value.
type BookUpdateRequest struct {
	Title         *string
	Author        *string
	ISBN          *string
	PublishedYear *int
	Copies        *int
}
