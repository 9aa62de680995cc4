package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookModel struct {
	BookID       uuid.UUID `json:"book_id" gorm:"column:book_id;type:uuid;primaryKey"`
	BookSchoolID uuid.UUID `json:"book_school_id" gorm:"column:book_school_id;type:uuid;not null;index:idx_books_school"`

	BookTitle  string  `json:"book_title" gorm:"column:book_title;type:varchar(200);not null"`
	BookAuthor *string `json:"book_author,omitempty" gorm:"column:book_author;type:varchar(120)"`
	BookISBN   *string `json:"book_isbn,omitempty" gorm:"column:book_isbn;type:varchar(20)"`

	BookCopies    int `json:"book_copies" gorm:"column:book_copies;not null;default:1"`
	BookAvailable int `json:"book_available" gorm:"column:book_available;not null;default:1"`

	BookCreatedAt time.Time      `json:"book_created_at" gorm:"column:book_created_at;not null;autoCreateTime"`
	BookUpdatedAt time.Time      `json:"book_updated_at" gorm:"column:book_updated_at;not null;autoUpdateTime"`
	BookDeletedAt gorm.DeletedAt `json:"book_deleted_at,omitempty" gorm:"column:book_deleted_at;index"`
}

func (BookModel) TableName() string { return "library_books" }

func (m *BookModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookID == uuid.Nil {
		m.BookID = uuid.New()
	}
	return nil
}
