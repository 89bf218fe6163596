package models

type Book struct {
	ID              int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string `json:"title" gorm:"size:255;not null"`
	PublicationYear int    `json:"publication_year" gorm:"not null;index"`
	AuthorID        int64  `json:"author_id" gorm:"not null;index"`

	// associations
	Author    *Author   `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Libraries []Library `json:"libraries,omitempty" gorm:"many2many:library_books;constraint:OnDelete:CASCADE;"`
}

func (Book) TableName() string {
	return "books"
}

// ShelfBook is the bookshelf app's standalone book; author is plain text.
type ShelfBook struct {
	ID              int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string `json:"title" gorm:"size:200;not null"`
	Author          string `json:"author" gorm:"size:100;not null"`
	PublicationYear int    `json:"publication_year" gorm:"not null"`
}

func (ShelfBook) TableName() string {
	return "bookshelf_books"
}
