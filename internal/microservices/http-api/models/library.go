package models

type Library struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:255;not null;index"`

	// associations
	Books     []Book     `json:"books,omitempty" gorm:"many2many:library_books;constraint:OnDelete:CASCADE;"`
	Librarian *Librarian `json:"librarian,omitempty" gorm:"foreignKey:LibraryID;constraint:OnDelete:CASCADE;"`
}

func (Library) TableName() string {
	return "libraries"
}

// Librarian runs exactly one library; library_id is unique.
type Librarian struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string `json:"name" gorm:"size:255;not null"`
	LibraryID int64  `json:"library_id" gorm:"uniqueIndex;not null"`

	Library *Library `json:"library,omitempty" gorm:"foreignKey:LibraryID"`
}

func (Librarian) TableName() string {
	return "librarians"
}

// LibraryBook is the library_books join row.
type LibraryBook struct {
	LibraryID int64 `json:"library_id" gorm:"primaryKey"`
	BookID    int64 `json:"book_id" gorm:"primaryKey"`
}

func (LibraryBook) TableName() string {
	return "library_books"
}
