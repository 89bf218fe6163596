package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/rules"
)

// AuthorRequest: payload for creating or renaming an author
type AuthorRequest struct {
	Name string `json:"name"`
}

func (r AuthorRequest) Validate() error {
	return rules.Collect(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	))
}

// BookRequest: full book payload, author is the author id
type BookRequest struct {
	Title           string `json:"title"`
	PublicationYear *int   `json:"publication_year"`
	Author          int64  `json:"author"`
}

// ValidateAt checks the payload against the clock now.
func (r BookRequest) ValidateAt(now func() time.Time) error {
	return rules.Collect(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.PublicationYear, validation.NotNil, rules.NotInFuture(now)),
		validation.Field(&r.Author, validation.Required, validation.Min(int64(1))),
	))
}

func (r BookRequest) Validate() error {
	return r.ValidateAt(time.Now)
}

// Model builds the row for the payload; year must have been validated.
func (r BookRequest) Model() *models.Book {
	b := &models.Book{Title: r.Title, AuthorID: r.Author}
	if r.PublicationYear != nil {
		b.PublicationYear = *r.PublicationYear
	}
	return b
}

// BookPatch: partial book update
type BookPatch struct {
	Title           *string `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	Author          *int64  `json:"author"`
}

// Merge lays the present fields over the current book.
func (p BookPatch) Merge(current *models.Book) BookRequest {
	year := current.PublicationYear
	req := BookRequest{Title: current.Title, PublicationYear: &year, Author: current.AuthorID}
	if p.Title != nil {
		req.Title = *p.Title
	}
	if p.PublicationYear != nil {
		req.PublicationYear = p.PublicationYear
	}
	if p.Author != nil {
		req.Author = *p.Author
	}
	return req
}

// ShelfBookRequest: bookshelf book payload
type ShelfBookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear *int   `json:"publication_year"`
}

func (r ShelfBookRequest) Validate() error {
	return rules.Collect(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.PublicationYear, validation.NotNil, rules.ShelfYear()),
	))
}

func (r ShelfBookRequest) Model() *models.ShelfBook {
	b := &models.ShelfBook{Title: r.Title, Author: r.Author}
	if r.PublicationYear != nil {
		b.PublicationYear = *r.PublicationYear
	}
	return b
}
