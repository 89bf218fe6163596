package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookhub/internal/rules"
)

// LibraryRequest: library payload; books are optional initial holdings
type LibraryRequest struct {
	Name  string  `json:"name"`
	Books []int64 `json:"books"`
}

func (r LibraryRequest) Validate() error {
	return rules.Collect(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Books, validation.Each(validation.Required, validation.Min(int64(1)))),
	))
}

// HoldingsRequest: books to add to or remove from a library
type HoldingsRequest struct {
	Books []int64 `json:"books"`
}

func (r HoldingsRequest) Validate() error {
	return rules.Collect(validation.ValidateStruct(&r,
		validation.Field(&r.Books, validation.Required, validation.Each(validation.Required, validation.Min(int64(1)))),
	))
}

// LibrarianRequest: the librarian of one library
type LibrarianRequest struct {
	Name string `json:"name"`
}

func (r LibrarianRequest) Validate() error {
	return rules.Collect(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	))
}
