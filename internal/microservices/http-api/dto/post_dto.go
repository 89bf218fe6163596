package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookhub/internal/rules"
)

// PostRequest: blog post payload. On update a missing tags field keeps the
// current tags and an empty list clears them.
type PostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (r PostRequest) Validate() error {
	return rules.Collect(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Tags, validation.Each(validation.Required, validation.Length(1, 100), rules.Sluggable())),
	))
}
