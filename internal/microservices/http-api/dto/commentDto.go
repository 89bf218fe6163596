package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookhub/internal/rules"
)

// CommentRequest: payload for creating or editing a comment
type CommentRequest struct {
	Content string `json:"content"`
}

func (r CommentRequest) Validate() error {
	return rules.Collect(validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 5000)),
	))
}
