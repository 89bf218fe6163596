package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/rules"
	"bookhub/internal/shared"
)

// UpdateProfileRequest changes only the fields that are present.
type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

func (r UpdateProfileRequest) Validate() error {
	return rules.Collect(validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.NilOrNotEmpty, validation.Length(3, 150),
			validation.Match(rules.UsernamePattern).Error("Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.EmailFormat),
		validation.Field(&r.FirstName, validation.Length(0, 150)),
		validation.Field(&r.LastName, validation.Length(0, 150)),
		validation.Field(&r.Bio, validation.Length(0, 2000)),
	))
}

// ApplyTo copies the present fields onto user and returns the new bio.
func (r UpdateProfileRequest) ApplyTo(user *models.User) string {
	if r.Username != nil {
		user.Username = *r.Username
	}
	if r.Email != nil {
		user.Email = *r.Email
	}
	if r.FirstName != nil {
		user.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		user.LastName = *r.LastName
	}
	bio := ""
	if user.Profile != nil {
		bio = user.Profile.Bio
	}
	if r.Bio != nil {
		bio = *r.Bio
	}
	return bio
}

// AccessRequest sets the role and bookshelf capabilities of a user.
type AccessRequest struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func (r AccessRequest) Validate() error {
	return rules.Collect(validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Required,
			validation.In(shared.RoleAdmin, shared.RoleLibrarian, shared.RoleMember)),
		validation.Field(&r.Permissions, validation.Each(validation.Required, validation.Length(1, 100))),
	))
}

// RoleDashboard is the body of the role views.
type RoleDashboard struct {
	Role    string           `json:"role"`
	Message string           `json:"message"`
	Users   map[string]int64 `json:"users_by_role"`
}
