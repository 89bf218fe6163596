package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/policy"
	"bookhub/internal/shared"
)

type UserService interface {
	Me(ctx context.Context, actor policy.Actor) (*models.User, error)
	UpdateProfile(ctx context.Context, actor policy.Actor, req dto.UpdateProfileRequest) (*models.User, error)
	UpdateAccess(ctx context.Context, id string, req dto.AccessRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
	Dashboard(ctx context.Context, role string) (*dto.RoleDashboard, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Me(ctx context.Context, actor policy.Actor) (*models.User, error) {
	if !actor.Authenticated() {
		return nil, &shared.AuthDenied{Reason: shared.ReasonUnauthenticated}
	}
	return s.users.FindByID(ctx, actor.UserID)
}

// UpdateProfile edits the caller's own account and bio.
func (s *userService) UpdateProfile(ctx context.Context, actor policy.Actor, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Me(ctx, actor)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		user.Profile = &models.Profile{UserID: user.ID}
	}
	if err := policy.Self.Authorize(actor, policy.OpUpdate, shared.KindProfile, user.Profile).Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bio := req.ApplyTo(user)
	if err := s.users.UpdateProfile(ctx, user, bio); err != nil {
		return nil, duplicateUser(err)
	}
	user.Profile.Bio = bio
	return user, nil
}

func (s *userService) UpdateAccess(ctx context.Context, id string, req dto.AccessRequest) (*models.User, error) {
	if err := checkUserID(id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.UpdateAccess(ctx, id, req.Role, req.Permissions); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

// Delete removes the user with everything it owns.
func (s *userService) Delete(ctx context.Context, id string) error {
	if err := checkUserID(id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// checkUserID reports a malformed id as a missing user; users.id is a uuid
// column and Postgres would reject the value outright.
func checkUserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return shared.NewNotFound(shared.KindUser, id)
	}
	return nil
}

// duplicateUser names the unique index a user write hit.
func duplicateUser(err error) error {
	if !errors.Is(err, repository.ErrDuplicateEntry) {
		return err
	}
	if strings.Contains(err.Error(), "email") {
		return ErrEmailInUse
	}
	return ErrNameInUse
}

var dashboardMessages = map[string]string{
	shared.RoleAdmin:     "Welcome to the admin dashboard.",
	shared.RoleLibrarian: "Welcome to the librarian dashboard.",
	shared.RoleMember:    "Welcome to the member area.",
}

func (s *userService) Dashboard(ctx context.Context, role string) (*dto.RoleDashboard, error) {
	counts, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.RoleDashboard{Role: role, Message: dashboardMessages[role], Users: counts}, nil
}
