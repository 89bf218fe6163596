package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/shared"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateWithProfile inserts the user and its empty profile together.
	CreateWithProfile(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User, bio string) error
	UpdateAccess(ctx context.Context, id, role string, permissions []string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context) (map[string]int64, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateWithProfile(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile", "Posts", "Comments", "RefreshTokens").Create(user).Error; err != nil {
			return translate(err, shared.KindUser, user.Username)
		}
		profile := &models.Profile{UserID: user.ID}
		if err := tx.Create(profile).Error; err != nil {
			return translate(err, shared.KindProfile, user.ID)
		}
		user.Profile = profile
		return nil
	})
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	// return nil on miss so callers never see a zero-value user
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, shared.KindUser, username)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, shared.KindUser, id)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, shared.KindUser, email)
	}
	return &user, nil
}

// UpdateProfile writes the account fields and the bio in one transaction.
func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User, bio string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{ID: user.ID}).Updates(map[string]any{
			"username":   user.Username,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		})
		if err := mustAffect(res, shared.KindUser, user.ID); err != nil {
			return err
		}
		res = tx.Model(&models.Profile{}).Where("user_id = ?", user.ID).Update("bio", bio)
		return mustAffect(res, shared.KindProfile, user.ID)
	})
}

func (r *userRepository) UpdateAccess(ctx context.Context, id, role string, permissions []string) error {
	if permissions == nil {
		permissions = []string{}
	}
	res := r.db.WithContext(ctx).Model(&models.User{ID: id}).Select("role", "permissions").
		Updates(&models.User{Role: role, Permissions: permissions})
	return mustAffect(res, shared.KindUser, id)
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{ID: id}).Update("last_login", at).Error
}

// Delete removes the user; posts, comments, profile and refresh tokens cascade.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	return mustAffect(r.db.WithContext(ctx).Delete(&models.User{ID: id}), shared.KindUser, id)
}

func (r *userRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Role  string
		Total int64
	}
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("role, COUNT(*) AS total").Group("role").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Role] = row.Total
	}
	return out, nil
}
