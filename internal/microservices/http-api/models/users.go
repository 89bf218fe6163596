package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	FirstName    string     `gorm:"size:150" json:"first_name"`
	LastName     string     `gorm:"size:150" json:"last_name"`
	IsStaff      bool       `gorm:"default:false;not null" json:"is_staff"`
	IsSuperuser  bool       `gorm:"default:false;not null" json:"is_superuser"`
	IsActive     bool       `gorm:"default:true;not null" json:"is_active"`
	Role         string     `gorm:"default:'member';not null" json:"role"` // admin | librarian | member
	Permissions  []string   `gorm:"serializer:json;type:jsonb" json:"permissions"`
	DateOfBirth  *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	ProfilePhoto *string    `json:"profile_photo,omitempty"` // uploads/avatars/user_<id>/<filename>
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`

	// owned rows go away with the user
	Profile       *Profile       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"profile,omitempty"`
	Posts         []Post         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"-"`
	Comments      []Comment      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"-"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// If the ID is not already set, generate a new one.
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = "member"
	}
	return
}

func (User) TableName() string {
	return "users"
}

// Profile is created together with its User.
type Profile struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Bio    string `gorm:"type:text;not null;default:''" json:"bio"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) OwnerID() string {
	return p.UserID
}
