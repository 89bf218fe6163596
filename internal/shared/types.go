package shared

import "time"

// shared types across the application
// 1st: entity kinds used by the policy, query composer and error taxonomy
// 2nd: auth claims structure for JWT authentication in HTTP API

// Kind names an entity kind of the schema.
type Kind string

const (
	KindAuthor    Kind = "author"
	KindBook      Kind = "book"
	KindLibrary   Kind = "library"
	KindLibrarian Kind = "librarian"
	KindShelfBook Kind = "shelf_book"
	KindPost      Kind = "post"
	KindComment   Kind = "comment"
	KindTag       Kind = "tag"
	KindProfile   Kind = "profile"
	KindUser      Kind = "user"

	KindRefreshToken Kind = "refresh_token"
)

// Roles carried by User.Role.
const (
	RoleAdmin     = "admin"
	RoleLibrarian = "librarian"
	RoleMember    = "member"
)

// Bookshelf capabilities held in User.Permissions.
const (
	CanView   = "bookshelf.can_view"
	CanCreate = "bookshelf.can_create"
	CanEdit   = "bookshelf.can_edit"
	CanDelete = "bookshelf.can_delete"
)

type AuthClaims struct {
	UserID      string    `json:"user_id"`      // user identifier(UUID)
	Username    string    `json:"username"`     // username
	Role        string    `json:"role"`         // admin | librarian | member
	IsStaff     bool      `json:"is_staff"`     // staff flag
	IsSuperuser bool      `json:"is_superuser"` // holds every capability
	Permissions []string  `json:"permissions"`  // named capabilities
	TokenID     string    `json:"jti"`          // used for revocation on logout
	ExpiresAt   time.Time `json:"exp"`
}
