package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookhub/internal/config"
	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/middleware/auth"
	"bookhub/internal/shared"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrRevokedToken       = errors.New("token has been revoked")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInactiveUser       = errors.New("user account is disabled")
)

const (
	tokenTypeAccess = "access"
	bearer          = "Bearer"
)

// tokenClaims is the access token body.
type tokenClaims struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	IsStaff     bool     `json:"is_staff"`
	IsSuperuser bool     `json:"is_superuser"`
	Permissions []string `json:"permissions"`
	Type        string   `json:"type"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	// CreateSuperuser registers a staff superuser with the admin role.
	CreateSuperuser(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, req dto.RefreshTokenRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, claims *shared.AuthClaims) error
	ValidateToken(ctx context.Context, tokenString string) (*shared.AuthClaims, error)
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	blacklist        repository.TokenBlacklist
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	now              func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	blacklist repository.TokenBlacklist,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		blacklist:        blacklist,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,  // 15 minutes
		refreshTokenTTL:  cfg.RefreshTokenTTL, // 7 days
		now:              time.Now,
	}
}

// Register: registers a new user and its profile in one step.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	return s.register(ctx, req, func(*models.User) {})
}

func (s *authService) CreateSuperuser(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	return s.register(ctx, req, func(u *models.User) {
		u.IsStaff = true
		u.IsSuperuser = true
		u.Role = shared.RoleAdmin
	})
}

func (s *authService) register(ctx context.Context, req dto.RegisterRequest, promote func(*models.User)) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrNameInUse
	} else if !isNotFound(err) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !isNotFound(err) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Username:    req.Username,
		Email:       req.Email,
		Password:    hashedPassword,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		IsActive:    true,
		Role:        shared.RoleMember,
		Permissions: []string{},
	}
	promote(user)

	// the unique indexes still catch a concurrent registration
	if err := s.userRepo.CreateWithProfile(ctx, user); err != nil {
		return nil, duplicateUser(err)
	}
	return user, nil
}

// Login: authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		// unknown users cost the same as wrong passwords
		auth.BurnCompare(req.Password)
		return nil, ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	return s.response(user, accessToken, refreshToken), nil
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshTokenRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if refreshToken.Revoked {
		return nil, ErrRevokedToken
	}
	if refreshToken.Expired(s.now()) {
		return nil, ErrExpiredToken
	}

	user, err := s.userRepo.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return s.response(user, accessToken, refreshToken.Token), nil
}

// Logout revokes the presented access token and every refresh token of the user.
func (s *authService) Logout(ctx context.Context, claims *shared.AuthClaims) error {
	if claims == nil {
		return &shared.AuthDenied{Reason: shared.ReasonUnauthenticated}
	}
	if s.blacklist != nil && claims.TokenID != "" {
		if err := s.blacklist.Revoke(ctx, claims.TokenID, claims.ExpiresAt.Sub(s.now())); err != nil {
			return fmt.Errorf("revoke access token: %w", err)
		}
	}
	if err := s.refreshTokenRepo.RevokeAllForUser(ctx, claims.UserID); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*shared.AuthClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Type != tokenTypeAccess {
		return nil, ErrInvalidToken
	}

	if s.blacklist != nil && claims.ID != "" {
		revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			// redis outage: keep serving, tokens are short-lived
			log.Warn().Err(err).Msg("token blacklist unavailable")
		} else if revoked {
			return nil, ErrRevokedToken
		}
	}

	out := &shared.AuthClaims{
		UserID:      claims.UserID,
		Username:    claims.Username,
		Role:        claims.Role,
		IsStaff:     claims.IsStaff,
		IsSuperuser: claims.IsSuperuser,
		Permissions: claims.Permissions,
		TokenID:     claims.ID,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		Permissions: user.Permissions,
		Type:        tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: s.now().Add(s.refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return refreshToken.Token, nil
}

func (s *authService) response(user *models.User, access, refresh string) *dto.AuthResponse {
	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    bearer,
		UserID:       user.ID,
		Username:     user.Username,
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
	}
}

func isNotFound(err error) bool {
	var nf *shared.NotFoundError
	return errors.As(err, &nf)
}
