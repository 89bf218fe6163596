// Package app builds the repositories and services shared by the binaries.
package app

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"bookhub/internal/config"
	"bookhub/internal/microservices/http-api/handler"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/microservices/http-api/service"
	"bookhub/internal/navigator"
)

// Repositories over one gorm pool.
type Repositories struct {
	Users         repository.UserRepository
	RefreshTokens repository.RefreshTokenRepository
	Authors       repository.AuthorRepository
	Books         repository.BookRepository
	Libraries     repository.LibraryRepository
	Shelf         repository.ShelfBookRepository
	Posts         repository.PostRepository
	Comments      repository.CommentRepository
	Tags          repository.TagRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:         repository.NewUserRepository(db),
		RefreshTokens: repository.NewRefreshTokenRepository(db),
		Authors:       repository.NewAuthorRepository(db),
		Books:         repository.NewBookRepository(db),
		Libraries:     repository.NewLibraryRepository(db),
		Shelf:         repository.NewShelfBookRepository(db),
		Posts:         repository.NewPostRepository(db),
		Comments:      repository.NewCommentRepository(db),
		Tags:          repository.NewTagRepository(db),
	}
}

// NewServices wires every service. A nil rdb disables token revocation.
func NewServices(db *gorm.DB, rdb *redis.Client, cfg *config.Config) handler.Services {
	repos := NewRepositories(db)
	nav := navigator.New(navigator.NewGormStore(db))

	var blacklist repository.TokenBlacklist
	if rdb != nil {
		blacklist = repository.NewTokenBlacklist(rdb)
	}

	return handler.Services{
		Auth:    service.NewAuthService(repos.Users, repos.RefreshTokens, blacklist, cfg),
		Users:   service.NewUserService(repos.Users),
		Authors: service.NewAuthorService(repos.Authors, nav),
		Books:   service.NewBookService(repos.Books, repos.Authors, nav, time.Now),
		Library: service.NewLibraryService(repos.Libraries, repos.Books, nav),
		Shelf:   service.NewShelfService(repos.Shelf),
		Posts:   service.NewPostService(repos.Posts, repos.Comments, nav),
		Comment: service.NewCommentService(repos.Comments, repos.Posts, nav),
		Tags:    service.NewTagService(repos.Tags, nav),
	}
}
