package service

import (
	"context"
	"fmt"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/navigator"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

type AuthorService interface {
	List(ctx context.Context, p search.Params) (*Page[models.Author], error)
	Get(ctx context.Context, id int64) (*models.Author, error)
	Books(ctx context.Context, id int64) ([]models.Book, error)
	BooksByName(ctx context.Context, name string) ([]models.Book, error)
	Create(ctx context.Context, req dto.AuthorRequest) (*models.Author, error)
	Update(ctx context.Context, id int64, req dto.AuthorRequest) (*models.Author, error)
	Delete(ctx context.Context, id int64) error
}

type authorService struct {
	authors repository.AuthorRepository
	nav     *navigator.Navigator
}

func NewAuthorService(authors repository.AuthorRepository, nav *navigator.Navigator) AuthorService {
	return &authorService{authors: authors, nav: nav}
}

// List returns a page of authors, each with its books.
func (s *authorService) List(ctx context.Context, p search.Params) (*Page[models.Author], error) {
	q := search.Compose(shared.KindAuthor, p)
	items, total, err := s.authors.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := s.nav.BooksForAuthors(ctx, items); err != nil {
		return nil, err
	}
	return newPage(items, total, q), nil
}

func (s *authorService) Get(ctx context.Context, id int64) (*models.Author, error) {
	a, err := s.authors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.nav.Expand(ctx, a, navigator.RelBooks); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) Books(ctx context.Context, id int64) ([]models.Book, error) {
	if _, err := s.authors.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.nav.BooksOf(ctx, id)
}

// BooksByName answers the "books by author" sample query.
func (s *authorService) BooksByName(ctx context.Context, name string) ([]models.Book, error) {
	a, err := s.authors.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.nav.BooksOf(ctx, a.ID)
}

func (s *authorService) Create(ctx context.Context, req dto.AuthorRequest) (*models.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	a := &models.Author{Name: req.Name}
	if err := s.authors.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return a, nil
}

func (s *authorService) Update(ctx context.Context, id int64, req dto.AuthorRequest) (*models.Author, error) {
	if _, err := s.authors.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	a := &models.Author{ID: id, Name: req.Name}
	if err := s.authors.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes the author and, by cascade, its books.
func (s *authorService) Delete(ctx context.Context, id int64) error {
	return s.authors.Delete(ctx, id)
}
