package service

import (
	"context"
	"fmt"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

// ShelfService serves the bookshelf app. Capability checks happen before
// these methods run.
type ShelfService interface {
	List(ctx context.Context, p search.Params) (*Page[models.ShelfBook], error)
	Get(ctx context.Context, id int64) (*models.ShelfBook, error)
	Create(ctx context.Context, req dto.ShelfBookRequest) (*models.ShelfBook, error)
	Update(ctx context.Context, id int64, req dto.ShelfBookRequest) (*models.ShelfBook, error)
	Delete(ctx context.Context, id int64) error
}

type shelfService struct {
	books repository.ShelfBookRepository
}

func NewShelfService(books repository.ShelfBookRepository) ShelfService {
	return &shelfService{books: books}
}

func (s *shelfService) List(ctx context.Context, p search.Params) (*Page[models.ShelfBook], error) {
	q := search.Compose(shared.KindShelfBook, p)
	items, total, err := s.books.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, q), nil
}

func (s *shelfService) Get(ctx context.Context, id int64) (*models.ShelfBook, error) {
	return s.books.GetByID(ctx, id)
}

func (s *shelfService) Create(ctx context.Context, req dto.ShelfBookRequest) (*models.ShelfBook, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	b := req.Model()
	if err := s.books.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create shelf book: %w", err)
	}
	return b, nil
}

func (s *shelfService) Update(ctx context.Context, id int64, req dto.ShelfBookRequest) (*models.ShelfBook, error) {
	if _, err := s.books.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	b := req.Model()
	b.ID = id
	if err := s.books.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *shelfService) Delete(ctx context.Context, id int64) error {
	return s.books.Delete(ctx, id)
}
