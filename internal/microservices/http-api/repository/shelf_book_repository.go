package repository

import (
	"context"

	"gorm.io/gorm"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

type ShelfBookRepository interface {
	List(ctx context.Context, q search.Query) ([]models.ShelfBook, int64, error)
	GetByID(ctx context.Context, id int64) (*models.ShelfBook, error)
	Create(ctx context.Context, book *models.ShelfBook) error
	Update(ctx context.Context, book *models.ShelfBook) error
	Delete(ctx context.Context, id int64) error
}

type shelfBookRepository struct {
	db *gorm.DB
}

func NewShelfBookRepository(db *gorm.DB) ShelfBookRepository {
	return &shelfBookRepository{db: db}
}

func (r *shelfBookRepository) List(ctx context.Context, q search.Query) ([]models.ShelfBook, int64, error) {
	return list[models.ShelfBook](ctx, r.db, q)
}

func (r *shelfBookRepository) GetByID(ctx context.Context, id int64) (*models.ShelfBook, error) {
	var b models.ShelfBook
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err, shared.KindShelfBook, id)
	}
	return &b, nil
}

func (r *shelfBookRepository) Create(ctx context.Context, book *models.ShelfBook) error {
	return translate(r.db.WithContext(ctx).Create(book).Error, shared.KindShelfBook, book.ID)
}

func (r *shelfBookRepository) Update(ctx context.Context, book *models.ShelfBook) error {
	res := r.db.WithContext(ctx).Model(&models.ShelfBook{ID: book.ID}).Updates(map[string]any{
		"title":            book.Title,
		"author":           book.Author,
		"publication_year": book.PublicationYear,
	})
	return mustAffect(res, shared.KindShelfBook, book.ID)
}

func (r *shelfBookRepository) Delete(ctx context.Context, id int64) error {
	return mustAffect(r.db.WithContext(ctx).Delete(&models.ShelfBook{}, id), shared.KindShelfBook, id)
}
