package repository

import (
	"context"

	"gorm.io/gorm"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

type BookRepository interface {
	List(ctx context.Context, q search.Query) ([]models.Book, int64, error)
	AllByTitle(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int64) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) List(ctx context.Context, q search.Query) ([]models.Book, int64, error) {
	return list[models.Book](ctx, r.db, q)
}

// AllByTitle backs the plain-text catalog.
func (r *bookRepository) AllByTitle(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).Order("title").Order("id").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err, shared.KindBook, id)
	}
	return &b, nil
}

// ExistingIDs returns the subset of ids that name a book.
func (r *bookRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	found := make([]int64, 0, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	if err := r.db.WithContext(ctx).Model(&models.Book{}).Where("id IN ?", ids).Order("id").Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	err := r.db.WithContext(ctx).Omit("Author", "Libraries").Create(book).Error
	return translate(err, shared.KindBook, book.ID)
}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	res := r.db.WithContext(ctx).Model(&models.Book{ID: book.ID}).Updates(map[string]any{
		"title":            book.Title,
		"publication_year": book.PublicationYear,
		"author_id":        book.AuthorID,
	})
	return mustAffect(res, shared.KindBook, book.ID)
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	return mustAffect(r.db.WithContext(ctx).Delete(&models.Book{}, id), shared.KindBook, id)
}
