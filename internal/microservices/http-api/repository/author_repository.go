package repository

import (
	"context"

	"gorm.io/gorm"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

type AuthorRepository interface {
	List(ctx context.Context, q search.Query) ([]models.Author, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Author, error)
	FindByName(ctx context.Context, name string) (*models.Author, error)
	Create(ctx context.Context, author *models.Author) error
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id int64) error
}

type authorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) List(ctx context.Context, q search.Query) ([]models.Author, int64, error) {
	return list[models.Author](ctx, r.db, q)
}

func (r *authorRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	var a models.Author
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, shared.KindAuthor, id)
	}
	return &a, nil
}

// FindByName matches the name exactly; the oldest row wins when names repeat.
func (r *authorRepository) FindByName(ctx context.Context, name string) (*models.Author, error) {
	var a models.Author
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&a).Error; err != nil {
		return nil, translate(err, shared.KindAuthor, name)
	}
	return &a, nil
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	return translate(r.db.WithContext(ctx).Omit("Books").Create(author).Error, shared.KindAuthor, author.ID)
}

func (r *authorRepository) Update(ctx context.Context, author *models.Author) error {
	res := r.db.WithContext(ctx).Model(&models.Author{ID: author.ID}).Update("name", author.Name)
	return mustAffect(res, shared.KindAuthor, author.ID)
}

// Delete removes the author; its books go with it through ON DELETE CASCADE.
func (r *authorRepository) Delete(ctx context.Context, id int64) error {
	return mustAffect(r.db.WithContext(ctx).Delete(&models.Author{}, id), shared.KindAuthor, id)
}
