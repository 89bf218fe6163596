package repository

import (
	"context"

	"gorm.io/gorm"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

type CommentRepository interface {
	List(ctx context.Context, q search.Query) ([]models.Comment, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// List returns comments matching q; the post filter lives in q.
func (r *commentRepository) List(ctx context.Context, q search.Query) ([]models.Comment, int64, error) {
	return list[models.Comment](ctx, r.db, q)
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err, shared.KindComment, id)
	}
	return &comment, nil
}

// Create a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Omit("Author", "Post").Create(comment).Error
	return translate(err, shared.KindComment, comment.ID)
}

// Update rewrites the content; updated_at is bumped by gorm.
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	res := r.db.WithContext(ctx).Model(comment).Omit("Author", "Post").Update("content", comment.Content)
	return mustAffect(res, shared.KindComment, comment.ID)
}

// Delete a comment; ownership is checked by the caller.
func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	return mustAffect(r.db.WithContext(ctx).Delete(&models.Comment{}, id), shared.KindComment, id)
}
