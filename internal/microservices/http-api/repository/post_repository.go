package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

type PostRepository interface {
	List(ctx context.Context, q search.Query) ([]models.Post, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post, tags []string) error
	// Update writes title and content; tags replace the current set unless nil.
	Update(ctx context.Context, post *models.Post, tags []string) error
	Delete(ctx context.Context, id int64) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) List(ctx context.Context, q search.Query) ([]models.Post, int64, error) {
	return list[models.Post](ctx, r.db, q)
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, shared.KindPost, id)
	}
	return &p, nil
}

// Create inserts the post and tags it in one transaction.
func (r *postRepository) Create(ctx context.Context, post *models.Post, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return translate(err, shared.KindPost, post.ID)
		}
		linked, err := tagPost(tx, post.ID, tags)
		if err != nil {
			return err
		}
		post.Tags = linked
		return nil
	})
}

func (r *postRepository) Update(ctx context.Context, post *models.Post, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{ID: post.ID}).Updates(map[string]any{
			"title":   post.Title,
			"content": post.Content,
		})
		if err := mustAffect(res, shared.KindPost, post.ID); err != nil {
			return err
		}
		if tags == nil {
			return nil
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostTag{}).Error; err != nil {
			return fmt.Errorf("clear post tags: %w", err)
		}
		linked, err := tagPost(tx, post.ID, tags)
		if err != nil {
			return err
		}
		post.Tags = linked
		return nil
	})
}

// Delete removes the post; comments and tag links cascade.
func (r *postRepository) Delete(ctx context.Context, id int64) error {
	return mustAffect(r.db.WithContext(ctx).Delete(&models.Post{}, id), shared.KindPost, id)
}

func tagPost(tx *gorm.DB, postID int64, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[int64]struct{}, len(names))
	for _, name := range names {
		t, err := getOrCreateTag(tx, name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		tags = append(tags, *t)
	}
	if len(tags) == 0 {
		return tags, nil
	}

	links := make([]models.PostTag, 0, len(tags))
	for _, t := range tags {
		links = append(links, models.PostTag{PostID: postID, TagID: t.ID})
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		return nil, fmt.Errorf("link post tags: %w", err)
	}
	return tags, nil
}
