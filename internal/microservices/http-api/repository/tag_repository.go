package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/rules"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

type TagRepository interface {
	List(ctx context.Context, q search.Query) ([]models.Tag, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tag, error)
	GetOrCreate(ctx context.Context, name string) (*models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context, q search.Query) ([]models.Tag, int64, error) {
	return list[models.Tag](ctx, r.db, q)
}

func (r *tagRepository) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var t models.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error; err != nil {
		return nil, translate(err, shared.KindTag, slug)
	}
	return &t, nil
}

// GetOrCreate returns the tag whose slug derives from name, creating it on
// first use. Names differing only in case or punctuation share one tag.
func (r *tagRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	return getOrCreateTag(r.db.WithContext(ctx), name)
}

func getOrCreateTag(tx *gorm.DB, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	slug := rules.Slugify(name)
	if slug == "" {
		return nil, shared.NewValidationError("tags", "Tag names must contain a letter or digit.")
	}

	var t models.Tag
	err := tx.Where("slug = ?", slug).First(&t).Error
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// a concurrent writer may win the insert; the re-read picks its row
	t = models.Tag{Name: name, Slug: slug}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Omit("Posts").Create(&t).Error; err != nil {
		return nil, translate(err, shared.KindTag, slug)
	}
	if t.ID != 0 {
		return &t, nil
	}
	if err := tx.Where("slug = ?", slug).First(&t).Error; err != nil {
		return nil, translate(err, shared.KindTag, slug)
	}
	return &t, nil
}
