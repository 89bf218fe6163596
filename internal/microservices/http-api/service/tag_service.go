package service

import (
	"context"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/navigator"
	"bookhub/internal/rules"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

type TagService interface {
	List(ctx context.Context, p search.Params) (*Page[models.Tag], error)
	// PostsFor resolves slug (or a name that slugifies to it) to its posts.
	PostsFor(ctx context.Context, slug string) (*models.Tag, []models.Post, error)
}

type tagService struct {
	tags repository.TagRepository
	nav  *navigator.Navigator
}

func NewTagService(tags repository.TagRepository, nav *navigator.Navigator) TagService {
	return &tagService{tags: tags, nav: nav}
}

func (s *tagService) List(ctx context.Context, p search.Params) (*Page[models.Tag], error) {
	q := search.Compose(shared.KindTag, p)
	items, total, err := s.tags.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, q), nil
}

func (s *tagService) PostsFor(ctx context.Context, slug string) (*models.Tag, []models.Post, error) {
	tag, err := s.tags.GetBySlug(ctx, rules.Slugify(slug))
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.nav.PostsForTag(ctx, tag.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.nav.Expand(ctx, &posts, navigator.RelTags, navigator.RelAuthor); err != nil {
		return nil, nil, err
	}
	return tag, posts, nil
}
