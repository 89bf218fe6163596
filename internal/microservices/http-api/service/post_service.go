package service

import (
	"context"
	"fmt"
	"strings"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/navigator"
	"bookhub/internal/policy"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

type PostService interface {
	List(ctx context.Context, p search.Params) (*Page[models.Post], error)
	// Search matches title, content and tag names; a blank term matches nothing.
	Search(ctx context.Context, term string, p search.Params) (*Page[models.Post], error)
	// Get embeds at most search.MaxPageSize of the newest comments and sets
	// CommentCount to the total; the rest page through /posts/:id/comments.
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, actor policy.Actor, req dto.PostRequest) (*models.Post, error)
	Update(ctx context.Context, actor policy.Actor, id int64, req dto.PostRequest) (*models.Post, error)
	Delete(ctx context.Context, actor policy.Actor, id int64) error
}

type postService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	nav      *navigator.Navigator
}

func NewPostService(posts repository.PostRepository, comments repository.CommentRepository, nav *navigator.Navigator) PostService {
	return &postService{posts: posts, comments: comments, nav: nav}
}

func (s *postService) List(ctx context.Context, p search.Params) (*Page[models.Post], error) {
	q := search.Compose(shared.KindPost, p)
	items, total, err := s.posts.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := s.nav.Expand(ctx, &items, navigator.RelTags, navigator.RelAuthor); err != nil {
		return nil, err
	}
	return newPage(items, total, q), nil
}

func (s *postService) Search(ctx context.Context, term string, p search.Params) (*Page[models.Post], error) {
	if strings.TrimSpace(term) == "" {
		q := search.Compose(shared.KindPost, p)
		return newPage([]models.Post{}, 0, q), nil
	}
	p.Search = term
	return s.List(ctx, p)
}

// Get returns the post with its tags, author and newest comments.
func (s *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.nav.Expand(ctx, post, navigator.RelTags, navigator.RelAuthor); err != nil {
		return nil, err
	}

	q := search.Compose(shared.KindComment, search.Params{Post: &id, PageSize: search.MaxPageSize})
	comments, total, err := s.comments.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := s.nav.ExpandCommentAuthors(ctx, comments); err != nil {
		return nil, err
	}
	post.Comments = comments
	post.CommentCount = &total
	return post, nil
}

func (s *postService) Create(ctx context.Context, actor policy.Actor, req dto.PostRequest) (*models.Post, error) {
	if err := policy.Blog.Authorize(actor, policy.OpCreate, shared.KindPost, nil).Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	post := &models.Post{Title: req.Title, Content: req.Content, AuthorID: actor.UserID}
	if err := s.posts.Create(ctx, post, req.Tags); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, actor policy.Actor, id int64, req dto.PostRequest) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Blog.Authorize(actor, policy.OpUpdate, shared.KindPost, post).Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	post.Title, post.Content = req.Title, req.Content
	if err := s.posts.Update(ctx, post, req.Tags); err != nil {
		return nil, err
	}
	if req.Tags == nil {
		if err := s.nav.Expand(ctx, post, navigator.RelTags); err != nil {
			return nil, err
		}
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Blog.Authorize(actor, policy.OpDelete, shared.KindPost, post).Err(); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}
