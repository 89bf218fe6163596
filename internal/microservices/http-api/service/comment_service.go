package service

import (
	"context"
	"fmt"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/navigator"
	"bookhub/internal/policy"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

type CommentService interface {
	ListForPost(ctx context.Context, postID int64, p search.Params) (*Page[models.Comment], error)
	Create(ctx context.Context, actor policy.Actor, postID int64, req dto.CommentRequest) (*models.Comment, error)
	Update(ctx context.Context, actor policy.Actor, id int64, req dto.CommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, actor policy.Actor, id int64) (postID int64, err error)
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	nav      *navigator.Navigator
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, nav *navigator.Navigator) CommentService {
	return &commentService{comments: comments, posts: posts, nav: nav}
}

func (s *commentService) ListForPost(ctx context.Context, postID int64, p search.Params) (*Page[models.Comment], error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	p.Post = &postID
	q := search.Compose(shared.KindComment, p)
	items, total, err := s.comments.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := s.nav.ExpandCommentAuthors(ctx, items); err != nil {
		return nil, err
	}
	return newPage(items, total, q), nil
}

// Create comments on an existing post as actor
func (s *commentService) Create(ctx context.Context, actor policy.Actor, postID int64, req dto.CommentRequest) (*models.Comment, error) {
	if err := policy.Blog.Authorize(actor, policy.OpCreate, shared.KindComment, nil).Err(); err != nil {
		return nil, err
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c := &models.Comment{PostID: postID, AuthorID: actor.UserID, Content: req.Content}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// Update edits the content; only the comment's author may do it
func (s *commentService) Update(ctx context.Context, actor policy.Actor, id int64, req dto.CommentRequest) (*models.Comment, error) {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Blog.Authorize(actor, policy.OpUpdate, shared.KindComment, c).Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c.Content = req.Content
	if err := s.comments.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete returns the post id so the caller can point back at the post
func (s *commentService) Delete(ctx context.Context, actor policy.Actor, id int64) (int64, error) {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := policy.Blog.Authorize(actor, policy.OpDelete, shared.KindComment, c).Err(); err != nil {
		return 0, err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return 0, err
	}
	return c.PostID, nil
}
