package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/microservices/http-api/service"
	"bookhub/internal/policy"
	"bookhub/internal/shared"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment-related routes
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Post comments
	postComments := rg.Group("/posts/:id/comments")
	{
		postComments.GET("", h.ListByPost)
		postComments.POST("", middleware.Authorize(policy.Blog, policy.OpCreate, shared.KindComment), h.Create)
	}

	// Comment operations (author only, checked after loading)
	comments := rg.Group("/comments")
	{
		comments.PUT("/:id", middleware.Authorize(policy.Blog, policy.OpUpdate, shared.KindComment), h.Update)
		comments.DELETE("/:id", middleware.Authorize(policy.Blog, policy.OpDelete, shared.KindComment), h.Delete)
	}
}

// ListByPost lists the comments of a post, newest first
// GET /api/posts/:id/comments
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, ok := listParams(c)
	if !ok {
		return
	}
	page, err := h.commentService.ListForPost(c.Request.Context(), postID, p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, page)
}

// Create comments on a post as the caller
// POST /api/posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.commentService.Create(c.Request.Context(), middleware.ActorFrom(c), postID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Update edits a comment
// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.commentService.Update(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment; Location points back at its post
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	postID, err := h.commentService.Delete(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/posts/%d", postID))
	c.Status(http.StatusNoContent)
}
