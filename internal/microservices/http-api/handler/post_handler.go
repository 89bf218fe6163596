package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/microservices/http-api/service"
	"bookhub/internal/policy"
	"bookhub/internal/shared"
)

type PostHandler struct {
	posts service.PostService
	tags  service.TagService
}

func NewPostHandler(posts service.PostService, tags service.TagService) *PostHandler {
	return &PostHandler{posts: posts, tags: tags}
}

// RegisterRoutes mounts posts, tags and the blog search. Ownership of an
// existing post is checked by the service.
func (h *PostHandler) RegisterRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	{
		posts.GET("", h.List)
		posts.GET("/:id", h.Get)
		posts.POST("", middleware.Authorize(policy.Blog, policy.OpCreate, shared.KindPost), h.Create)
		posts.PUT("/:id", middleware.Authorize(policy.Blog, policy.OpUpdate, shared.KindPost), h.Update)
		posts.DELETE("/:id", middleware.Authorize(policy.Blog, policy.OpDelete, shared.KindPost), h.Delete)
	}

	rg.GET("/tags", h.Tags)
	rg.GET("/tags/:slug/posts", h.PostsForTag)
	rg.GET("/search", h.Search)
}

// List supports search, tag, ordering and paging.
func (h *PostHandler) List(c *gin.Context) {
	p, ok := listParams(c)
	if !ok {
		return
	}
	page, err := h.posts.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, page)
}

// Search matches q against titles, content and tags; an empty q matches nothing.
func (h *PostHandler) Search(c *gin.Context) {
	p, ok := listParams(c)
	if !ok {
		return
	}
	term := p.Q
	p.Q = ""
	page, err := h.posts.Search(c.Request.Context(), term, p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req dto.PostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.posts.Create(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.PostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.posts.Update(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) Tags(c *gin.Context) {
	p, ok := listParams(c)
	if !ok {
		return
	}
	page, err := h.tags.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *PostHandler) PostsForTag(c *gin.Context) {
	tag, posts, err := h.tags.PostsFor(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tag": tag, "data": posts})
}
