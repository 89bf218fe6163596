package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/microservices/http-api/service"
	"bookhub/internal/policy"
	"bookhub/internal/shared"
)

type BookHandler struct {
	svc service.BookService
}

func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	{
		// Public routes
		books.GET("", h.List)
		books.GET("/:id", h.Get)
		books.GET("/:id/libraries", h.Libraries)

		// Write routes need a login
		books.POST("", middleware.Authorize(policy.Catalog, policy.OpCreate, shared.KindBook), h.Create)
		books.PUT("/:id", middleware.Authorize(policy.Catalog, policy.OpUpdate, shared.KindBook), h.Update)
		books.PATCH("/:id", middleware.Authorize(policy.Catalog, policy.OpUpdate, shared.KindBook), h.Patch)
		books.DELETE("/:id", middleware.Authorize(policy.Catalog, policy.OpDelete, shared.KindBook), h.Delete)
	}

	rg.GET("/catalog/books", h.Catalog)
}

// List supports author, publication_year (or year), search, ordering and paging.
func (h *BookHandler) List(c *gin.Context) {
	p, ok := listParams(c)
	if !ok {
		return
	}
	page, err := h.svc.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *BookHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookHandler) Libraries(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	libs, err := h.svc.Libraries(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": libs})
}

func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookHandler) Patch(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var patch dto.BookPatch
	if !bindJSON(c, &patch) {
		return
	}
	b, err := h.svc.Patch(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Catalog answers one "Title by Author" line per book.
func (h *BookHandler) Catalog(c *gin.Context) {
	lines, err := h.svc.Catalog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	body := strings.Join(lines, "\n")
	if body != "" {
		body += "\n"
	}
	c.String(http.StatusOK, body)
}
