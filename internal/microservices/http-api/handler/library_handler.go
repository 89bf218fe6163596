package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/service"
	"bookhub/internal/policy"
	"bookhub/internal/shared"
)

type LibraryHandler struct {
	svc service.LibraryService
}

func NewLibraryHandler(svc service.LibraryService) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

// RegisterRoutes mounts /libraries; every write needs the admin role.
func (h *LibraryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	libs := rg.Group("/libraries")
	{
		libs.GET("", h.List)
		libs.GET("/:id", h.Get)
		libs.GET("/:id/librarian", h.Librarian)

		libs.POST("", middleware.Authorize(policy.AdminOrReadOnly, policy.OpCreate, shared.KindLibrary), h.Create)
		libs.PUT("/:id", middleware.Authorize(policy.AdminOrReadOnly, policy.OpUpdate, shared.KindLibrary), h.Update)
		libs.DELETE("/:id", middleware.Authorize(policy.AdminOrReadOnly, policy.OpDelete, shared.KindLibrary), h.Delete)
		libs.POST("/:id/books", middleware.Authorize(policy.AdminOrReadOnly, policy.OpUpdate, shared.KindLibrary), h.AddBooks)
		libs.DELETE("/:id/books", middleware.Authorize(policy.AdminOrReadOnly, policy.OpUpdate, shared.KindLibrary), h.RemoveBooks)
		libs.PUT("/:id/librarian", middleware.Authorize(policy.AdminOrReadOnly, policy.OpUpdate, shared.KindLibrarian), h.SetLibrarian)
	}
}

func (h *LibraryHandler) List(c *gin.Context) {
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

func (h *LibraryHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	lib, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lib)
}

func (h *LibraryHandler) Create(c *gin.Context) {
	var req dto.LibraryRequest
	if !bindJSON(c, &req) {
		return
	}
	lib, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lib)
}

func (h *LibraryHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.LibraryRequest
	if !bindJSON(c, &req) {
		return
	}
	lib, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lib)
}

func (h *LibraryHandler) Delete(c *gin.Context) {
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

func (h *LibraryHandler) AddBooks(c *gin.Context) {
	h.holdings(c, h.svc.AddBooks)
}

func (h *LibraryHandler) RemoveBooks(c *gin.Context) {
	h.holdings(c, h.svc.RemoveBooks)
}

func (h *LibraryHandler) holdings(c *gin.Context, apply func(ctx context.Context, id int64, req dto.HoldingsRequest) (*models.Library, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.HoldingsRequest
	if !bindJSON(c, &req) {
		return
	}
	lib, err := apply(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lib)
}

// Librarian answers null when the library has no librarian.
func (h *LibraryHandler) Librarian(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	l, err := h.svc.Librarian(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"librarian": l})
}

func (h *LibraryHandler) SetLibrarian(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.LibrarianRequest
	if !bindJSON(c, &req) {
		return
	}
	l, err := h.svc.SetLibrarian(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}
