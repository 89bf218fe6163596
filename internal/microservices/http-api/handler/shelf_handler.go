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

// ShelfHandler serves the bookshelf app. Every route needs a login plus
// the bookshelf capability of its operation.
type ShelfHandler struct {
	svc service.ShelfService
}

func NewShelfHandler(svc service.ShelfService) *ShelfHandler {
	return &ShelfHandler{svc: svc}
}

func (h *ShelfHandler) RegisterRoutes(rg *gin.RouterGroup) {
	can := func(op policy.Operation) gin.HandlerFunc {
		return middleware.Authorize(policy.Bookshelf, op, shared.KindShelfBook)
	}

	books := rg.Group("/bookshelf/books")
	{
		books.GET("", can(policy.OpList), h.List)
		books.GET("/:id", can(policy.OpRetrieve), h.Get)
		books.POST("", can(policy.OpCreate), h.Create)
		books.PUT("/:id", can(policy.OpUpdate), h.Update)
		books.DELETE("/:id", can(policy.OpDelete), h.Delete)
		// confirmation form of the delete
		books.POST("/:id/delete", can(policy.OpDelete), h.Delete)
	}
}

// List filters by q against the title.
func (h *ShelfHandler) List(c *gin.Context) {
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

func (h *ShelfHandler) Get(c *gin.Context) {
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

func (h *ShelfHandler) Create(c *gin.Context) {
	var req dto.ShelfBookRequest
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

func (h *ShelfHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ShelfBookRequest
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

func (h *ShelfHandler) Delete(c *gin.Context) {
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
