package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookhub/internal/microservices/http-api/service"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// paramUserID reads a user id path parameter. A value that is not a UUID
// names no user, so it answers 404.
func paramUserID(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		respondError(c, shared.NewNotFound(shared.KindUser, raw))
		return "", false
	}
	return raw, true
}

// bindJSON decodes the body into dst and answers 400 when it cannot.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// listParams reads the query string; malformed values answer 400.
func listParams(c *gin.Context) (search.Params, bool) {
	p, err := search.ParamsFromValues(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return p, false
	}
	return p, true
}

func respondPage[T any](c *gin.Context, page *service.Page[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"pagination": gin.H{
			"page":        page.Page,
			"page_size":   page.PageSize,
			"total":       page.Total,
			"total_pages": page.TotalPages(),
		},
	})
}
